// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
)

// flexValue decodes a JSON string or number into its raw text form. The
// validation layer works on the submitted text, so numbers keep exactly the
// digits the caller sent.
type flexValue string

func (f *flexValue) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexValue(n.String())
		return nil
	}
	return errors.New("value must be a string or number")
}
