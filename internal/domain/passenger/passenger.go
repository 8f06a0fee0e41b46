// Package passenger contains the passenger attribute model passed between layers.
package passenger

import (
	"fmt"
	"strconv"
	"strings"
)

// Feature vector layout. Models are trained against exactly this ordering;
// Vector must never be reordered without retraining every artifact.
const (
	FeatureClass = iota
	FeatureSex
	FeatureAge
	FeatureSiblingsSpouses
	FeatureParentsChildren
	FeatureFare
	FeatureEmbarkationPort

	FeatureCount = 7
)

// Encoded categorical values.
const (
	ClassFirst  = 1
	ClassSecond = 2
	ClassThird  = 3

	SexMale   = 0
	SexFemale = 1

	PortSouthampton = 0
	PortCherbourg   = 1
	PortQueenstown  = 2
)

// Raw carries attribute values exactly as submitted by the caller. Values
// stay strings until validation has accepted them.
type Raw struct {
	Class           string // encoded ticket class: 1, 2, or 3
	Sex             string // encoded sex: 0 or 1
	Age             string // years
	SiblingsSpouses string // count aboard
	ParentsChildren string // count aboard
	Fare            string // ticket fare
	EmbarkationPort string // encoded port: 0, 1, or 2
}

// Attributes is the typed passenger record produced from validated input.
// Treat values as immutable once built.
type Attributes struct {
	Class           int
	Sex             int
	Age             float64
	SiblingsSpouses int
	ParentsChildren int
	Fare            float64
	EmbarkationPort int
}

// Parse converts raw attribute strings into typed Attributes. It does not
// repeat validation; callers are expected to have run the validate package
// first. Categorical fields that still fail to parse report an error.
func Parse(raw Raw) (Attributes, error) {
	var (
		a   Attributes
		err error
	)
	if a.Class, err = parseInt("class", raw.Class); err != nil {
		return Attributes{}, err
	}
	if a.Sex, err = parseInt("sex", raw.Sex); err != nil {
		return Attributes{}, err
	}
	if a.Age, err = parseFloat("age", raw.Age); err != nil {
		return Attributes{}, err
	}
	if a.SiblingsSpouses, err = parseInt("siblings_spouses", raw.SiblingsSpouses); err != nil {
		return Attributes{}, err
	}
	if a.ParentsChildren, err = parseInt("parents_children", raw.ParentsChildren); err != nil {
		return Attributes{}, err
	}
	if a.Fare, err = parseFloat("fare", raw.Fare); err != nil {
		return Attributes{}, err
	}
	if a.EmbarkationPort, err = parseInt("embarkation_port", raw.EmbarkationPort); err != nil {
		return Attributes{}, err
	}
	return a, nil
}

// Vector assembles the feature row in the fixed training order.
func (a Attributes) Vector() []float64 {
	return []float64{
		float64(a.Class),
		float64(a.Sex),
		a.Age,
		float64(a.SiblingsSpouses),
		float64(a.ParentsChildren),
		a.Fare,
		float64(a.EmbarkationPort),
	}
}

// ClassName returns the display name of an encoded ticket class.
func ClassName(class int) string {
	switch class {
	case ClassFirst:
		return "First"
	case ClassSecond:
		return "Second"
	case ClassThird:
		return "Third"
	default:
		return fmt.Sprintf("Class %d", class)
	}
}

// SexName returns the display name of an encoded sex. Zero means male,
// anything else female, matching the training encoding.
func SexName(sex int) string {
	if sex == SexMale {
		return "Male"
	}
	return "Female"
}

// PortName returns the display name of an encoded embarkation port.
func PortName(port int) string {
	switch port {
	case PortSouthampton:
		return "Southampton"
	case PortCherbourg:
		return "Cherbourg"
	case PortQueenstown:
		return "Queenstown"
	default:
		return fmt.Sprintf("Port %d", port)
	}
}

func parseInt(field, value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, value, err)
	}
	return v, nil
}

func parseFloat(field, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, value, err)
	}
	return v, nil
}
