package testrequests

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// verifyResults checks every successful prediction against the response
// contract: the label must match the survived flag, confidence must be a
// probability, and the confidence source must be a known value.
func verifyResults(predictions []Prediction, succeeded []bool, stats *Stats) error {
	log.Printf("📊 Verifying prediction responses...")

	checked := 0
	violations := 0
	survived := 0
	lost := 0
	fallbacks := 0

	minConfidence := 1.0
	maxConfidence := 0.0
	sumConfidence := 0.0

	for index, pred := range predictions {
		if !succeeded[index] {
			continue
		}
		checked++

		expectedLabel := "DID NOT SURVIVE"
		if pred.Survived {
			expectedLabel = "SURVIVED"
		}
		if pred.Label != expectedLabel {
			violations++
			log.Printf("⚠️  Label mismatch: survived=%v but label=%q", pred.Survived, pred.Label)
		}

		if pred.Confidence < 0 || pred.Confidence > 1 {
			violations++
			log.Printf("⚠️  Confidence out of range: %f", pred.Confidence)
		}

		switch pred.ConfidenceSource {
		case "model":
		case "default":
			fallbacks++
		default:
			violations++
			log.Printf("⚠️  Unknown confidence source: %q", pred.ConfidenceSource)
		}

		if pred.Survived {
			survived++
		} else {
			lost++
		}

		if pred.Confidence < minConfidence {
			minConfidence = pred.Confidence
		}
		if pred.Confidence > maxConfidence {
			maxConfidence = pred.Confidence
		}
		sumConfidence += pred.Confidence
	}

	stats.Survived = survived
	stats.DidNotSurvive = lost
	stats.Fallbacks = fallbacks

	if checked == 0 {
		return fmt.Errorf("no successful predictions to verify")
	}
	if violations > 0 {
		return fmt.Errorf("response verification found %d contract violations", violations)
	}

	log.Printf(`✅ Response verification passed:
   Checked: %d
   Survived: %d
   Did not survive: %d
   Confidence fallbacks: %d
   Confidence min/avg/max: %.4f / %.4f / %.4f
`, checked, survived, lost, fallbacks,
		minConfidence, sumConfidence/float64(checked), maxConfidence)

	return nil
}

// validationProbe is one deliberately malformed payload with the
// rejection code the service must answer with.
type validationProbe struct {
	name         string
	passenger    Passenger
	expectedCode string
}

// probeValidation sends known-bad payloads and checks that each one is
// rejected with HTTP 400 and the right error code.
func probeValidation(ctx context.Context, config *Config, stats *Stats) error {
	log.Printf("📤 Probing input validation with deliberately bad payloads...")

	probes := []validationProbe{
		{
			name: "missing age",
			passenger: Passenger{
				Pclass: "3", Sex: "0", Age: "", Sibsp: "0", Parch: "0",
				Fare: "7.25", Embarked: "0",
			},
			expectedCode: "missing_field",
		},
		{
			name: "age above range",
			passenger: Passenger{
				Pclass: "3", Sex: "0", Age: "200", Sibsp: "0", Parch: "0",
				Fare: "7.25", Embarked: "0",
			},
			expectedCode: "invalid_age",
		},
		{
			name: "age not a number",
			passenger: Passenger{
				Pclass: "3", Sex: "0", Age: "elderly", Sibsp: "0", Parch: "0",
				Fare: "7.25", Embarked: "0",
			},
			expectedCode: "invalid_age",
		},
		{
			name: "negative fare",
			passenger: Passenger{
				Pclass: "3", Sex: "0", Age: "22", Sibsp: "0", Parch: "0",
				Fare: "-4", Embarked: "0",
			},
			expectedCode: "invalid_fare",
		},
	}

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/predict"

	passed := 0
	for _, probe := range probes {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := runValidationProbe(client, url, probe); err != nil {
			log.Printf("⚠️  Validation probe %q failed: %v", probe.name, err)
			continue
		}
		passed++
	}

	stats.ProbesRun = len(probes)
	stats.ProbesPassed = passed

	if passed != len(probes) {
		return fmt.Errorf("validation probes failed: %d of %d passed", passed, len(probes))
	}

	log.Printf("✅ Validation probes passed: %d/%d", passed, len(probes))
	return nil
}

// runValidationProbe submits one bad payload and checks the rejection.
func runValidationProbe(client *HTTPClient, url string, probe validationProbe) error {
	resp, err := client.Post(url, probe.passenger)
	if err != nil {
		return fmt.Errorf("failed to post probe: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusBadRequest {
		return fmt.Errorf("expected status %d, got %d: %s", StatusBadRequest, resp.StatusCode, string(body))
	}

	var reply ErrorReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return fmt.Errorf("failed to parse error reply: %w", err)
	}
	if reply.Code != probe.expectedCode {
		return fmt.Errorf("expected code %q, got %q (%s)", probe.expectedCode, reply.Code, reply.Message)
	}

	return nil
}
