package testrequests

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// recheckSample re-submits a sample of already-answered cases and
// compares the second answer with the first. The pipeline holds one
// immutable model, so any drift between runs is a defect.
func recheckSample(ctx context.Context, config *Config, cases []Case, predictions []Prediction, succeeded []bool, stats *Stats) error {
	sampleSize := config.SampleSize
	if sampleSize > len(cases) {
		sampleSize = len(cases)
	}
	if sampleSize == 0 {
		log.Printf("Determinism recheck skipped (sample size 0)")
		return nil
	}

	log.Printf("📤 Rechecking %d cases for deterministic answers...", sampleSize)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/predict"

	checked := 0
	mismatches := 0

	for index := 0; index < sampleSize; index++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !succeeded[index] {
			continue
		}

		again, err := resubmitCase(client, url, cases[index])
		if err != nil {
			return fmt.Errorf("recheck of case %s failed: %w", cases[index].CaseID, err)
		}

		checked++
		if again != predictions[index] {
			mismatches++
			log.Printf("⚠️  Mismatch for case %s: first %+v, second %+v",
				cases[index].CaseID, predictions[index], again)
		}
	}

	stats.RecheckSampled = checked
	stats.RecheckMismatches = mismatches

	if mismatches > 0 {
		return fmt.Errorf("determinism recheck found %d mismatches in %d cases", mismatches, checked)
	}

	log.Printf("✅ Determinism recheck passed: %d cases answered identically", checked)
	return nil
}

// resubmitCase posts a case again and requires a parseable success.
func resubmitCase(client *HTTPClient, url string, c Case) (Prediction, error) {
	resp, err := client.Post(url, c.Passenger)
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to post case: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return Prediction{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var pred Prediction
	if err := json.Unmarshal(body, &pred); err != nil {
		return Prediction{}, fmt.Errorf("failed to parse prediction: %w", err)
	}

	return pred, nil
}
