package testrequests

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/whitestar/lifeboat/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete prediction test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting lifeboat prediction test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.NumRequests),
		logger.Int("sample", config.SampleSize),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("logFile", config.LogFile),
		logger.Bool("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate passenger cases
	cases, err := generateCases(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("case generation failed: %w", err)
	}

	// Step 3: Submit cases concurrently
	predictions, succeeded, err := submitCases(ctx, config, cases, stats)
	if err != nil {
		return fmt.Errorf("case submission failed: %w", err)
	}

	// Step 4: Verify the response contract
	if err := verifyResults(predictions, succeeded, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 5: Recheck a sample for deterministic answers
	if err := recheckSample(ctx, config, cases, predictions, succeeded, stats); err != nil {
		return fmt.Errorf("determinism recheck failed: %w", err)
	}

	// Step 6: Probe input validation with bad payloads
	if err := probeValidation(ctx, config, stats); err != nil {
		return fmt.Errorf("validation probing failed: %w", err)
	}

	// Step 7: Save cases to file
	if err := saveCasesToFile(ctx, config, cases); err != nil {
		logger.Get().Warn(ctx, "failed to save cases to file", logger.Err(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// healthReply is the subset of the health response the runner inspects.
type healthReply struct {
	Status    string `json:"status"`
	ModelKind string `json:"model_kind"`
}

// checkServiceHealth verifies the service is running with a model loaded.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read health response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	var reply healthReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return fmt.Errorf("failed to parse health response: %w", err)
	}

	logger.Get().Info(ctx, "service is healthy",
		logger.String("status", reply.Status),
		logger.String("modelKind", reply.ModelKind))
	return nil
}

// saveCasesToFile saves the generated cases to a JSON file.
func saveCasesToFile(ctx context.Context, config *Config, cases []Case) error {
	if len(cases) == 0 {
		return fmt.Errorf("no cases to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_cases_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write cases to file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Err(err))
		}
	}()

	// Write JSON array
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, c := range cases {
		jsonData, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal case %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write case %d: %w", i, err)
		}

		// Add comma except for last case
		if i < len(cases)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "cases saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, requestsPerSecond float64

	if stats.CasesSubmitted > 0 {
		successRate = float64(stats.CasesSuccessful) / float64(stats.CasesSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.CasesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("casesGenerated", stats.CasesGenerated),
		logger.Int("casesSubmitted", stats.CasesSubmitted),
		logger.Int("casesSuccessful", stats.CasesSuccessful),
		logger.Int("casesRejected", stats.CasesRejected),
		logger.Int("casesFailed", stats.CasesFailed),
		logger.Int("survived", stats.Survived),
		logger.Int("didNotSurvive", stats.DidNotSurvive),
		logger.Int("confidenceFallbacks", stats.Fallbacks),
		logger.Int("recheckSampled", stats.RecheckSampled),
		logger.Int("probesPassed", stats.ProbesPassed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
