package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/whitestar/lifeboat/internal/testrequests"
)

// Default configuration constants.
const (
	defaultNumRequests = 1000
	defaultSampleSize  = 100
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9480", "Base URL of the service")
		numRequests = flag.Int("requests", defaultNumRequests, "Number of passenger cases to generate and submit")
		sampleSize  = flag.Int("sample", defaultSampleSize, "Number of cases to re-submit for the determinism check")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile  = flag.String("output", "", "Output file for generated cases (default: generated_cases_TIMESTAMP.json)")
		logFile     = flag.String("log", "", "Log file for test output (default: test_log_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testrequests.ShowHelp()
		return
	}

	// Setup logging
	if err := testrequests.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	// Create test configuration
	config := &testrequests.Config{
		BaseURL:     *baseURL,
		NumRequests: *numRequests,
		SampleSize:  *sampleSize,
		Workers:     *workers,
		Timeout:     *timeout,
		OutputFile:  *outputFile,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	// Run the test
	if err := testrequests.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}
