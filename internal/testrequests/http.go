package testrequests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(url string) (*http.Response, error) {
	return c.client.Get(url)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitCases posts every case concurrently and stores the first-pass
// prediction per case, indexed alongside the input slice.
func submitCases(ctx context.Context, config *Config, cases []Case, stats *Stats) ([]Prediction, []bool, error) {
	log.Printf("📤 Submitting %d prediction requests with %d workers...", len(cases), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/predict"

	predictions := make([]Prediction, len(cases))
	succeeded := make([]bool, len(cases))

	// Counters for statistics
	var (
		submitted  int64
		successful int64
		rejected   int64
		failed     int64
	)

	// Progress reporting from one goroutine so workers stay lock-free
	progressDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(ProgressReportInterval)
		defer ticker.Stop()
		for {
			select {
			case <-progressDone:
				return
			case <-ticker.C:
				total := atomic.LoadInt64(&submitted)
				succ := atomic.LoadInt64(&successful)
				rej := atomic.LoadInt64(&rejected)
				fail := atomic.LoadInt64(&failed)

				if config.Verbose {
					log.Printf("📊 Progress: %d/%d submitted (success: %d, rejected: %d, failed: %d)",
						total, len(cases), succ, rej, fail)
				} else {
					fmt.Printf("\r📤 Submitted: %d/%d (success: %d, rejected: %d, failed: %d)",
						total, len(cases), succ, rej, fail)
				}
			}
		}
	}()

	// Create worker pool
	caseChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for index := range caseChan {
				select {
				case <-ctx.Done():
					return
				default:
					pred, result := submitSingleCase(client, url, cases[index])

					atomic.AddInt64(&submitted, 1)
					switch result {
					case "success":
						predictions[index] = pred
						succeeded[index] = true
						atomic.AddInt64(&successful, 1)
					case "rejected":
						atomic.AddInt64(&rejected, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}
				}
			}
		}(i)
	}

	// Send case indices to workers
	go func() {
		defer close(caseChan)
		for i := range cases {
			select {
			case <-ctx.Done():
				return
			case caseChan <- i:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()
	close(progressDone)

	// Final progress report
	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	// Update stats
	stats.CasesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.CasesSuccessful = int(atomic.LoadInt64(&successful))
	stats.CasesRejected = int(atomic.LoadInt64(&rejected))
	stats.CasesFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Prediction submission completed:
   Successful: %d
   Rejected: %d
   Failed: %d
`, stats.CasesSuccessful, stats.CasesRejected, stats.CasesFailed)

	return predictions, succeeded, nil
}

// submitSingleCase posts one payload and classifies the outcome.
func submitSingleCase(client *HTTPClient, url string, c Case) (Prediction, string) {
	resp, err := client.Post(url, c.Passenger)
	if err != nil {
		return Prediction{}, "failed"
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return Prediction{}, "failed"
	}

	switch resp.StatusCode {
	case StatusOK:
		var pred Prediction
		if err := json.Unmarshal(body, &pred); err != nil {
			return Prediction{}, "failed"
		}
		return pred, "success"
	case StatusBadRequest:
		// The generator only emits valid payloads, so rejections are
		// counted and reported as contract problems.
		return Prediction{}, "rejected"
	default:
		return Prediction{}, "failed"
	}
}
