package testrequests

import "time"

// Config holds configuration for the prediction test
type Config struct {
	BaseURL     string        // Base URL of the service
	NumRequests int           // Number of prediction requests to generate
	SampleSize  int           // Number of cases re-submitted for the determinism check
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Output file for generated cases
	LogFile     string        // Log file for test output
	Verbose     bool          // Enable verbose logging
}

// Passenger is the JSON payload submitted to /predict. Values are sent as
// strings, the same way the built-in form submits them.
type Passenger struct {
	Pclass   string `json:"pclass"`
	Sex      string `json:"sex"`
	Age      string `json:"age"`
	Sibsp    string `json:"sibsp"`
	Parch    string `json:"parch"`
	Fare     string `json:"fare"`
	Embarked string `json:"embarked"`
}

// Case couples a generated payload with a correlation ID for log lines and
// the saved case file.
type Case struct {
	CaseID    string    `json:"case_id"`
	Passenger Passenger `json:"passenger"`
}

// Prediction mirrors the response from POST /predict.
type Prediction struct {
	Survived         bool    `json:"survived"`
	Label            string  `json:"label"`
	Confidence       float64 `json:"confidence"`
	ConfidenceSource string  `json:"confidence_source"`
}

// ErrorReply mirrors the error response shape.
type ErrorReply struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Stats holds test statistics
type Stats struct {
	CasesGenerated    int
	CasesSubmitted    int
	CasesSuccessful   int
	CasesRejected     int
	CasesFailed       int
	Survived          int
	DidNotSurvive     int
	Fallbacks         int
	RecheckSampled    int
	RecheckMismatches int
	ProbesRun         int
	ProbesPassed      int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
