// Package types contains common types used across the application
package types

// Outcome display labels shown to callers.
const (
	LabelSurvived      = "SURVIVED"
	LabelDidNotSurvive = "DID NOT SURVIVE"
)

// PassengerSummary echoes the scored passenger with display names resolved.
type PassengerSummary struct {
	Class           string  `json:"class"`
	Sex             string  `json:"sex"`
	Age             float64 `json:"age"`
	SiblingsSpouses int     `json:"siblings_spouses"`
	ParentsChildren int     `json:"parents_children"`
	Fare            float64 `json:"fare"`
	EmbarkationPort string  `json:"embarkation_port"`
}

// Prediction represents a completed survival prediction.
type Prediction struct {
	Survived         bool             `json:"survived"`
	Label            string           `json:"label"`
	Confidence       float64          `json:"confidence"`
	ConfidenceSource string           `json:"confidence_source"`
	Passenger        PassengerSummary `json:"passenger"`
}
