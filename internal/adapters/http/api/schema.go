// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/whitestar/lifeboat/internal/domain/passenger"
	"github.com/whitestar/lifeboat/internal/domain/types"
	"github.com/whitestar/lifeboat/internal/domain/validate"
)

// fieldSchema describes one input field of POST /predict.
type fieldSchema struct {
	Name        string        `json:"name"`
	Type        string        `json:"type"`
	Required    bool          `json:"required"`
	Description string        `json:"description"`
	Default     any           `json:"default"`
	Values      []schemaValue `json:"values,omitempty"`
	Range       *schemaRange  `json:"range,omitempty"`
}

// schemaValue names one accepted encoded categorical value.
type schemaValue struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// schemaRange bounds a numeric field.
type schemaRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type schemaResponse struct {
	Fields []fieldSchema     `json:"fields"`
	Labels map[string]string `json:"labels"`
}

// SchemaHandler serves the input contract for prediction requests.
type SchemaHandler struct {
	schema schemaResponse
}

// NewSchemaHandler creates a new schema handler.
func NewSchemaHandler() *SchemaHandler {
	return &SchemaHandler{schema: buildSchema()}
}

// HandleSchema handles GET /schema requests.
func (h *SchemaHandler) HandleSchema(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.schema)
}

// buildSchema assembles the static field contract. Categorical ranges are
// informational only; out-of-domain encoded values are accepted and passed
// to the model as-is.
func buildSchema() schemaResponse {
	return schemaResponse{
		Fields: []fieldSchema{
			{
				Name:        "pclass",
				Type:        "integer",
				Required:    true,
				Description: "Ticket class",
				Default:     passenger.ClassFirst,
				Values: []schemaValue{
					{Value: passenger.ClassFirst, Label: passenger.ClassName(passenger.ClassFirst)},
					{Value: passenger.ClassSecond, Label: passenger.ClassName(passenger.ClassSecond)},
					{Value: passenger.ClassThird, Label: passenger.ClassName(passenger.ClassThird)},
				},
			},
			{
				Name:        "sex",
				Type:        "integer",
				Required:    true,
				Description: "Encoded sex",
				Default:     passenger.SexMale,
				Values: []schemaValue{
					{Value: passenger.SexMale, Label: passenger.SexName(passenger.SexMale)},
					{Value: passenger.SexFemale, Label: passenger.SexName(passenger.SexFemale)},
				},
			},
			{
				Name:        "age",
				Type:        "number",
				Required:    true,
				Description: "Age in years",
				Default:     30.0,
				Range:       &schemaRange{Min: validate.MinAge, Max: validate.MaxAge},
			},
			{
				Name:        "sibsp",
				Type:        "integer",
				Required:    true,
				Description: "Siblings and spouses aboard",
				Default:     0,
			},
			{
				Name:        "parch",
				Type:        "integer",
				Required:    true,
				Description: "Parents and children aboard",
				Default:     0,
			},
			{
				Name:        "fare",
				Type:        "number",
				Required:    true,
				Description: "Ticket fare, must not be negative",
				Default:     50.0,
			},
			{
				Name:        "embarked",
				Type:        "integer",
				Required:    true,
				Description: "Encoded embarkation port",
				Default:     passenger.PortSouthampton,
				Values: []schemaValue{
					{Value: passenger.PortSouthampton, Label: passenger.PortName(passenger.PortSouthampton)},
					{Value: passenger.PortCherbourg, Label: passenger.PortName(passenger.PortCherbourg)},
					{Value: passenger.PortQueenstown, Label: passenger.PortName(passenger.PortQueenstown)},
				},
			},
		},
		Labels: map[string]string{
			"survived":        types.LabelSurvived,
			"did_not_survive": types.LabelDidNotSurvive,
		},
	}
}
