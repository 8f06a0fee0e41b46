// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/whitestar/lifeboat/internal/domain/passenger"
)

// defaultMaxBodyBytes caps POST /predict bodies when no limit is configured.
const defaultMaxBodyBytes = 1 << 20

// predictRequest mirrors the OpenAPI schema for POST /predict. Fields use
// the training dataset column names and accept both JSON strings and
// numbers, since browser forms submit strings and API clients send numbers.
type predictRequest struct {
	Class           flexValue `json:"pclass"`
	Sex             flexValue `json:"sex"`
	Age             flexValue `json:"age"`
	SiblingsSpouses flexValue `json:"sibsp"`
	ParentsChildren flexValue `json:"parch"`
	Fare            flexValue `json:"fare"`
	EmbarkationPort flexValue `json:"embarked"`
}

// raw hands the untouched field texts to the validation layer.
func (p predictRequest) raw() passenger.Raw {
	return passenger.Raw{
		Class:           string(p.Class),
		Sex:             string(p.Sex),
		Age:             string(p.Age),
		SiblingsSpouses: string(p.SiblingsSpouses),
		ParentsChildren: string(p.ParentsChildren),
		Fare:            string(p.Fare),
		EmbarkationPort: string(p.EmbarkationPort),
	}
}

// PredictHandler handles prediction requests
type PredictHandler struct {
	deps    Predictor
	maxBody int64
}

// NewPredictHandler creates a new predict handler
func NewPredictHandler(deps Predictor, maxBodyBytes int64) *PredictHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &PredictHandler{deps: deps, maxBody: maxBodyBytes}
}

// HandlePredict handles POST /predict requests
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req predictRequest
	body := http.MaxBytesReader(w, r.Body, h.maxBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	pred, err := h.deps.Predict(r.Context(), req.raw())
	if err != nil {
		status, code := codeFor(err)
		writeError(w, status, code, err)
		return
	}

	writeJSON(w, http.StatusOK, pred)
}
