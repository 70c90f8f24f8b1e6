package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/shahar-caura/evadvisor/internal/advisor"
	"github.com/shahar-caura/evadvisor/internal/scenario"
)

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int    `json:"uptimeSeconds"`
}

// AskRequest carries one user turn. Exactly one of ScenarioID or Scenario
// selects the metrics, unless the server has a default scenario.
type AskRequest struct {
	Query      string                    `json:"query"`
	ScenarioID *string                   `json:"scenarioId,omitempty"`
	Scenario   *scenario.ScenarioContext `json:"scenario,omitempty"`
}

type AskResponse struct {
	ID         uuid.UUID        `json:"id"`
	Category   advisor.Category `json:"category"`
	Reply      string           `json:"reply"`
	ScenarioID string           `json:"scenarioId,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}

type ClassifyResponse struct {
	Query    string           `json:"query"`
	Category advisor.Category `json:"category"`
}

type SuggestionsResponse struct {
	Greeting  string   `json:"greeting"`
	Questions []string `json:"questions"`
}

type ScenarioList struct {
	Scenarios []*scenario.Scenario `json:"scenarios"`
	Total     int                  `json:"total"`
}
