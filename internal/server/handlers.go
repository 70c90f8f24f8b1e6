package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	"github.com/shahar-caura/evadvisor/internal/advisor"
	"github.com/shahar-caura/evadvisor/internal/scenario"
)

// maxBodyBytes bounds an /api/ask request; a snapshot is a few hundred bytes.
const maxBodyBytes = 64 << 10

// Handlers serves the advisor JSON API.
type Handlers struct {
	Version         string
	StartTime       time.Time
	Logger          *slog.Logger
	Advisor         *advisor.Advisor
	DefaultScenario string // used by /api/ask when the request names none
}

// Register mounts every handler on mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.GetHealth)
	mux.HandleFunc("POST /api/ask", h.Ask)
	mux.HandleFunc("GET /api/classify", h.Classify)
	mux.HandleFunc("GET /api/suggestions", h.GetSuggestions)
	mux.HandleFunc("GET /api/scenarios", h.ListScenarios)
	mux.HandleFunc("GET /api/scenarios/{id}", h.GetScenario)
}

func (h *Handlers) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Version:       h.Version,
		UptimeSeconds: int(time.Since(h.StartTime).Seconds()),
	})
}

func (h *Handlers) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	metrics, scenarioID, status, err := h.resolveMetrics(req)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	reply := h.Advisor.Reply(req.Query, metrics)
	h.Logger.Debug("answered query", "category", reply.Category, "scenario", scenarioID)

	writeJSON(w, http.StatusOK, AskResponse{
		ID:         uuid.New(),
		Category:   reply.Category,
		Reply:      reply.Text,
		ScenarioID: scenarioID,
		CreatedAt:  time.Now().UTC(),
	})
}

var (
	errAmbiguousScenario = errors.New("give either scenarioId or scenario, not both")
	errNoScenario        = errors.New("scenarioId or scenario is required")
)

// resolveMetrics picks the snapshot an ask request is answered from.
func (h *Handlers) resolveMetrics(req AskRequest) (scenario.ScenarioContext, string, int, error) {
	switch {
	case req.ScenarioID != nil && req.Scenario != nil:
		return scenario.ScenarioContext{}, "", http.StatusBadRequest, errAmbiguousScenario
	case req.Scenario != nil:
		return *req.Scenario, "", 0, nil
	}

	id := h.DefaultScenario
	if req.ScenarioID != nil {
		id = *req.ScenarioID
	}
	if id == "" {
		return scenario.ScenarioContext{}, "", http.StatusBadRequest, errNoScenario
	}

	s, err := scenario.Load(id)
	switch {
	case errors.Is(err, scenario.ErrNotFound):
		return scenario.ScenarioContext{}, "", http.StatusNotFound, err
	case errors.Is(err, scenario.ErrInvalidID):
		return scenario.ScenarioContext{}, "", http.StatusBadRequest, err
	case err != nil:
		return scenario.ScenarioContext{}, "", http.StatusInternalServerError, err
	}
	return s.Metrics, s.ID, 0, nil
}

func (h *Handlers) Classify(w http.ResponseWriter, r *http.Request) {
	var q string
	if err := runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ClassifyResponse{Query: q, Category: advisor.Classify(q)})
}

func (h *Handlers) GetSuggestions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, SuggestionsResponse{
		Greeting:  advisor.Greeting,
		Questions: advisor.SuggestedQuestions,
	})
}

func (h *Handlers) ListScenarios(w http.ResponseWriter, _ *http.Request) {
	list, err := scenario.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []*scenario.Scenario{}
	}
	writeJSON(w, http.StatusOK, ScenarioList{Scenarios: list, Total: len(list)})
}

func (h *Handlers) GetScenario(w http.ResponseWriter, r *http.Request) {
	var id string
	err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, r.PathValue("id"), &id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := scenario.Load(id)
	switch {
	case errors.Is(err, scenario.ErrNotFound):
		writeError(w, http.StatusNotFound, "scenario not found")
	case errors.Is(err, scenario.ErrInvalidID):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, s)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Code: status, Message: msg})
}
