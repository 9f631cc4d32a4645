package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rajivmehta/cargoplan-go/internal/adapters/csvdata"
	"github.com/rajivmehta/cargoplan-go/internal/application/disruption"
	"github.com/rajivmehta/cargoplan-go/internal/application/pipeline"
	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
	"github.com/rajivmehta/cargoplan-go/internal/sampledata"
)

// PlanRequest carries inline CSV documents plus an optional disruption
// scenario and seed override.
type PlanRequest struct {
	FlightsCSV     string             `json:"flights_csv"`
	CargoCSV       string             `json:"cargo_csv"`
	ConnectionsCSV string             `json:"connections_csv"`
	Events         []disruption.Event `json:"events,omitempty"`
	Seed           *int64             `json:"seed,omitempty"`
}

// PlanResponse is the structured equivalent of the four output files.
type PlanResponse struct {
	RunID   string            `json:"run_id"`
	Payload *pipeline.Payload `json:"payload"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w) {
		return
	}

	var request PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}
	if request.FlightsCSV == "" || request.CargoCSV == "" {
		writeError(w, http.StatusBadRequest, "flights_csv and cargo_csv are required")
		return
	}

	flights, err := csvdata.LoadFlights(strings.NewReader(request.FlightsCSV))
	if err != nil {
		writeLoadError(w, err)
		return
	}
	cargo, err := csvdata.LoadCargo(strings.NewReader(request.CargoCSV))
	if err != nil {
		writeLoadError(w, err)
		return
	}
	rules := planning.NewRuleIndex(nil)
	if request.ConnectionsCSV != "" {
		if rules, err = csvdata.LoadConnections(strings.NewReader(request.ConnectionsCSV)); err != nil {
			writeLoadError(w, err)
			return
		}
	}
	for _, event := range request.Events {
		if err := event.Validate(); err != nil {
			writeLoadError(w, err)
			return
		}
	}

	inputs := pipeline.Inputs{Flights: flights, Cargo: cargo, Rules: rules, Events: request.Events}
	s.runPlan(w, r, inputs, request.Seed)
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w) {
		return
	}

	inputs, err := sampledata.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if r.URL.Query().Get("disrupt") == "true" {
		events, err := sampledata.Events()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		inputs.Events = events
	}

	var seed *int64
	if raw := r.URL.Query().Get("seed"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "seed must be an integer")
			return
		}
		seed = &parsed
	}

	s.runPlan(w, r, inputs, seed)
}

func (s *Server) runPlan(w http.ResponseWriter, r *http.Request, inputs pipeline.Inputs, seed *int64) {
	options := s.options
	if seed != nil {
		options.Params.Seed = *seed
	}

	planner := pipeline.NewPlanner(options, s.recorder, s.history)
	result, err := planner.Run(r.Context(), inputs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, PlanResponse{RunID: result.RunID, Payload: result.Payload})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, "plan run history is disabled")
		return
	}
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	records, err := s.history.FindRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, "plan run history is disabled")
		return
	}
	record, err := s.history.FindByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// allow enforces the plan-run rate limit.
func (s *Server) allow(w http.ResponseWriter) bool {
	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "plan run rate limit exceeded")
		return false
	}
	return true
}

// writeLoadError maps input failures: validation errors are the
// caller's fault, anything else is ours.
func writeLoadError(w http.ResponseWriter, err error) {
	if planning.IsDataValidation(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
