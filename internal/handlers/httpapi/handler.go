// Package httpapi exposes the roll service as a small JSON over HTTP
// surface for bots and app frontends.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rollforge/roll-api/internal/dicelang"
	"github.com/rollforge/roll-api/internal/errors"
	"github.com/rollforge/roll-api/internal/orchestrators/roller"
	"github.com/rollforge/roll-api/internal/repositories/rollhistory"
)

// Handler serves the v1 JSON endpoints.
type Handler struct {
	rollService roller.Service
}

// Config holds the dependencies for the HTTP handler
type Config struct {
	RollService roller.Service
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.RollService == nil {
		vb.RequiredField("RollService")
	}

	return vb.Build()
}

// NewHandler creates a new HTTP handler with the provided dependencies
func NewHandler(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{rollService: cfg.RollService}, nil
}

// Register attaches the v1 routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/roll", h.handleRoll)
	mux.HandleFunc("POST /v1/validate", h.handleValidate)
	mux.HandleFunc("GET /v1/history", h.handleGetHistory)
	mux.HandleFunc("DELETE /v1/history", h.handleClearHistory)
}

// RollRequest is the body of POST /v1/roll. Times greater than one asks
// for that many independent evaluations of the same expression.
type RollRequest struct {
	EntityID   string         `json:"entity_id,omitempty"`
	Context    string         `json:"context,omitempty"`
	Expression string         `json:"expression"`
	Variables  map[string]int `json:"variables,omitempty"`
	Label      string         `json:"label,omitempty"`
	Times      int            `json:"times,omitempty"`
}

// RollResponse is the body of a successful POST /v1/roll.
type RollResponse struct {
	Results []*dicelang.RollResult `json:"results"`

	// Display is the chat-ready rendering; empty for multi-roll requests
	Display string `json:"display,omitempty"`
}

// ValidateRequest is the body of POST /v1/validate.
type ValidateRequest struct {
	Expression string `json:"expression"`
}

// HistoryResponse is the body of GET /v1/history.
type HistoryResponse struct {
	Session *rollhistory.Session `json:"session"`
}

// ClearHistoryResponse is the body of DELETE /v1/history.
type ClearHistoryResponse struct {
	EntriesDeleted int `json:"entries_deleted"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (h *Handler) handleRoll(w http.ResponseWriter, r *http.Request) {
	var req RollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidArgument("invalid request body"))
		return
	}

	if req.Times > 1 {
		output, err := h.rollService.RollMultiple(r.Context(), &roller.RollMultipleInput{
			EntityID:   req.EntityID,
			Context:    req.Context,
			Expression: req.Expression,
			Variables:  req.Variables,
			Label:      req.Label,
			Times:      req.Times,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, &RollResponse{Results: output.Results})
		return
	}

	output, err := h.rollService.Roll(r.Context(), &roller.RollInput{
		EntityID:   req.EntityID,
		Context:    req.Context,
		Expression: req.Expression,
		Variables:  req.Variables,
		Label:      req.Label,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &RollResponse{
		Results: []*dicelang.RollResult{output.Result},
		Display: output.Display,
	})
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidArgument("invalid request body"))
		return
	}

	output, err := h.rollService.Validate(r.Context(), &roller.ValidateInput{
		Expression: req.Expression,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &dicelang.ValidationResult{
		Valid: output.Valid,
		Error: output.Error,
	})
}

func (h *Handler) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	output, err := h.rollService.GetHistory(r.Context(), &roller.GetHistoryInput{
		EntityID: r.URL.Query().Get("entity_id"),
		Context:  r.URL.Query().Get("context"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &HistoryResponse{Session: output.Session})
}

func (h *Handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	output, err := h.rollService.ClearHistory(r.Context(), &roller.ClearHistoryInput{
		EntityID: r.URL.Query().Get("entity_id"),
		Context:  r.URL.Query().Get("context"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &ClearHistoryResponse{EntriesDeleted: output.EntriesDeleted})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, code.HTTPStatus(), &errorResponse{
		Error: errors.GetMessage(err),
		Code:  code.String(),
	})
}
