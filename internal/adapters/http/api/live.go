// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/scorewatch/scorewatch/internal/domain/model"
)

// LiveHandler serves the most recent feed observation.
type LiveHandler struct {
	deps Dependencies
}

// NewLiveHandler creates a new live events handler.
func NewLiveHandler(deps Dependencies) *LiveHandler {
	return &LiveHandler{deps: deps}
}

type liveResponse struct {
	Events []model.EventSnapshot `json:"events"`
}

// HandleGetLive handles GET /live requests.
func (h *LiveHandler) HandleGetLive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	events := h.deps.ListLive(r.Context())
	if events == nil {
		events = []model.EventSnapshot{}
	}
	writeJSON(w, http.StatusOK, liveResponse{Events: events})
}
