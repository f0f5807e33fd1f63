// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/scorewatch/scorewatch/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Subscribe registers a recipient for one event. Returns false when
	// the pair already existed.
	Subscribe(ctx context.Context, eventID int, recipientID string, kind model.Kind, section model.Section) (bool, error)

	// Unsubscribe removes a recipient's subscription. Returns false when
	// there was nothing to remove.
	Unsubscribe(ctx context.Context, eventID int, recipientID string, section model.Section) (bool, error)

	// ListLive returns the most recent feed observation.
	ListLive(ctx context.Context) []model.EventSnapshot
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler        *HealthHandler
	statsHandler         *StatsHandler
	subscriptionsHandler *SubscriptionsHandler
	liveHandler          *LiveHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:        NewHealthHandler(),
		statsHandler:         NewStatsHandler(statsProvider),
		subscriptionsHandler: NewSubscriptionsHandler(deps),
		liveHandler:          NewLiveHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/subscriptions", MetricsMiddleware(s.subscriptionsHandler.HandleSubscriptions, "subscriptions"))
	mux.HandleFunc("/live", MetricsMiddleware(s.liveHandler.HandleGetLive, "live"))
}

// subscriptionRequest mirrors the request schema for /subscriptions.
type subscriptionRequest struct {
	EventID     int    `json:"event_id"`
	RecipientID string `json:"recipient_id"`
	Kind        string `json:"kind"`
	Section     string `json:"section"`
}

func (s *subscriptionRequest) validate() error {
	if s.EventID <= 0 {
		return errors.New("missing or invalid event_id")
	}
	if strings.TrimSpace(s.RecipientID) == "" {
		return errors.New("missing recipient_id")
	}
	if s.Kind == "" {
		s.Kind = string(model.KindRound)
	}
	if !model.Kind(s.Kind).Valid() {
		return errors.New("invalid kind; must be round, map or outcome")
	}
	if s.Section == "" {
		s.Section = string(model.SectionLive)
	}
	if !model.Section(s.Section).Valid() {
		return errors.New("invalid section; must be live or pending")
	}
	return nil
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

type unsubscribeResponse struct {
	Status  string `json:"status"`
	Removed bool   `json:"removed"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
