// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/scorewatch/scorewatch/internal/domain/model"
)

// SubscriptionsHandler handles subscription commands.
type SubscriptionsHandler struct {
	deps Dependencies
}

// NewSubscriptionsHandler creates a new subscriptions handler.
func NewSubscriptionsHandler(deps Dependencies) *SubscriptionsHandler {
	return &SubscriptionsHandler{deps: deps}
}

// HandleSubscriptions dispatches POST (subscribe) and DELETE (unsubscribe)
// requests on /subscriptions.
func (h *SubscriptionsHandler) HandleSubscriptions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleSubscribe(w, r)
	case http.MethodDelete:
		h.handleUnsubscribe(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *SubscriptionsHandler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	const op = "api.subscribe"
	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	added, err := h.deps.Subscribe(r.Context(),
		req.EventID, req.RecipientID, model.Kind(req.Kind), model.Section(req.Section))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage", WrapKind(op, ErrStorage, err))
		return
	}
	if !added {
		// The pair already existed; acknowledge without creating.
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}
	writeJSON(w, http.StatusCreated, ackResponse{Status: "subscribed"})
}

func (h *SubscriptionsHandler) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	const op = "api.unsubscribe"
	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	removed, err := h.deps.Unsubscribe(r.Context(),
		req.EventID, req.RecipientID, model.Section(req.Section))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage", WrapKind(op, ErrStorage, err))
		return
	}
	status := "unsubscribed"
	if !removed {
		status = "not_subscribed"
	}
	writeJSON(w, http.StatusOK, unsubscribeResponse{Status: status, Removed: removed})
}
