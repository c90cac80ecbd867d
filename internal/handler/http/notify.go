package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tracklite/timeclock-backend-go/internal/handler/http/response"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/slack"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/validator"
)

type NotifyHandler interface {
	Notify(w http.ResponseWriter, r *http.Request)
	Preflight(w http.ResponseWriter, r *http.Request)
}

// notifyHandlerImpl relays messages to a Slack incoming webhook. It does its
// own origin check rather than riding the router's CORS middleware: requests
// from unlisted origins must get a 403 body, not a dropped header.
type notifyHandlerImpl struct {
	webhook        slack.WebhookClient
	allowedOrigins map[string]struct{}
}

func NewNotifyHandler(webhook slack.WebhookClient, allowedOrigins []string) NotifyHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}
	return &notifyHandlerImpl{
		webhook:        webhook,
		allowedOrigins: allowed,
	}
}

func (h *notifyHandlerImpl) originAllowed(r *http.Request) (string, bool) {
	origin := r.Header.Get("Origin")
	_, ok := h.allowedOrigins[origin]
	return origin, ok
}

type notifyRequest struct {
	Text string `json:"text"`
}

func (req *notifyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(req.Text) {
		errs = append(errs, validator.ValidationError{
			Field:   "text",
			Message: "text is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Preflight implements NotifyHandler.
func (h *notifyHandlerImpl) Preflight(w http.ResponseWriter, r *http.Request) {
	origin, ok := h.originAllowed(r)
	if !ok {
		http.Error(w, "Forbidden - CORS", http.StatusForbidden)
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.WriteHeader(http.StatusOK)
}

// Notify implements NotifyHandler.
func (h *notifyHandlerImpl) Notify(w http.ResponseWriter, r *http.Request) {
	origin, ok := h.originAllowed(r)
	if !ok {
		http.Error(w, "Forbidden - CORS", http.StatusForbidden)
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", origin)

	var notifyReq notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&notifyReq); err != nil {
		slog.Error("Notify decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := notifyReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.webhook.Send(r.Context(), slack.Message{Text: notifyReq.Text}); err != nil {
		slog.Error("Slack relay error", "error", err)
		response.InternalServerError(w, "Failed to deliver notification")
		return
	}

	response.SuccessWithMessage(w, "Notification sent", nil)
}
