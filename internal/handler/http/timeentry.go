package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/tracklite/timeclock-backend-go/internal/domain/timeentry"
	"github.com/tracklite/timeclock-backend-go/internal/handler/http/response"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/jwt"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/sse"
)

type TimeEntryHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	ActiveClock(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	// SSE
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type timeEntryHandlerImpl struct {
	entryService timeentry.EntryService
	jwtService   jwt.Service
	hub          *sse.Hub
}

func NewTimeEntryHandler(entryService timeentry.EntryService, jwtService jwt.Service, hub *sse.Hub) TimeEntryHandler {
	return &timeEntryHandlerImpl{
		entryService: entryService,
		jwtService:   jwtService,
		hub:          hub,
	}
}

// getUserIDFromContext extracts user_id from JWT context
func getUserIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if userID, ok := claims["user_id"].(string); ok {
		return userID
	}
	return ""
}

// ClockIn implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var clockInReq timeentry.ClockInRequest

	// An empty body is allowed; the task can be set later at clock-out.
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&clockInReq); err != nil {
			slog.Error("ClockIn decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	clockResponse, err := h.entryService.ClockIn(r.Context(), clockInReq)
	if err != nil {
		slog.Error("ClockIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User clocked in", "user_id", getUserIDFromContext(r))
	response.Created(w, "Clocked in successfully", clockResponse)
}

// ClockOut implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var clockOutReq timeentry.ClockOutRequest

	if err := json.NewDecoder(r.Body).Decode(&clockOutReq); err != nil {
		slog.Error("ClockOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entryResponse, err := h.entryService.ClockOut(r.Context(), clockOutReq)
	if err != nil {
		slog.Error("ClockOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User clocked out", "user_id", getUserIDFromContext(r), "entry_id", entryResponse.ID)
	response.Created(w, "Clocked out successfully", entryResponse)
}

// ActiveClock implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) ActiveClock(w http.ResponseWriter, r *http.Request) {
	clockResponse, err := h.entryService.ActiveClock(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, clockResponse)
}

// List implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	listResponse, err := h.entryService.List(r.Context())
	if err != nil {
		slog.Error("List entries service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, listResponse)
}

// Delete implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		response.BadRequest(w, "Entry ID is required", nil)
		return
	}

	if err := h.entryService.Delete(r.Context(), entryID); err != nil {
		slog.Error("Delete entry service error", "error", err, "entry_id", entryID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Entry deleted", "entry_id", entryID, "user_id", getUserIDFromContext(r))
	response.SuccessWithMessage(w, "Entry deleted successfully", nil)
}

// GetSSEToken generates a short-lived token for SSE connections
func (h *timeEntryHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, timeentry.SSETokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream handles the SSE connection carrying live clock state changes
func (h *timeEntryHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (SSE doesn't support custom headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	// Validate SSE token
	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(userID)
	defer cleanup()

	// Initial snapshot so the client renders current clock state without
	// waiting for the next change.
	snapshot, err := h.entryService.ActiveClockForUser(r.Context(), userID)
	if err != nil {
		snapshot = timeentry.ActiveClockResponse{ClockedIn: false}
	}
	if data, err := json.Marshal(snapshot); err == nil {
		fmt.Fprintf(w, "event: clock.snapshot\ndata: %s\n\n", data)
		flusher.Flush()
	}

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			// Send keepalive ping
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
