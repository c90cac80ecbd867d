package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/slack"
)

type stubWebhook struct {
	sent []slack.Message
	err  error
}

func (s *stubWebhook) Send(ctx context.Context, msg slack.Message) error {
	s.sent = append(s.sent, msg)
	return s.err
}

const allowedOrigin = "https://timeclock.example.com"

func newNotifyTestHandler(webhook *stubWebhook) NotifyHandler {
	return NewNotifyHandler(webhook, []string{allowedOrigin})
}

func TestNotify_AllowedOriginRelaysMessage(t *testing.T) {
	t.Parallel()
	webhook := &stubWebhook{}
	handler := newNotifyTestHandler(webhook)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notify", strings.NewReader(`{"text":"Alice clocked in"}`))
	req.Header.Set("Origin", allowedOrigin)
	rec := httptest.NewRecorder()

	handler.Notify(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, allowedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	require.Len(t, webhook.sent, 1)
	assert.Equal(t, "Alice clocked in", webhook.sent[0].Text)
}

func TestNotify_UnknownOriginForbidden(t *testing.T) {
	t.Parallel()
	webhook := &stubWebhook{}
	handler := newNotifyTestHandler(webhook)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notify", strings.NewReader(`{"text":"hi"}`))
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()

	handler.Notify(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden - CORS\n", rec.Body.String())
	assert.Empty(t, webhook.sent)
}

func TestNotify_MissingOriginForbidden(t *testing.T) {
	t.Parallel()
	webhook := &stubWebhook{}
	handler := newNotifyTestHandler(webhook)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notify", strings.NewReader(`{"text":"hi"}`))
	rec := httptest.NewRecorder()

	handler.Notify(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, webhook.sent)
}

func TestNotify_EmptyTextRejected(t *testing.T) {
	t.Parallel()
	webhook := &stubWebhook{}
	handler := newNotifyTestHandler(webhook)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notify", strings.NewReader(`{"text":"  "}`))
	req.Header.Set("Origin", allowedOrigin)
	rec := httptest.NewRecorder()

	handler.Notify(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, webhook.sent)
}

func TestNotify_PreflightAllowedOrigin(t *testing.T) {
	t.Parallel()
	handler := newNotifyTestHandler(&stubWebhook{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/notify", nil)
	req.Header.Set("Origin", allowedOrigin)
	rec := httptest.NewRecorder()

	handler.Preflight(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, allowedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestNotify_PreflightUnknownOriginForbidden(t *testing.T) {
	t.Parallel()
	handler := newNotifyTestHandler(&stubWebhook{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/notify", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()

	handler.Preflight(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNotify_WebhookFailureIsServerError(t *testing.T) {
	t.Parallel()
	webhook := &stubWebhook{err: assert.AnError}
	handler := newNotifyTestHandler(webhook)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notify", strings.NewReader(`{"text":"hi"}`))
	req.Header.Set("Origin", allowedOrigin)
	rec := httptest.NewRecorder()

	handler.Notify(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
