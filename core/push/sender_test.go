package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSendDeliversJSON(t *testing.T) {
	var received Notification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := NewSender(Config{Endpoint: srv.URL, APIKey: "test-key"}, zap.NewNop())
	err := sender.Send(context.Background(), Notification{
		Token: "device-1",
		Title: "Hola",
		Body:  "Tienes un nuevo cuestionario",
	})
	assert.NoError(t, err)
	assert.Equal(t, "device-1", received.Token)
	assert.Equal(t, "Hola", received.Title)
}

func TestSendInvalidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer srv.Close()

	sender := NewSender(Config{Endpoint: srv.URL}, zap.NewNop())
	err := sender.Send(context.Background(), Notification{Token: "stale"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSendUnconfigured(t *testing.T) {
	sender := NewSender(Config{}, zap.NewNop())
	err := sender.Send(context.Background(), Notification{Token: "any"})
	assert.NoError(t, err, "unconfigured gateway drops silently")
}
