package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrInvalidToken is returned when the gateway reports the device token as
// no longer registered. Callers should prune the token.
var ErrInvalidToken = errors.New("push token is not registered")

// Notification is a single push message for one device.
type Notification struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Sender delivers push notifications to patient devices.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// HTTPSender posts notifications to the configured gateway as JSON.
type HTTPSender struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// NewSender creates a gateway-backed push sender.
func NewSender(cfg Config, logger *zap.Logger) *HTTPSender {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	return &HTTPSender{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger: logger,
	}
}

// Send posts a notification. An unconfigured endpoint is a silent no-op so
// development environments work without a gateway.
func (s *HTTPSender) Send(ctx context.Context, n Notification) error {
	if s.cfg.Endpoint == "" {
		s.logger.Warn("push gateway not configured, notification dropped",
			zap.String("title", n.Title))
		return nil
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("push delivery failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ErrInvalidToken
	case resp.StatusCode >= 400:
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}
	return nil
}
