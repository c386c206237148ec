package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tizor98/albertonet-sub000/pkg/logger"
)

// FunctionMessenger posts the message JSON to the external notification
// function. Dispatch only: composing and sending the email is that
// function's job, not this package's.
type FunctionMessenger struct {
	client *http.Client
	url    string
}

func NewFunctionMessenger(url string, timeout time.Duration) *FunctionMessenger {
	return &FunctionMessenger{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

func (m *FunctionMessenger) SendContactNotification(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal contact message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send contact notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notification function returned status %d", resp.StatusCode)
	}

	logger.Info("contact notification dispatched", "isCompany", msg.IsCompany)
	return nil
}

// LogMessenger records the notification instead of dispatching it; the
// fallback when no function URL is configured.
type LogMessenger struct{}

func (LogMessenger) SendContactNotification(_ context.Context, msg Message) error {
	logger.Info("contact notification (no function configured)",
		"name", msg.Name, "email", msg.Email, "isCompany", msg.IsCompany)
	return nil
}
