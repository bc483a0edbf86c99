package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// WhatsAppGateway sends messages through an external WhatsApp HTTP gateway
type WhatsAppGateway struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *zap.Logger
}

// NewWhatsAppGateway creates a gateway client for the given base URL and token
func NewWhatsAppGateway(baseURL, token string, logger *zap.Logger) *WhatsAppGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhatsAppGateway{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

type sendRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SendCredentials posts one message to the gateway
func (g *WhatsAppGateway) SendCredentials(ctx context.Context, phone, message string) error {
	if g.baseURL == "" {
		return fmt.Errorf("whatsapp gateway not configured")
	}

	body, err := json.Marshal(sendRequest{Phone: phone, Message: message})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach whatsapp gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.logger.Warn("whatsapp gateway rejected message",
			zap.Int("status", resp.StatusCode), zap.String("phone", phone))
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}

	return nil
}
