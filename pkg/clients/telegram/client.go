package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lead-gateway/pkg/clients"
)

// Channel names this client in errors and logs
const Channel = "telegram"

// Client defines the interface for sending notifications through the
// Telegram Bot API
type Client interface {
	SendMessage(ctx context.Context, text string) error
}

type clientImpl struct {
	baseURL string
	token   string
	chatID  string
	http    *http.Client
}

// NewClient creates a new Telegram client. Every call is bounded by timeout.
func NewClient(baseURL, token, chatID string, timeout time.Duration) Client {
	return &clientImpl{
		baseURL: baseURL,
		token:   token,
		chatID:  chatID,
		http:    &http.Client{Timeout: timeout},
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage posts text to the configured chat. It returns a
// *clients.Error of kind rejected when Telegram answers ok=false, and of
// kind unreachable when no answer arrives within the timeout.
func (c *clientImpl) SendMessage(ctx context.Context, text string) error {
	sendURL := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)

	jsonPayload, err := json.Marshal(sendMessageRequest{ChatID: c.chatID, Text: text})
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, bytes.NewReader(jsonPayload))
	if err != nil {
		// The URL carries the bot token; Unreachable drops it from the error.
		return clients.Unreachable(Channel, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return clients.Unreachable(Channel, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return clients.Unreachable(Channel, fmt.Errorf("error reading response: %w", err))
	}

	var response sendMessageResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return clients.Rejected(Channel, fmt.Sprintf("unexpected response (status %d)", resp.StatusCode))
	}

	if !response.OK {
		return clients.Rejected(Channel, response.Description)
	}
	return nil
}
