package meta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"lead-gateway/pkg/clients"
)

// Channel names this client in errors and logs
const Channel = "meta"

// Client defines the interface for interacting with the Conversions API
type Client interface {
	SendEvents(ctx context.Context, payload EventsRequest) (EventsResponse, error)
}

type clientImpl struct {
	baseURL     string
	version     string
	pixelID     string
	accessToken string
	http        *http.Client
}

// NewClient creates a new Conversions API client
func NewClient(baseURL, version, pixelID, accessToken string, timeout time.Duration) Client {
	return &clientImpl{
		baseURL:     baseURL,
		version:     version,
		pixelID:     pixelID,
		accessToken: accessToken,
		http:        &http.Client{Timeout: timeout},
	}
}

// SendEvents posts payload to the pixel's events edge. A response without
// events_received counts as rejected.
func (c *clientImpl) SendEvents(ctx context.Context, payload EventsRequest) (EventsResponse, error) {
	eventsURL := fmt.Sprintf("%s/%s/%s/events?access_token=%s",
		c.baseURL, c.version, url.PathEscape(c.pixelID), url.QueryEscape(c.accessToken))

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return EventsResponse{}, fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, eventsURL, bytes.NewReader(jsonPayload))
	if err != nil {
		// The URL carries the access token; Unreachable drops it from the error.
		return EventsResponse{}, clients.Unreachable(Channel, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return EventsResponse{}, clients.Unreachable(Channel, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return EventsResponse{}, clients.Unreachable(Channel, fmt.Errorf("error reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return EventsResponse{}, clients.Rejected(Channel, apiErr.Error.Message)
		}
		return EventsResponse{}, clients.Rejected(Channel, fmt.Sprintf("status %d", resp.StatusCode))
	}

	var response EventsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return EventsResponse{}, clients.Rejected(Channel, "unparseable response")
	}
	if response.EventsReceived == 0 {
		return response, clients.Rejected(Channel, "no events received")
	}
	return response, nil
}
