package expopush

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://exp.host/--/api/v2/push/send"

// Client клиент для отправки push-уведомлений через Expo Push API
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Expo Push
// Пустой baseURL заменяется публичным эндпоинтом Expo
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет push-уведомление на токен устройства
func (c *Client) Send(ctx context.Context, token, title, body string) error {
	payload, err := json.Marshal(Message{
		To:    token,
		Sound: "default",
		Title: title,
		Body:  body,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal message: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	for _, ticket := range parsed.Data {
		if ticket.Status != "ok" {
			return fmt.Errorf("%w: ticket status %q: %s", ErrInvalidResponse, ticket.Status, ticket.Message)
		}
	}

	c.log.Debug("Expo push delivered, token=%s title=%q", token, title)
	return nil
}
