package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.twilio.com"

// Client клиент для отправки WhatsApp-сообщений через Twilio Messages API
// Без учетных данных работает в preview-режиме: сообщения только логируются
type Client struct {
	baseURL    string
	accountSID string
	authToken  string
	fromNumber string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Twilio
func NewClient(baseURL, accountSID, authToken, fromNumber string, timeout time.Duration, log Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Configured сообщает, заданы ли учетные данные Twilio
func (c *Client) Configured() bool {
	return c.accountSID != "" && c.authToken != "" && c.fromNumber != ""
}

// SendWhatsApp отправляет WhatsApp-сообщение на номер получателя
// В preview-режиме текст пишется в лог и отправка пропускается
func (c *Client) SendWhatsApp(ctx context.Context, toNumber, body string) error {
	if !c.Configured() {
		c.log.Info("Twilio not configured, WhatsApp preview: to=%s body=%q", toNumber, body)
		return nil
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)

	form := url.Values{}
	form.Set("From", "whatsapp:"+c.fromNumber)
	form.Set("To", "whatsapp:"+toNumber)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var parsed messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Debug("WhatsApp message accepted, sid=%s status=%s", parsed.SID, parsed.Status)
	return nil
}
