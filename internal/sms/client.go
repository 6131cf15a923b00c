// Package sms talks to the SMS gateway and accepts inbound messages from it.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNoGateway is returned when no gateway URL is configured.
var ErrNoGateway = errors.New("sms: no gateway configured")

// Inbound is one message read from the gateway.
type Inbound struct {
	Phone     string `json:"phone"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Client calls the gateway's HTTP API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client for the gateway at baseURL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether a gateway is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.BaseURL != ""
}

type sendRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Send asks the gateway to deliver message to phone.
func (c *Client) Send(ctx context.Context, phone, message string) error {
	if !c.Enabled() {
		return ErrNoGateway
	}
	body, err := json.Marshal(sendRequest{Phone: phone, Message: message})
	if err != nil {
		return fmt.Errorf("encode send: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build send: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return gatewayError("send sms", resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// Receive reads unread messages from the gateway.
func (c *Client) Receive(ctx context.Context) ([]Inbound, error) {
	if !c.Enabled() {
		return nil, ErrNoGateway
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/receive", nil)
	if err != nil {
		return nil, fmt.Errorf("build receive: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("receive sms: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, gatewayError("receive sms", resp)
	}
	var out struct {
		Messages []Inbound `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode receive: %w", err)
	}
	return out.Messages, nil
}

func gatewayError(op string, resp *http.Response) error {
	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(raw, &body) == nil {
		if body.Error != "" {
			return fmt.Errorf("%s: %s (status %d)", op, body.Error, resp.StatusCode)
		}
		if body.Detail != "" {
			return fmt.Errorf("%s: %s (status %d)", op, body.Detail, resp.StatusCode)
		}
	}
	return fmt.Errorf("%s: status %d", op, resp.StatusCode)
}
