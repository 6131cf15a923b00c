package relay

import (
	"bufio"
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

// Client publishes to and listens on a remote relay.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	// Stream is used for the long-lived /events request and has no timeout.
	Stream *http.Client
}

// NewClient returns a client for the relay at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		Stream:  &http.Client{},
	}
}

// Publish posts v to /broadcast.
func (c *Client) Publish(ctx context.Context, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/broadcast", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build broadcast: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("broadcast: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("broadcast: status %d", resp.StatusCode)
	}
	return nil
}

// Listen streams /events and calls fn with each payload until ctx ends or
// the stream closes. A cancelled context returns nil.
func (c *Client) Listen(ctx context.Context, fn func([]byte)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/events", nil)
	if err != nil {
		return fmt.Errorf("build listen: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	resp, err := c.Stream.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("listen: status %d", resp.StatusCode)
	}
	err = readEvents(resp.Body, fn)
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// readEvents parses a Server-Sent Events stream, joining multi-line data
// fields and ignoring comments.
func readEvents(r io.Reader, fn func([]byte)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxBroadcastBytes)
	var data []string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if len(data) > 0 {
				fn([]byte(strings.Join(data, "\n")))
				data = data[:0]
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
	return scanner.Err()
}
