package media

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/willowmind/companion-backend/internal/config"
)

// Client talks to an OpenAI-compatible media API for transcription,
// speech synthesis and image generation. Every call is a single bounded
// request; there is no retry logic.
type Client struct {
	cfg        config.MediaConfig
	httpClient *http.Client
}

// NewClient builds a media client from configuration.
func NewClient(cfg config.MediaConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + path
}

// do sends the request with bearer auth and returns the response body,
// folding non-2xx statuses into the error.
func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read media API response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("media API %s returned %d: %s",
			req.URL.Path, resp.StatusCode, truncateBody(body))
	}
	return body, nil
}

func (c *Client) postJSON(req *http.Request) *http.Request {
	req.Header.Set("Content-Type", "application/json")
	return req
}

func truncateBody(body []byte) string {
	const limit = 512
	s := string(bytes.TrimSpace(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
