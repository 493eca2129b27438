package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type imageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	N       int    `json:"n"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// GenerateImage asks the image endpoint for a single image and returns
// its URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(imageRequest{
		Model:   c.cfg.ImageModel,
		Prompt:  prompt,
		Size:    c.cfg.ImageSize,
		Quality: "standard",
		N:       1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint("/images/generations"), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	body, err := c.do(c.postJSON(req))
	if err != nil {
		return "", err
	}

	var parsed imageResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode image response: %w", err)
	}
	if len(parsed.Data) == 0 || parsed.Data[0].URL == "" {
		return "", fmt.Errorf("image API returned no image")
	}
	return parsed.Data[0].URL, nil
}
