package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type speechRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
	Input string `json:"input"`
}

// Synthesize converts text to spoken audio and returns the encoded bytes
// (mp3 with the default model settings).
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("synthesis text is empty")
	}

	payload, err := json.Marshal(speechRequest{
		Model: c.cfg.TTSModel,
		Voice: c.cfg.TTSVoice,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build synthesis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint("/audio/speech"), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	audio, err := c.do(c.postJSON(req))
	if err != nil {
		return nil, err
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("synthesis returned empty audio")
	}
	return audio, nil
}
