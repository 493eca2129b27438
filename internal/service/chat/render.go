package chat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/willowmind/companion-backend/internal/apperr"
	"github.com/willowmind/companion-backend/internal/model/chat"
)

// SpeechSynthesizer produces spoken audio for a reply.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// ImageGenerator produces an image URL for a prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Renderer shapes the final reply payload for the requested output kind.
type Renderer struct {
	tts      SpeechSynthesizer
	images   ImageGenerator
	detect   func(string) string
	mediaDir string
}

// NewRenderer ensures the media directory exists and wires the rendering
// capabilities.
func NewRenderer(tts SpeechSynthesizer, images ImageGenerator, detect func(string) string, mediaDir string) (*Renderer, error) {
	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %q: %w", mediaDir, err)
	}
	return &Renderer{
		tts:      tts,
		images:   images,
		detect:   detect,
		mediaDir: mediaDir,
	}, nil
}

// Render produces the reply for outputKind. imagePrompt is only consulted
// for image output. Unknown output kinds fall back to text.
func (r *Renderer) Render(ctx context.Context, replyText, outputKind, imagePrompt string) (*chat.Reply, error) {
	switch outputKind {
	case chat.OutputSpeech:
		audio, err := r.tts.Synthesize(ctx, replyText)
		if err != nil {
			return nil, apperr.Capability("speech synthesis", err)
		}
		name := fmt.Sprintf("audio_%s.mp3", randomHex())
		path := filepath.Join(r.mediaDir, name)
		if err := os.WriteFile(path, audio, 0o644); err != nil {
			return nil, apperr.Capability("speech synthesis",
				fmt.Errorf("failed to write audio artifact: %w", err))
		}
		return &chat.Reply{Text: replyText, AudioURL: path}, nil

	case chat.OutputImage:
		url, err := r.images.GenerateImage(ctx, imagePrompt)
		if err != nil {
			return nil, apperr.Capability("image generation", err)
		}
		return &chat.Reply{Text: "Image generated", ImageURL: url}, nil

	default:
		return &chat.Reply{Text: replyText, Language: r.detect(replyText)}, nil
	}
}

func randomHex() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
