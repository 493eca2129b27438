package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/willowmind/companion-backend/internal/apperr"
	"github.com/willowmind/companion-backend/internal/model/chat"
	"github.com/willowmind/companion-backend/internal/service/ai"
	"github.com/willowmind/companion-backend/internal/service/docs"
)

// Transcriber converts recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, data []byte, filename, contentType string) (string, error)
}

// Input is the single logical input resolved from a request: a vision
// pairing of text and image, or plain text.
type Input struct {
	Text  string
	Image *chat.Attachment
}

// IsVision reports whether the input carries an image.
func (in *Input) IsVision() bool { return in.Image != nil }

// Extractor normalizes the mutually exclusive request modalities into one
// Input.
type Extractor struct {
	transcriber Transcriber
	extractText func(filename string, data []byte) (string, error)
}

// NewExtractor wires the transcription capability; document extraction is
// local and fixed.
func NewExtractor(transcriber Transcriber) *Extractor {
	return &Extractor{
		transcriber: transcriber,
		extractText: docs.Extract,
	}
}

// Resolve picks exactly one input. An image wins over everything else;
// otherwise video, audio and document are consulted, in that order,
// before the text field. Empty transcripts and extractions pass through
// unchanged.
func (e *Extractor) Resolve(ctx context.Context, req *chat.Request) (*Input, error) {
	if req.Image != nil {
		text := strings.TrimSpace(req.Text)
		if text == "" {
			text = ai.DefaultVisionPrompt
		}
		return &Input{Text: text, Image: req.Image}, nil
	}

	switch {
	case req.Video != nil:
		return e.transcribe(ctx, req.Video)
	case req.Audio != nil:
		return e.transcribe(ctx, req.Audio)
	case req.Document != nil:
		text, err := e.extractText(req.Document.Filename, req.Document.Data)
		if err != nil {
			if errors.Is(err, apperr.ErrUnsupportedFormat) {
				return nil, err
			}
			return nil, apperr.Capability("document extraction", err)
		}
		return &Input{Text: text}, nil
	case strings.TrimSpace(req.Text) != "":
		return &Input{Text: strings.TrimSpace(req.Text)}, nil
	}

	return nil, apperr.ErrNoInput
}

func (e *Extractor) transcribe(ctx context.Context, att *chat.Attachment) (*Input, error) {
	text, err := e.transcriber.Transcribe(ctx, att.Data, att.Filename, att.ContentType)
	if err != nil {
		return nil, apperr.Capability("transcription", err)
	}
	return &Input{Text: strings.TrimSpace(text)}, nil
}
