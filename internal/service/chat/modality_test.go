package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/willowmind/companion-backend/internal/apperr"
	"github.com/willowmind/companion-backend/internal/model/chat"
	"github.com/willowmind/companion-backend/internal/service/ai"
)

type fakeTranscriber struct {
	transcript string
	err        error
	calls      int
	lastName   string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ []byte, filename, _ string) (string, error) {
	f.calls++
	f.lastName = filename
	return f.transcript, f.err
}

func attachment(name string) *chat.Attachment {
	return &chat.Attachment{Filename: name, ContentType: "application/octet-stream", Data: []byte{1}}
}

func TestResolveImageWins(t *testing.T) {
	transcriber := &fakeTranscriber{transcript: "spoken words"}
	extractor := NewExtractor(transcriber)

	req := &chat.Request{
		Text:     "describe this",
		Image:    attachment("photo.png"),
		Video:    attachment("clip.mp4"),
		Audio:    attachment("voice.mp3"),
		Document: attachment("notes.txt"),
	}

	input, err := extractor.Resolve(context.Background(), req)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !input.IsVision() {
		t.Fatal("expected a vision input")
	}
	if input.Text != "describe this" {
		t.Fatalf("unexpected prompt: %q", input.Text)
	}
	if transcriber.calls != 0 {
		t.Fatalf("transcriber should not run when an image is present, ran %d times", transcriber.calls)
	}
}

func TestResolveImageDefaultPrompt(t *testing.T) {
	extractor := NewExtractor(&fakeTranscriber{})

	input, err := extractor.Resolve(context.Background(), &chat.Request{Image: attachment("photo.png")})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if input.Text != ai.DefaultVisionPrompt {
		t.Fatalf("expected default vision prompt, got %q", input.Text)
	}
}

func TestResolveVideoBeforeAudio(t *testing.T) {
	transcriber := &fakeTranscriber{transcript: " from the video "}
	extractor := NewExtractor(transcriber)

	req := &chat.Request{
		Video: attachment("clip.mp4"),
		Audio: attachment("voice.mp3"),
	}

	input, err := extractor.Resolve(context.Background(), req)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if input.Text != "from the video" {
		t.Fatalf("unexpected transcript: %q", input.Text)
	}
	if transcriber.lastName != "clip.mp4" {
		t.Fatalf("expected the video attachment to be transcribed, got %q", transcriber.lastName)
	}
}

func TestResolveTranscriptionFailure(t *testing.T) {
	transcriber := &fakeTranscriber{err: errors.New("upstream down")}
	extractor := NewExtractor(transcriber)

	_, err := extractor.Resolve(context.Background(), &chat.Request{Audio: attachment("voice.mp3")})
	var capErr *apperr.CapabilityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapabilityError, got %v", err)
	}
	if capErr.Capability != "transcription" {
		t.Fatalf("unexpected capability: %q", capErr.Capability)
	}
}

func TestResolveDocument(t *testing.T) {
	extractor := NewExtractor(&fakeTranscriber{})

	req := &chat.Request{
		Text:     "this text must lose to the document",
		Document: &chat.Attachment{Filename: "notes.txt", Data: []byte("from the document")},
	}

	input, err := extractor.Resolve(context.Background(), req)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if input.Text != "from the document" {
		t.Fatalf("unexpected text: %q", input.Text)
	}
	if input.IsVision() {
		t.Fatal("document input must not be vision")
	}
}

func TestResolveDocumentUnsupportedFormat(t *testing.T) {
	extractor := NewExtractor(&fakeTranscriber{})

	req := &chat.Request{Document: attachment("report.docx")}

	_, err := extractor.Resolve(context.Background(), req)
	if !errors.Is(err, apperr.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestResolveTextFallback(t *testing.T) {
	extractor := NewExtractor(&fakeTranscriber{})

	input, err := extractor.Resolve(context.Background(), &chat.Request{Text: "  hello  "})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if input.Text != "hello" {
		t.Fatalf("unexpected text: %q", input.Text)
	}
}

func TestResolveNoInput(t *testing.T) {
	extractor := NewExtractor(&fakeTranscriber{})

	_, err := extractor.Resolve(context.Background(), &chat.Request{Text: "   "})
	if !errors.Is(err, apperr.ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}
