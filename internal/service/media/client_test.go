package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/willowmind/companion-backend/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.MediaConfig{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		ASRModel:   "whisper-1",
		TTSModel:   "tts-1",
		TTSVoice:   "alloy",
		ImageModel: "dall-e-3",
		ImageSize:  "1024x1024",
		Timeout:    5,
	})
}

func TestTranscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("not a multipart request: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("unexpected model field: %q", got)
		}
		if got := r.FormValue("response_format"); got != "text" {
			t.Errorf("unexpected response_format: %q", got)
		}
		w.Write([]byte("  hello from the tape \n"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	transcript, err := client.Transcribe(context.Background(), []byte("fake-audio"), "voice.mp3", "audio/mpeg")
	if err != nil {
		t.Fatalf("transcribe failed: %v", err)
	}
	if transcript != "hello from the tape" {
		t.Fatalf("unexpected transcript: %q", transcript)
	}
}

func TestSynthesize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/speech" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("invalid request JSON: %v", err)
		}
		if payload["model"] != "tts-1" || payload["voice"] != "alloy" || payload["input"] != "say this" {
			t.Errorf("unexpected payload: %v", payload)
		}
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	audio, err := client.Synthesize(context.Background(), "say this")
	if err != nil {
		t.Fatalf("synthesize failed: %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Fatalf("unexpected audio: %q", audio)
	}
}

func TestSynthesizeRejectsEmptyText(t *testing.T) {
	client := newTestClient("http://unreachable.invalid")
	if _, err := client.Synthesize(context.Background(), "   "); err == nil {
		t.Fatal("expected an error for blank text")
	}
}

func TestGenerateImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("invalid request JSON: %v", err)
		}
		if payload["prompt"] != "a calm lake" || payload["model"] != "dall-e-3" {
			t.Errorf("unexpected payload: %v", payload)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"url": "https://img.example/lake.png"}},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	url, err := client.GenerateImage(context.Background(), "a calm lake")
	if err != nil {
		t.Fatalf("generate image failed: %v", err)
	}
	if url != "https://img.example/lake.png" {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestGenerateImageEmptyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.GenerateImage(context.Background(), "anything"); err == nil {
		t.Fatal("expected an error when no image is returned")
	}
}

func TestErrorStatusIsSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Synthesize(context.Background(), "say this")
	if err == nil {
		t.Fatal("expected an error for a 429 response")
	}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("error should carry status and body, got: %v", err)
	}
}
