package language

import "testing"

func TestDetectEmptyDefaultsToEnglish(t *testing.T) {
	if got := Detect(""); got != "en" {
		t.Fatalf("Detect(\"\") = %q, want \"en\"", got)
	}
}

func TestDetectEnglish(t *testing.T) {
	if got := Detect("The weather is lovely today and I feel great."); got != "en" {
		t.Fatalf("expected \"en\", got %q", got)
	}
}

func TestDetectRussian(t *testing.T) {
	if got := Detect("Сегодня прекрасная погода и я чувствую себя отлично."); got != "ru" {
		t.Fatalf("expected \"ru\", got %q", got)
	}
}
