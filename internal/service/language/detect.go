package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Detect returns the ISO 639-1 code of text. Detection never fails the
// caller: empty input or an unrecognizable language defaults to "en".
func Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return "en"
	}

	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" {
		return "en"
	}
	return code
}
