package chat

// Reply is the JSON body returned by the chat endpoint. AudioURL and
// ImageURL are set only when the requested output kind produced them.
type Reply struct {
	Text     string `json:"response"`
	Language string `json:"language,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}
