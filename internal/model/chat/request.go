package chat

// Attachment carries one uploaded file from the multipart form.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Output kinds accepted by the chat endpoint.
const (
	OutputText   = "text"
	OutputSpeech = "speech"
	OutputImage  = "image"
)

// Request is one inbound chat call. The attachment fields are mutually
// exclusive; when several are supplied the dispatcher resolves exactly one.
type Request struct {
	UserID             string
	Text               string
	Image              *Attachment
	Video              *Attachment
	Audio              *Attachment
	Document           *Attachment
	OutputKind         string
	RestrictToDocument bool
	MentalHealthMode   bool
	MoodTrend          bool
	Reminder           bool
}
