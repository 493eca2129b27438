package mood

// Entry is one logged mood record. The timestamp is an RFC 3339 string
// assigned by the store at write time, never by the caller.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Mood      string `json:"mood"`
}
