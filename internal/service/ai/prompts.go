package ai

// System prompts used by the dispatcher. The coach and companion prompts
// drive the two auxiliary completions of mental-health mode.
const (
	MultilingualSystemPrompt = "You are a helpful assistant fluent in many languages. Detect and reply in the user's language."

	CoachSystemPrompt = "You are a wellness coach. Suggest supportive activities based on the user's current mood."

	CompanionSystemPrompt = "You are a caring and empathetic friend. Engage warmly and respond like a supportive companion."

	// DefaultVisionPrompt is paired with an uploaded image when the user
	// supplied no text of their own.
	DefaultVisionPrompt = "What's in this image?"
)

// DocumentSystemPrompt embeds the extracted document text verbatim and
// restricts the model to it.
func DocumentSystemPrompt(documentText string) string {
	return "You must answer using only the following document. " +
		"If the answer is not in the document, say that the document does not contain it.\n\n" +
		"Document:\n" + documentText
}
