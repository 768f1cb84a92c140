package domain

// SpeechKind selects the output speech encoding.
type SpeechKind string

const (
	SpeechPlainText SpeechKind = "PlainText"
	SpeechSSML      SpeechKind = "SSML"
)

// Response is the outbound payload returned to the voice platform.
type Response struct {
	Version           string         `json:"version"`
	Body              ResponseBody   `json:"response"`
	SessionAttributes map[string]any `json:"sessionAttributes"`
}

// ResponseBody holds the speech output, the optional card and the session flag.
type ResponseBody struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

// OutputSpeech is either plain text or SSML markup, never both.
type OutputSpeech struct {
	Type SpeechKind `json:"type"`
	Text string     `json:"text,omitempty"`
	SSML string     `json:"ssml,omitempty"`
}

// Card is a Simple visual card shown alongside the spoken output.
type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewSpeechResponse builds a complete response payload. card may be nil.
// keepSessionOpen inverts shouldEndSession so call sites read naturally.
func NewSpeechResponse(content string, kind SpeechKind, card *Card, keepSessionOpen bool) Response {
	speech := &OutputSpeech{Type: kind}
	if kind == SpeechSSML {
		speech.SSML = content
	} else {
		speech.Text = content
	}
	return Response{
		Version: "1.0",
		Body: ResponseBody{
			OutputSpeech:     speech,
			Card:             card,
			ShouldEndSession: !keepSessionOpen,
		},
		SessionAttributes: map[string]any{},
	}
}

// NewEmptyResponse builds a response with no speech output and the session
// ended. Used for stop, cancel and session-end events.
func NewEmptyResponse() Response {
	return Response{
		Version:           "1.0",
		Body:              ResponseBody{ShouldEndSession: true},
		SessionAttributes: map[string]any{},
	}
}

// NewCard builds a Simple card.
func NewCard(title, content string) Card {
	return Card{Type: "Simple", Title: title, Content: content}
}
