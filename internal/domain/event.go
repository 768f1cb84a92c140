package domain

// Envelope is the inbound skill event as delivered by the voice platform.
type Envelope struct {
	Session Session `json:"session"`
	Request Request `json:"request"`
}

// Session carries the platform session metadata relevant to the skill.
type Session struct {
	Application Application `json:"application"`
}

// Application identifies the skill the platform believes it is invoking.
type Application struct {
	ApplicationID string `json:"applicationId"`
}

// Request is the typed portion of an inbound event. Intent is only present
// for intent-style requests; launch and session-end events carry a type alone.
type Request struct {
	Type   string  `json:"type"`
	Intent *Intent `json:"intent,omitempty"`
}

// Intent names the recognized intent and its slot values.
type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots"`
}

// Slot is one recognized piece of the user utterance. Value is nil when the
// slot was declared in the interaction model but nothing was captured for it.
type Slot struct {
	Name  string  `json:"name"`
	Value *string `json:"value,omitempty"`
}
