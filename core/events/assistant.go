package events

const (
	// KindAssistantPrompt identifies the engine's textual reply for a turn.
	KindAssistantPrompt Kind = "assistant.prompt"
	// KindAssistantSpeechFrame identifies synthesized speech audio frames.
	KindAssistantSpeechFrame Kind = "assistant.speech_frame"
	// KindAssistantSpeechFinal identifies the end of speech synthesis for a reply.
	KindAssistantSpeechFinal Kind = "assistant.speech_final"
)

// AssistantPrompt carries the engine's reply text for the current turn.
type AssistantPrompt struct {
	Base
	Text string
}

// NewAssistantPrompt creates an assistant prompt event.
func NewAssistantPrompt(text string) AssistantPrompt {
	return AssistantPrompt{Base: NewBase(KindAssistantPrompt), Text: text}
}

// AssistantSpeechFrame carries a synthesized speech audio frame.
type AssistantSpeechFrame struct {
	Base
	Audio []byte
}

// NewAssistantSpeechFrame creates a synthesized speech frame event.
func NewAssistantSpeechFrame(audio []byte) AssistantSpeechFrame {
	return AssistantSpeechFrame{Base: NewBase(KindAssistantSpeechFrame), Audio: audio}
}

// AssistantSpeechFinal marks the end of speech synthesis for the reply.
type AssistantSpeechFinal struct{ Base }

// NewAssistantSpeechFinal creates a speech synthesis ended event.
func NewAssistantSpeechFinal() AssistantSpeechFinal {
	return AssistantSpeechFinal{Base: NewBase(KindAssistantSpeechFinal)}
}
