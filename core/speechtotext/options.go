// Package speechtotext defines the transcription contract consumed by the
// conversation engine. Provider adapters live in subpackages and report
// results through the callbacks configured here.
package speechtotext

import "github.com/Dikshant67/voice-scheduling-agent/core/audio"

type TranscriptionOptions struct {
	// InterimTranscriptionCallback receives mutable snapshots of the
	// utterance while the user is still speaking.
	InterimTranscriptionCallback func(transcript string)
	// TranscriptionCallback receives the final transcript once the
	// provider decides the utterance ended.
	TranscriptionCallback func(transcript string)

	SpeechStartedCallback func()
	SpeechEndedCallback   func()

	EncodingInfo audio.EncodingInfo
}

type TranscriptionOption func(*TranscriptionOptions)

func WithInterimTranscriptionCallback(callback func(transcript string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.InterimTranscriptionCallback = callback
	}
}

func WithTranscriptionCallback(callback func(transcript string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.TranscriptionCallback = callback
	}
}

func WithSpeechStartedCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.SpeechStartedCallback = callback
	}
}

func WithSpeechEndedCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.SpeechEndedCallback = callback
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.EncodingInfo = encodingInfo
	}
}
