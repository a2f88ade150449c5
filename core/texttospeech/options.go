// Package texttospeech defines the speech synthesis contract consumed by
// the conversation engine. Provider adapters live in subpackages.
package texttospeech

import "github.com/Dikshant67/voice-scheduling-agent/core/audio"

type SynthesisOptions struct {
	// SpeechAudioCallback receives audio frames as they are generated, in
	// order, before the blocking call returns the assembled audio.
	SpeechAudioCallback func(audio []byte)
	// ErrorCallback is called when synthesis fails mid-stream.
	ErrorCallback func(error)

	EncodingInfo audio.EncodingInfo
}

type SynthesisOption func(*SynthesisOptions)

func WithSpeechAudioCallback(callback func([]byte)) SynthesisOption {
	return func(o *SynthesisOptions) {
		o.SpeechAudioCallback = callback
	}
}

func WithErrorCallback(callback func(error)) SynthesisOption {
	return func(o *SynthesisOptions) {
		o.ErrorCallback = callback
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) SynthesisOption {
	return func(o *SynthesisOptions) {
		if encodingInfo.IsZero() {
			return
		}
		o.EncodingInfo = encodingInfo
	}
}
