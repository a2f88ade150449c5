package deepgram

import (
	"fmt"

	"github.com/Dikshant67/voice-scheduling-agent/core/audio"
)

// listenSampleRates are the rates the live listening endpoint accepts for
// linear16 input.
var listenSampleRates = map[int]struct{}{
	8000: {}, 16000: {}, 24000: {}, 32000: {}, 48000: {},
}

// convertEncoding validates that the requested encoding is one the live
// transcription endpoint supports and returns it unchanged. The companded
// formats are only defined at telephony rate.
func convertEncoding(encoding audio.EncodingInfo) (audio.EncodingInfo, error) {
	if _, ok := listenSampleRates[encoding.SampleRate]; !ok {
		return audio.EncodingInfo{}, fmt.Errorf("unsupported sample rate %d", encoding.SampleRate)
	}

	switch encoding.Format {
	case audio.EncodingLinear16:
	case audio.EncodingALaw, audio.EncodingMulaw:
		if encoding.SampleRate != 8000 {
			return audio.EncodingInfo{}, fmt.Errorf("unsupported sample rate %d for %s encoding",
				encoding.SampleRate, encoding.Format.Name())
		}
	default:
		return audio.EncodingInfo{}, fmt.Errorf("unsupported encoding %q", encoding.Format.Name())
	}

	return encoding, nil
}
