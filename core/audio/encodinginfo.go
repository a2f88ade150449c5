package audio

// DefaultSampleRate is the rate both the microphone pipeline and the
// synthesized replies run at.
const DefaultSampleRate = 16000

// Supported wire encodings for captured and synthesized audio.
const (
	EncodingLinear16 encodingFormat = "linear16"
	EncodingALaw     encodingFormat = "alaw"
	EncodingMulaw    encodingFormat = "mulaw"
)

const DefaultFormat = string(EncodingLinear16)

// EncodingInfo describes how raw audio bytes are to be interpreted.
type EncodingInfo struct {
	SampleRate int
	Format     encodingFormat
}

// GetDefaultEncodingInfo returns the encoding the engine assumes when a
// caller does not specify one: mono linear16 at 16 kHz.
func GetDefaultEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: DefaultSampleRate, Format: EncodingLinear16}
}

func (e EncodingInfo) IsZero() bool {
	return e.SampleRate == 0 || e.Format.Name() == ""
}

// SilenceValue is the byte that represents silence in this encoding, used
// to keep streaming transcription connections alive between utterances.
func (e EncodingInfo) SilenceValue() byte {
	switch e.Format {
	case EncodingALaw:
		return 0x55
	case EncodingMulaw:
		return 0xFF
	default:
		return 0
	}
}

type encodingFormat string

func (e encodingFormat) Name() string {
	return string(e)
}

// ByteSize is the width of one sample, or -1 for unknown formats.
func (e encodingFormat) ByteSize() int {
	switch e {
	case EncodingMulaw, EncodingALaw:
		return 1
	case EncodingLinear16:
		return 2
	}
	return -1
}
