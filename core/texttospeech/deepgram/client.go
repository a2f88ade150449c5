package deepgram

import (
	"fmt"
	"os"
	"slices"
)

type deepgramVoice string

const (
	VoiceAuraAsteria deepgramVoice = "aura-asteria-en"
	VoiceAuraLuna    deepgramVoice = "aura-luna-en"
	VoiceAuraStella  deepgramVoice = "aura-stella-en"
	VoiceAuraAthena  deepgramVoice = "aura-athena-en"
	VoiceAuraOrion   deepgramVoice = "aura-orion-en"
)

const defaultVoice = VoiceAuraAsteria

func GetAvailableVoices() []deepgramVoice {
	return []deepgramVoice{
		VoiceAuraAsteria,
		VoiceAuraLuna,
		VoiceAuraStella,
		VoiceAuraAthena,
		VoiceAuraOrion,
	}
}

// TextToSpeechClient synthesizes replies through Deepgram's streaming
// speak API, one websocket per synthesis call.
type TextToSpeechClient struct {
	apiKey string
	voice  deepgramVoice
}

type Option func(*TextToSpeechClient)

// WithAPIKey overrides the key read from the DEEPGRAM_API_KEY environment
// variable.
func WithAPIKey(apiKey string) Option {
	return func(c *TextToSpeechClient) {
		if apiKey != "" {
			c.apiKey = apiKey
		}
	}
}

func WithVoice(voice deepgramVoice) Option {
	return func(c *TextToSpeechClient) {
		c.voice = voice
	}
}

func NewTextToSpeechClient(opts ...Option) (*TextToSpeechClient, error) {
	client := &TextToSpeechClient{
		apiKey: os.Getenv("DEEPGRAM_API_KEY"),
		voice:  defaultVoice,
	}
	for _, opt := range opts {
		opt(client)
	}

	if !slices.Contains(GetAvailableVoices(), client.voice) {
		return nil, fmt.Errorf("invalid voice")
	}

	return client, nil
}

func (c *TextToSpeechClient) SetVoice(voice deepgramVoice) error {
	if !slices.Contains(GetAvailableVoices(), voice) {
		return fmt.Errorf("invalid voice")
	}
	c.voice = voice
	return nil
}
