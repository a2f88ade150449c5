package deepgram

import "testing"

func TestNewTextToSpeechClientValidatesVoice(t *testing.T) {
	if _, err := NewTextToSpeechClient(WithAPIKey("test"), WithVoice("not-a-voice")); err == nil {
		t.Fatalf("expected an unknown voice to be rejected")
	}

	client, err := NewTextToSpeechClient(WithAPIKey("test"), WithVoice(VoiceAuraLuna))
	if err != nil {
		t.Fatalf("expected a known voice to be accepted, got %v", err)
	}
	if client.voice != VoiceAuraLuna {
		t.Fatalf("expected the configured voice to stick, got %s", client.voice)
	}
}

func TestSetVoice(t *testing.T) {
	client, err := NewTextToSpeechClient(WithAPIKey("test"))
	if err != nil {
		t.Fatalf("expected default construction to succeed, got %v", err)
	}

	if err := client.SetVoice("nope"); err == nil {
		t.Fatalf("expected an unknown voice to be rejected")
	}
	if err := client.SetVoice(VoiceAuraOrion); err != nil {
		t.Fatalf("expected a known voice to be accepted, got %v", err)
	}
}
