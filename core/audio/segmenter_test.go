package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"
)

// tone builds a linear16 frame whose every sample has the given normalized
// amplitude.
func tone(amplitude float64, samples int) []byte {
	frame := make([]byte, samples*2)
	value := uint16(int16(amplitude * 32767))
	for i := 0; i < len(frame); i += 2 {
		binary.LittleEndian.PutUint16(frame[i:], value)
	}
	return frame
}

type steppedClock struct {
	now time.Time
}

func (c *steppedClock) advance(d time.Duration) { c.now = c.now.Add(d) }
func (c *steppedClock) read() time.Time         { return c.now }

func TestSegmenterCompletesAfterSilence(t *testing.T) {
	clock := &steppedClock{now: time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)}
	segmenter := NewSegmenter(WithSegmenterClock(clock.read))

	speech := tone(0.5, 160)
	silence := tone(0.0, 160)

	// One second of speech in 100ms frames.
	for i := 0; i < 10; i++ {
		if segmenter.Push(speech) {
			t.Fatalf("expected no completion while speech is ongoing")
		}
		clock.advance(100 * time.Millisecond)
	}
	if !segmenter.SpeechDetected() {
		t.Fatalf("expected speech to have been detected")
	}

	// Silence under the minimum duration keeps recording.
	if segmenter.Push(silence) {
		t.Fatalf("expected no completion at the start of silence")
	}
	clock.advance(time.Second)
	if segmenter.Push(silence) {
		t.Fatalf("expected no completion after one second of silence")
	}

	// Crossing the minimum silence completes the utterance.
	clock.advance(600 * time.Millisecond)
	if !segmenter.Push(silence) {
		t.Fatalf("expected completion after 1.6s of silence")
	}

	utterance := segmenter.Take()
	if len(utterance) == 0 {
		t.Fatalf("expected the buffered utterance to be returned")
	}
	if segmenter.SpeechDetected() {
		t.Fatalf("expected Take to reset the segmenter")
	}
}

func TestSegmenterIgnoresPureSilence(t *testing.T) {
	clock := &steppedClock{now: time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)}
	segmenter := NewSegmenter(WithSegmenterClock(clock.read))
	silence := tone(0.0, 160)

	// Silence without any speech never triggers on the silence rule.
	for i := 0; i < 50; i++ {
		if segmenter.Push(silence) {
			t.Fatalf("expected no completion without detected speech")
		}
		clock.advance(100 * time.Millisecond)
	}
}

func TestSegmenterCapsRecordingLength(t *testing.T) {
	clock := &steppedClock{now: time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)}
	segmenter := NewSegmenter(
		WithSegmenterClock(clock.read),
		WithMaxRecording(5*time.Second),
	)
	silence := tone(0.0, 160)

	completed := false
	for i := 0; i < 60; i++ {
		if segmenter.Push(silence) {
			completed = true
			break
		}
		clock.advance(100 * time.Millisecond)
	}
	if !completed {
		t.Fatalf("expected the maximum recording length to force completion")
	}
}

func TestSegmenterEarlyCutoffForShortConfirmations(t *testing.T) {
	clock := &steppedClock{now: time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)}
	segmenter := NewSegmenter(WithSegmenterClock(clock.read))
	speech := tone(0.5, 160)
	silence := tone(0.0, 160)

	// 2.5s of speech, then 1s of silence: under the minimum silence but
	// past the early cutoff once the recording exceeds three seconds.
	for i := 0; i < 25; i++ {
		segmenter.Push(speech)
		clock.advance(100 * time.Millisecond)
	}
	segmenter.Push(silence)
	clock.advance(time.Second)
	if !segmenter.Push(silence) {
		t.Fatalf("expected the early cutoff to complete a long-enough recording")
	}
}

func TestSegmenterTakeJoinsFrames(t *testing.T) {
	segmenter := NewSegmenter()
	first := tone(0.5, 4)
	second := tone(0.2, 4)

	segmenter.Push(first)
	segmenter.Push(second)

	joined := segmenter.Take()
	if !bytes.Equal(joined, append(append([]byte{}, first...), second...)) {
		t.Fatalf("expected frames to be concatenated in arrival order")
	}
}

func TestRMSHandlesEdgeCases(t *testing.T) {
	if got := rms(nil); got != 0 {
		t.Fatalf("expected zero RMS for an empty frame, got %f", got)
	}
	if got := rms([]byte{0x01}); got != 0 {
		t.Fatalf("expected a lone trailing byte to be ignored, got %f", got)
	}
	if got := rms(tone(0.5, 16)); got < 0.49 || got > 0.51 {
		t.Fatalf("expected RMS near 0.5, got %f", got)
	}
}
