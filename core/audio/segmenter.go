package audio

import (
	"encoding/binary"
	"math"
	"time"
)

const (
	defaultSilenceThreshold = 0.1
	defaultMinSilence       = 1500 * time.Millisecond
	defaultMaxRecording     = 30 * time.Second
	defaultMinSpeech        = 800 * time.Millisecond

	// A shorter silence already ends the utterance once the recording has
	// been running for a while; keeps short confirmations snappy.
	earlyCutoffSilence = 800 * time.Millisecond
	earlyCutoffTotal   = 3 * time.Second
)

// Segmenter accumulates linear16 audio frames and decides when a complete
// utterance is ready for transcription, based on RMS energy and silence
// tracking. It is not safe for concurrent use; each session owns one.
type Segmenter struct {
	threshold    float64
	minSilence   time.Duration
	maxRecording time.Duration
	minSpeech    time.Duration
	now          func() time.Time

	buffer         []byte
	recordingStart time.Time
	silenceStart   time.Time
	speechDetected bool
}

type SegmenterOption func(*Segmenter)

// WithSilenceThreshold sets the normalized RMS level (0..1) below which a
// frame counts as silence.
func WithSilenceThreshold(threshold float64) SegmenterOption {
	return func(s *Segmenter) {
		if threshold > 0 {
			s.threshold = threshold
		}
	}
}

func WithMinSilence(d time.Duration) SegmenterOption {
	return func(s *Segmenter) {
		if d > 0 {
			s.minSilence = d
		}
	}
}

func WithMaxRecording(d time.Duration) SegmenterOption {
	return func(s *Segmenter) {
		if d > 0 {
			s.maxRecording = d
		}
	}
}

func WithMinSpeech(d time.Duration) SegmenterOption {
	return func(s *Segmenter) {
		if d > 0 {
			s.minSpeech = d
		}
	}
}

func WithSegmenterClock(now func() time.Time) SegmenterOption {
	return func(s *Segmenter) {
		if now != nil {
			s.now = now
		}
	}
}

func NewSegmenter(opts ...SegmenterOption) *Segmenter {
	s := &Segmenter{
		threshold:    defaultSilenceThreshold,
		minSilence:   defaultMinSilence,
		maxRecording: defaultMaxRecording,
		minSpeech:    defaultMinSpeech,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push appends a frame and reports whether the buffered utterance is ready
// to be taken. An utterance completes when speech was heard and enough
// silence followed, or when the recording hits its maximum length.
func (s *Segmenter) Push(frame []byte) bool {
	now := s.now()
	if s.recordingStart.IsZero() {
		s.recordingStart = now
	}
	s.buffer = append(s.buffer, frame...)

	if rms(frame) > s.threshold {
		s.speechDetected = true
		s.silenceStart = time.Time{}
		return false
	}

	if s.silenceStart.IsZero() {
		s.silenceStart = now
	}
	silence := now.Sub(s.silenceStart)
	total := now.Sub(s.recordingStart)

	ready := (s.speechDetected && silence >= s.minSilence) ||
		total >= s.maxRecording ||
		(s.speechDetected && silence >= earlyCutoffSilence && total >= earlyCutoffTotal)

	return ready && total >= s.minSpeech
}

// Take returns the buffered utterance and resets the segmenter for the
// next one.
func (s *Segmenter) Take() []byte {
	complete := s.buffer
	s.Reset()
	return complete
}

// SpeechDetected reports whether any frame so far crossed the threshold.
func (s *Segmenter) SpeechDetected() bool {
	return s.speechDetected
}

func (s *Segmenter) Reset() {
	s.buffer = nil
	s.recordingStart = time.Time{}
	s.silenceStart = time.Time{}
	s.speechDetected = false
}

// rms computes the normalized root mean square of little-endian 16-bit
// samples; a trailing odd byte is ignored.
func rms(frame []byte) float64 {
	sampleCount := len(frame) / 2
	if sampleCount == 0 {
		return 0
	}

	var sum float64
	for i := 0; i < sampleCount*2; i += 2 {
		sample := float64(int16(binary.LittleEndian.Uint16(frame[i:]))) / 32768.0
		sum += sample * sample
	}
	return math.Sqrt(sum / float64(sampleCount))
}
