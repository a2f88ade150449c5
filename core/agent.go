package orchestration

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Dikshant67/voice-scheduling-agent/core/events"
	"github.com/Dikshant67/voice-scheduling-agent/core/speechtotext"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Transcriber streams microphone audio to a speech-to-text service and
// reports transcripts through callbacks.
type Transcriber interface {
	Transcribe(ctx context.Context, opts ...speechtotext.TranscriptionOption) error
	SendAudio(audio []byte) error
	StopStream() error
}

// AudioIO captures microphone audio and plays synthesized speech.
type AudioIO interface {
	StartCapture(ctx context.Context, onAudio func(audio []byte)) error
	StopCapture() error
	StartPlayback(ctx context.Context) error
	SendAudio(audio []byte) error
	AwaitPlayed() error
	ClearBuffer()
	Close()
}

// Agent runs a full voice conversation: it captures microphone audio,
// transcribes it, feeds final transcripts through the controller one
// turn at a time, and plays the spoken replies back.
type Agent struct {
	IsListening bool
	IsSpeaking  bool

	controller  *Controller
	transcriber Transcriber
	audio       AudioIO
	session     *Session

	onTranscript func(transcript string)
	onInterim    func(transcript string)
	onOutput     func(output TurnOutput)

	turns       sync.WaitGroup
	closeOnce   sync.Once
	baseContext context.Context
}

type AgentOption func(*Agent)

// WithTranscriptHandler registers a callback for each finalized user
// transcript, before the turn is processed.
func WithTranscriptHandler(handler func(transcript string)) AgentOption {
	return func(a *Agent) {
		a.onTranscript = handler
	}
}

// WithInterimTranscriptHandler registers a callback for partial
// transcripts while the user is still speaking.
func WithInterimTranscriptHandler(handler func(transcript string)) AgentOption {
	return func(a *Agent) {
		a.onInterim = handler
	}
}

// WithOutputHandler registers a callback invoked with each turn's output
// after playback has been queued.
func WithOutputHandler(handler func(output TurnOutput)) AgentOption {
	return func(a *Agent) {
		a.onOutput = handler
	}
}

func NewAgent(controller *Controller, transcriber Transcriber, audioIO AudioIO, opts ...AgentOption) *Agent {
	a := &Agent{
		controller:  controller,
		transcriber: transcriber,
		audio:       audioIO,
		baseContext: context.Background(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Session exposes the conversation session backing the running agent.
// It is nil until Run is called.
func (a *Agent) Session() *Session {
	return a.session
}

// Run opens a session, greets the user, and relays audio between the
// microphone, the transcription stream, and the speakers until ctx is
// cancelled.
//
// Contract: call Run at most once per agent instance.
func (a *Agent) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "agent run")
	defer span.End()
	a.baseContext = ctx

	a.session = a.controller.Sessions().Open(ctx)

	if err := a.audio.StartPlayback(ctx); err != nil {
		err = fmt.Errorf("failed to start audio playback: %w", err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	greeting, err := a.controller.Greet(ctx, a.session)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	a.play(greeting)

	if err := a.transcriber.Transcribe(ctx,
		speechtotext.WithSpeechStartedCallback(func() {
			a.IsListening = true
			a.controller.emit(events.NewUserSpeechStarted())
			// Barge-in: the user talking over the assistant cancels
			// whatever is still queued for playback.
			if a.IsSpeaking {
				a.audio.ClearBuffer()
				a.IsSpeaking = false
			}
		}),
		speechtotext.WithSpeechEndedCallback(func() {
			a.IsListening = false
			a.controller.emit(events.NewUserSpeechEnded())
		}),
		speechtotext.WithInterimTranscriptionCallback(func(transcript string) {
			a.controller.emit(events.NewUserTranscriptInterim(transcript))
			if a.onInterim != nil {
				a.onInterim(transcript)
			}
		}),
		speechtotext.WithTranscriptionCallback(func(transcript string) {
			a.handleTranscript(transcript)
		}),
	); err != nil {
		err = fmt.Errorf("failed to start transcription stream: %w", err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := a.audio.StartCapture(ctx, func(audio []byte) {
		a.controller.emit(events.NewUserAudioFrame(audio))
		if err := a.transcriber.SendAudio(audio); err != nil {
			logger.WarnContext(a.baseContext, "failed to forward audio to transcriber", "error", err)
		}
	}); err != nil {
		err = fmt.Errorf("failed to start audio capture: %w", err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	<-ctx.Done()
	a.Close()
	return ctx.Err()
}

func (a *Agent) handleTranscript(transcript string) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return
	}

	a.controller.emit(events.NewUserTranscriptFinal(transcript))
	if a.onTranscript != nil {
		a.onTranscript(transcript)
	}

	a.turns.Add(1)
	go func() {
		defer a.turns.Done()

		output, err := a.controller.ProcessTurn(a.baseContext, a.session, transcript)
		if err != nil {
			span := trace.SpanFromContext(a.baseContext)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return
		}

		a.play(output)
		if a.onOutput != nil {
			a.onOutput(output)
		}
	}()
}

func (a *Agent) play(output TurnOutput) {
	if len(output.Audio) == 0 {
		return
	}
	a.IsSpeaking = true
	if err := a.audio.SendAudio(output.Audio); err != nil {
		logger.WarnContext(a.baseContext, "failed to queue reply audio", "error", err)
		a.IsSpeaking = false
		return
	}
	go func() {
		if err := a.audio.AwaitPlayed(); err == nil {
			a.IsSpeaking = false
		}
	}()
}

// Close stops capture and transcription, waits for in-flight turns, and
// closes the session.
func (a *Agent) Close() {
	a.closeOnce.Do(func() {
		if err := a.audio.StopCapture(); err != nil {
			logger.WarnContext(a.baseContext, "failed to stop audio capture", "error", err)
		}
		if err := a.transcriber.StopStream(); err != nil {
			logger.WarnContext(a.baseContext, "failed to stop transcription stream", "error", err)
		}

		a.turns.Wait()

		if a.session != nil {
			a.controller.Sessions().Close(a.baseContext, a.session.ID())
		}
		a.audio.Close()
	})
}
