// Package orchestration drives voice meeting-scheduling conversations.
//
// A [Controller] owns the conversation logic: each user utterance is
// interpreted by an entity extraction collaborator, checked against the
// calendar for conflicts, and answered with a spoken prompt. Multi-turn
// state lives in a [Session]; a [Registry] tracks the sessions of
// concurrently connected users. The [Agent] wires a controller to live
// audio capture, transcription, and speech synthesis for a full
// microphone-to-speaker loop.
package orchestration
