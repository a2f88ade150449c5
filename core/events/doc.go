// Package events defines the typed event contract emitted by the
// conversation engine and its audio pipeline.
//
// Event kinds are grouped by namespace:
//
//   - user_input.*
//   - assistant.*
//   - scheduling.*
//   - session.*
//
// user_input events
//
//   - UserAudioFrame (user_input.audio_frame): raw captured audio frame.
//   - UserSpeechStarted (user_input.speech_started): speech activity began.
//   - UserSpeechEnded (user_input.speech_ended): speech activity ended.
//   - UserTranscriptInterim (user_input.transcript_interim): mutable interim
//     transcript snapshot.
//   - UserTranscriptFinal (user_input.transcript_final): terminal transcript
//     for the utterance.
//
// assistant events
//
//   - AssistantPrompt (assistant.prompt): the engine's textual reply for the
//     current turn.
//   - AssistantSpeechFrame (assistant.speech_frame): synthesized speech audio
//     frame.
//   - AssistantSpeechFinal (assistant.speech_final): speech synthesis ended
//     for the current reply.
//
// scheduling events
//
//   - ConflictDetected (scheduling.conflict_detected): a requested slot
//     collided with existing events.
//   - SuggestionsOffered (scheduling.suggestions_offered): alternative slots
//     were presented to the user.
//   - SelectionAccepted (scheduling.selection_accepted): the user picked one
//     of the offered slots.
//   - SelectionRejected (scheduling.selection_rejected): the user declined
//     all offered slots.
//   - SelectionRetry (scheduling.selection_retry): the selection utterance
//     could not be interpreted and the options were repeated.
//   - ClarificationRequested (scheduling.clarification_requested): the engine
//     asked for missing meeting details.
//   - MeetingScheduled (scheduling.meeting_scheduled): a meeting was booked.
//   - MeetingCancelled (scheduling.meeting_cancelled): a meeting was removed.
//   - MeetingRescheduled (scheduling.meeting_rescheduled): a meeting was
//     moved to a new slot.
//
// session events
//
//   - SessionStarted (session.started): a conversation session was opened.
//   - SessionStateChanged (session.state_changed): the session moved between
//     conversation states.
//   - SessionClosed (session.closed): the session ended and its transient
//     state was discarded.
package events
