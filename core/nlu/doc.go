// Package nlu defines the contract between the conversation engine and the
// language-understanding collaborator that turns raw utterances into a
// scheduling intent and a set of entities.
//
// The engine never calls a model directly; it depends on the [Extractor]
// interface and feeds it the running conversation context so the
// collaborator can resolve answers, corrections, and references against
// what was already gathered. Provider adapters live in subpackages.
package nlu
