package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dikshant67/voice-scheduling-agent/core/nlu"
)

func TestExtractParsesStructuredResponse(t *testing.T) {
	var captured requestBody
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("expected a decodable request body, got %v", err)
		}
		payload := `{"intent":"schedule_meeting","entities":{"title":"Team Sync","date":"2025-09-02","time":"14:00"}}`
		response := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": payload}},
			},
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	extractor := NewExtractor("test-key")
	extractor.endpoint = server.URL

	conversation := nlu.Context{
		Timezone: "Asia/Kolkata",
		Now:      time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC),
		Partial:  nlu.Entities{Title: "Team Sync"},
	}
	result, err := extractor.Extract(context.Background(), "tomorrow at 2 PM", conversation)
	if err != nil {
		t.Fatalf("expected extraction to succeed, got %v", err)
	}
	if result.Intent != nlu.IntentScheduleMeeting {
		t.Fatalf("expected schedule_meeting, got %s", result.Intent)
	}
	if result.Entities.Date != "2025-09-02" || result.Entities.Time != "14:00" {
		t.Fatalf("expected extracted date and time, got %+v", result.Entities)
	}

	if captured.ResponseFormat == nil || captured.ResponseFormat.Type != "json_schema" {
		t.Fatalf("expected a json_schema response format, got %+v", captured.ResponseFormat)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != messageRoleSystem {
		t.Fatalf("expected a system prompt followed by the utterance, got %+v", captured.Messages)
	}
	prompt := captured.Messages[0].Content
	for _, fragment := range []string{"Asia/Kolkata", "2025-09-01", "Team Sync"} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("expected the system prompt to carry %q", fragment)
		}
	}
}

func TestExtractStripsCodeFences(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		content := "```\n{\"intent\":\"cancel_meeting\",\"entities\":{\"title\":\"Standup\"}}\n```"
		response := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	extractor := NewExtractor("test-key")
	extractor.endpoint = server.URL

	result, err := extractor.Extract(context.Background(), "cancel the standup", nlu.Context{Now: time.Now()})
	if err != nil {
		t.Fatalf("expected extraction to succeed, got %v", err)
	}
	if result.Intent != nlu.IntentCancelMeeting || result.Entities.Title != "Standup" {
		t.Fatalf("expected cancel_meeting for Standup, got %+v", result)
	}
}

func TestExtractSurfacesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	extractor := NewExtractor("test-key")
	extractor.endpoint = server.URL

	if _, err := extractor.Extract(context.Background(), "schedule a sync", nlu.Context{Now: time.Now()}); err == nil {
		t.Fatalf("expected a non-OK status to surface as an error")
	}
}

func TestWithAzureShapesEndpointAndAuth(t *testing.T) {
	var gotPath, gotKey, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		gotKey = r.Header.Get("api-key")
		gotAuth = r.Header.Get("Authorization")
		response := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": `{"intent":"other","entities":{}}`}},
			},
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	extractor := NewExtractor("azure-key", WithAzure(server.URL, "gpt-4o", "2024-06-01"))
	if _, err := extractor.Extract(context.Background(), "hello", nlu.Context{Now: time.Now()}); err != nil {
		t.Fatalf("expected extraction to succeed, got %v", err)
	}

	if want := "/openai/deployments/gpt-4o/chat/completions?api-version=2024-06-01"; gotPath != want {
		t.Fatalf("expected deployment path %q, got %q", want, gotPath)
	}
	if gotKey != "azure-key" || gotAuth != "" {
		t.Fatalf("expected api-key auth without a bearer token, got key=%q auth=%q", gotKey, gotAuth)
	}
}
