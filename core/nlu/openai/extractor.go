package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Dikshant67/voice-scheduling-agent/core/nlu"
	"github.com/invopop/jsonschema"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultEndpoint = "https://api.openai.com/v1/chat/completions"
	defaultModel    = "gpt-4o"
)

// Extractor resolves utterances to scheduling intents through an
// OpenAI-compatible chat-completions endpoint using a strict JSON schema
// response format. It implements [nlu.Extractor].
type Extractor struct {
	apiKey     string
	model      string
	endpoint   string
	azureStyle bool
	httpClient *http.Client
}

type Option func(*Extractor)

// WithModel overrides the model identifier sent with each request.
func WithModel(model string) Option {
	return func(e *Extractor) {
		if model != "" {
			e.model = model
		}
	}
}

// WithAzure points the extractor at an Azure OpenAI deployment, which uses
// a per-deployment URL and an api-key header instead of a bearer token.
func WithAzure(endpoint, deployment, apiVersion string) Option {
	return func(e *Extractor) {
		e.endpoint = fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
			strings.TrimSuffix(endpoint, "/"), deployment, apiVersion)
		e.azureStyle = true
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(e *Extractor) {
		if client != nil {
			e.httpClient = client
		}
	}
}

func NewExtractor(apiKey string, opts ...Option) *Extractor {
	e := &Extractor{
		apiKey:     apiKey,
		model:      defaultModel,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// extractionPayload is the schema the model is constrained to. Intent and
// entities mirror what the conversation engine consumes; reply lets the
// model hand back a message when the utterance is out of scope.
type extractionPayload struct {
	Intent   string       `json:"intent" jsonschema:"enum=schedule_meeting,enum=cancel_meeting,enum=reschedule_meeting,enum=get_meetings_day,enum=other"`
	Entities nlu.Entities `json:"entities"`
	Reply    string       `json:"reply,omitempty"`
}

type requestBody struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type       string          `json:"type"`
	JSONSchema *responseSchema `json:"json_schema,omitempty"`
}

type responseSchema struct {
	Name   string            `json:"name"`
	Schema jsonschema.Schema `json:"schema"`
	Strict bool              `json:"strict"`
}

type responseBody struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role,omitempty"`
			Content string `json:"content,omitempty"`
		} `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
}

func (e *Extractor) Extract(ctx context.Context, utterance string, conversation nlu.Context) (nlu.Result, error) {
	ctx, span := tracer.Start(ctx, "extract scheduling intent")
	defer span.End()
	span.SetAttributes(
		attribute.String("request.model", e.model),
		attribute.Int("request.history_length", len(conversation.History)),
	)

	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(extractionPayload{})

	body := requestBody{
		Model: e.model,
		Messages: []message{
			{Role: messageRoleSystem, Content: buildSystemPrompt(conversation)},
			{Role: messageRoleUser, Content: utterance},
		},
		ResponseFormat: &responseFormat{
			Type: "json_schema",
			JSONSchema: &responseSchema{
				Name:   "extractionPayload",
				Schema: *schema,
				Strict: true,
			},
		},
	}

	requestBytes, err := json.Marshal(body)
	if err != nil {
		err = fmt.Errorf("error marshalling JSON: %w", err)
		span.RecordError(err)
		return nlu.Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.endpoint, bytes.NewBuffer(requestBytes))
	if err != nil {
		err = fmt.Errorf("error creating HTTP request: %w", err)
		span.RecordError(err)
		return nlu.Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if e.azureStyle {
		req.Header.Set("api-key", e.apiKey)
	} else {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("error sending request: %w", err)
		span.RecordError(err)
		return nlu.Result{}, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		if errorBody, readErr := io.ReadAll(resp.Body); readErr == nil {
			span.SetAttributes(attribute.String("response.error", string(errorBody)))
		}
		err := fmt.Errorf("non-OK HTTP status: %s", resp.Status)
		span.RecordError(err)
		return nlu.Result{}, err
	}

	responseBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("error reading response body: %w", err)
		span.RecordError(err)
		return nlu.Result{}, err
	}
	var parsed responseBody
	if err := json.Unmarshal(responseBytes, &parsed); err != nil {
		err = fmt.Errorf("error unmarshalling response: %w", err)
		span.RecordError(err)
		return nlu.Result{}, err
	}
	if parsed.Usage != nil {
		span.SetAttributes(attribute.Int("response.total_tokens", parsed.Usage.TotalTokens))
	}
	if len(parsed.Choices) == 0 {
		err := fmt.Errorf("response contained no choices")
		span.RecordError(err)
		return nlu.Result{}, err
	}

	content := parsed.Choices[0].Message.Content
	if split := strings.Split(content, "```"); len(split) > 1 {
		content = split[1]
	}
	var payload extractionPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		err = fmt.Errorf("error unmarshalling extraction payload: %w", err)
		span.RecordError(err)
		return nlu.Result{}, err
	}

	intent := nlu.ParseIntent(payload.Intent)
	span.SetAttributes(attribute.String("response.intent", string(intent)))
	logger.DebugContext(ctx, "extracted scheduling intent",
		"intent", intent, "reply", payload.Reply != "")

	return nlu.Result{
		Intent:   intent,
		Entities: payload.Entities,
		Reply:    payload.Reply,
	}, nil
}
