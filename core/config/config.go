// Package config loads provider credentials and engine tunables from the
// environment, with an optional .env file picked up from the working
// directory.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything needed to assemble a scheduling agent.
type Config struct {
	// DeepgramAPIKey authenticates both transcription and speech synthesis.
	DeepgramAPIKey string

	// OpenAIAPIKey authenticates the entity extraction collaborator. When
	// AzureOpenAIEndpoint is set, the Azure request shape is used instead
	// of the plain OpenAI one.
	OpenAIAPIKey          string
	OpenAIModel           string
	AzureOpenAIEndpoint   string
	AzureOpenAIDeployment string
	AzureOpenAIAPIVersion string

	// DefaultTimezone is assumed for users that never state one.
	DefaultTimezone string

	// ConflictBuffer pads both sides of every event during conflict
	// detection.
	ConflictBuffer time.Duration
	// DefaultMeetingDuration applies when the user gives only a start time.
	DefaultMeetingDuration time.Duration
	// MaxSuggestions caps how many alternative slots are spoken per
	// conflict.
	MaxSuggestions int
	// SelectionRetryLimit caps re-prompts within one conflict dialog
	// before the engine gives up and returns to collecting details.
	SelectionRetryLimit int
}

const (
	defaultConflictBuffer   = 15 * time.Minute
	defaultMeetingDuration  = 60 * time.Minute
	defaultMaxSuggestions   = 3
	defaultSelectionRetries = 5
	defaultTimezone         = "UTC"
	defaultOpenAIModel      = "gpt-4o"
)

// Load reads the environment, after loading a .env file if one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DeepgramAPIKey:        os.Getenv("DEEPGRAM_API_KEY"),
		OpenAIAPIKey:          os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:           envOr("OPENAI_MODEL", defaultOpenAIModel),
		AzureOpenAIEndpoint:   os.Getenv("AZURE_OPENAI_ENDPOINT"),
		AzureOpenAIDeployment: os.Getenv("AZURE_OPENAI_DEPLOYMENT"),
		AzureOpenAIAPIVersion: os.Getenv("AZURE_OPENAI_API_VERSION"),

		DefaultTimezone: envOr("DEFAULT_TIMEZONE", defaultTimezone),

		ConflictBuffer:         defaultConflictBuffer,
		DefaultMeetingDuration: defaultMeetingDuration,
		MaxSuggestions:         defaultMaxSuggestions,
		SelectionRetryLimit:    defaultSelectionRetries,
	}

	if cfg.OpenAIAPIKey == "" {
		// Azure deployments historically used a differently named variable.
		cfg.OpenAIAPIKey = os.Getenv("AZURE_OPENAI_API_KEY")
	}

	var err error
	if cfg.ConflictBuffer, err = envMinutes("CONFLICT_BUFFER_MINUTES", cfg.ConflictBuffer); err != nil {
		return Config{}, err
	}
	if cfg.DefaultMeetingDuration, err = envMinutes("DEFAULT_MEETING_DURATION_MINUTES", cfg.DefaultMeetingDuration); err != nil {
		return Config{}, err
	}
	if cfg.MaxSuggestions, err = envInt("MAX_SUGGESTIONS", cfg.MaxSuggestions); err != nil {
		return Config{}, err
	}
	if cfg.SelectionRetryLimit, err = envInt("SELECTION_RETRY_LIMIT", cfg.SelectionRetryLimit); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, value)
	}
	return parsed, nil
}

func envMinutes(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, value)
	}
	return time.Duration(parsed) * time.Minute, nil
}
