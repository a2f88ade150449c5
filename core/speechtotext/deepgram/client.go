package deepgram

import (
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// TranscriptionClient streams captured audio to Deepgram's live listening
// API over a websocket and reports transcripts through callbacks supplied
// at Transcribe time.
type TranscriptionClient struct {
	apiKey string

	conn   *websocket.Conn
	connMu sync.Mutex

	lastMsgTs             time.Time
	accumulatedTranscript string
	unendedSegment        bool
}

type Option func(*TranscriptionClient)

// WithAPIKey overrides the key read from the DEEPGRAM_API_KEY environment
// variable.
func WithAPIKey(apiKey string) Option {
	return func(c *TranscriptionClient) {
		if apiKey != "" {
			c.apiKey = apiKey
		}
	}
}

func NewTranscriptionClient(opts ...Option) *TranscriptionClient {
	client := &TranscriptionClient{
		apiKey: os.Getenv("DEEPGRAM_API_KEY"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}
