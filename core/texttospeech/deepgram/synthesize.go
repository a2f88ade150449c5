package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Dikshant67/voice-scheduling-agent/core/audio"
	"github.com/Dikshant67/voice-scheduling-agent/core/texttospeech"
	"github.com/gorilla/websocket"
)

// Synthesize converts text to speech and blocks until the full audio has
// been generated. Frames are additionally forwarded to the configured
// audio callback as they arrive, so playback can start before the call
// returns.
func (c *TextToSpeechClient) Synthesize(ctx context.Context, text string, opts ...texttospeech.SynthesisOption) ([]byte, error) {
	options := &texttospeech.SynthesisOptions{EncodingInfo: audio.GetDefaultEncodingInfo()}
	for _, opt := range opts {
		opt(options)
	}

	conn, err := c.connectWebsocket(options.EncodingInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to open websocket: %w", err)
	}
	defer conn.Close()

	// Unblock the read loop when the context ends mid-synthesis.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-watchDone:
		}
	}()

	type textMessage struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	}
	if err := conn.WriteJSON(textMessage{Type: "Speak", Text: text}); err != nil {
		return nil, fmt.Errorf("failed to send text to deepgram: %w", err)
	}
	if err := conn.WriteJSON(textMessage{Type: "Flush"}); err != nil {
		return nil, fmt.Errorf("failed to flush deepgram stream: %w", err)
	}

	var assembled []byte
	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			err = fmt.Errorf("failed to read deepgram websocket message: %w", err)
			if options.ErrorCallback != nil {
				options.ErrorCallback(err)
			}
			return nil, err
		}

		switch msgType {
		case websocket.BinaryMessage:
			assembled = append(assembled, msg...)
			if options.SpeechAudioCallback != nil {
				options.SpeechAudioCallback(msg)
			}
		case websocket.TextMessage:
			var parsedMsg struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(msg, &parsedMsg); err != nil {
				log.Println("Failed to unmarshal deepgram message", "error", err)
				continue
			}

			switch parsedMsg.Type {
			case "Flushed":
				_ = conn.WriteJSON(textMessage{Type: "Close"})
				return assembled, nil
			case "Warning", "Error":
				log.Println("Deepgram speak stream reported", "message", string(msg))
			}
		}
	}
}

func (c *TextToSpeechClient) connectWebsocket(encodingInfo audio.EncodingInfo) (*websocket.Conn, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("deepgram api key not found")
	}

	urlValues := url.Values{}
	urlValues.Set("encoding", encodingInfo.Format.Name())
	urlValues.Set("sample_rate", strconv.Itoa(encodingInfo.SampleRate))
	urlValues.Set("model", string(c.voice))
	urlValues.Set("container", "none")

	conn, _, err := websocket.DefaultDialer.Dial(
		(&url.URL{
			Scheme: "wss",
			Host:   "api.deepgram.com", Path: "/v1/speak",
			RawQuery: urlValues.Encode(),
		}).String(),
		http.Header{"Authorization": {"token " + c.apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}
