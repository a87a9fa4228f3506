package websocket

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// TopicCountdown carries the news page countdown.
const TopicCountdown = "countdown"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewMessage encodes a message. Encoding failures are logged and yield nil.
func NewMessage(action string, payload interface{}) []byte {
	b, err := json.Marshal(Message{Action: action, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("Failed to encode websocket message")
		return nil
	}
	return b
}
