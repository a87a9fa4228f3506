package monitoring

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/isdelr/staff-portal/internal/models"
	"github.com/isdelr/staff-portal/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCountdown struct{ c models.Countdown }

func (f fixedCountdown) Current(time.Time) models.Countdown { return f.c }

type recordingPublisher struct {
	mu       sync.Mutex
	topics   []string
	messages [][]byte
}

func (p *recordingPublisher) PublishTo(topic string, message []byte) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.messages = append(p.messages, message)
	return true
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

func TestCountdownTicker_PublishesImmediatelyAndOnTick(t *testing.T) {
	pub := &recordingPublisher{}
	ticker := NewCountdownTicker(fixedCountdown{models.Countdown{Title: "Launch", Days: 3}}, pub, 10*time.Millisecond)

	go ticker.Run()
	require.Eventually(t, func() bool { return pub.count() >= 2 }, time.Second, 5*time.Millisecond)
	ticker.Stop()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	assert.Equal(t, websocket.TopicCountdown, pub.topics[0])

	var msg struct {
		Action  string           `json:"action"`
		Payload models.Countdown `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(pub.messages[0], &msg))
	assert.Equal(t, "countdown", msg.Action)
	assert.Equal(t, "Launch", msg.Payload.Title)
	assert.Equal(t, 3, msg.Payload.Days)
}
