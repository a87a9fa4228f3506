package monitoring

import (
	"time"

	"github.com/isdelr/staff-portal/internal/services"
	"github.com/isdelr/staff-portal/internal/websocket"
	"github.com/rs/zerolog/log"
)

// Publisher delivers messages to the subscribers of a topic.
type Publisher interface {
	PublishTo(topic string, message []byte) bool
}

// CountdownTicker pushes the news page countdown to websocket subscribers.
type CountdownTicker struct {
	countdownSvc services.CountdownServiceProvider
	publisher    Publisher
	interval     time.Duration
	now          func() time.Time
	done         chan struct{}
}

// NewCountdownTicker creates a new ticker that publishes every interval.
func NewCountdownTicker(countdownSvc services.CountdownServiceProvider, publisher Publisher, interval time.Duration) *CountdownTicker {
	if interval <= 0 {
		interval = time.Second
	}
	return &CountdownTicker{
		countdownSvc: countdownSvc,
		publisher:    publisher,
		interval:     interval,
		now:          time.Now,
		done:         make(chan struct{}),
	}
}

// Run starts the ticking loop.
func (t *CountdownTicker) Run() {
	log.Info().Dur("interval", t.interval).Msg("Starting countdown ticker")
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	// Run once immediately on start
	t.publish()

	for {
		select {
		case <-t.done:
			log.Info().Msg("Stopping countdown ticker")
			return
		case <-ticker.C:
			t.publish()
		}
	}
}

// Stop halts the ticker.
func (t *CountdownTicker) Stop() {
	close(t.done)
}

func (t *CountdownTicker) publish() {
	msg := websocket.NewMessage("countdown", t.countdownSvc.Current(t.now()))
	if msg == nil {
		return
	}
	if !t.publisher.PublishTo(websocket.TopicCountdown, msg) {
		log.Debug().Msg("Countdown update dropped, hub is busy")
	}
}
