package websocket

import "github.com/rs/zerolog/log"

// Publication is a message addressed to every client subscribed to Topic.
type Publication struct {
	Topic   string
	Message []byte
}

// Hub maintains the set of active clients and fans messages out to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Messages for the subscribers of a single topic.
	Publish chan Publication

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// A map of topics to the set of clients subscribed to it.
	subscriptions map[string]map[*Client]bool

	done chan struct{}
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Publish:       make(chan Publication, 16),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
		done:          make(chan struct{}),
	}
}

// Run starts the Hub's message processing loop. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for client := range h.clients {
				h.drop(client)
			}
			return
		case client := <-h.Register:
			h.clients[client] = true
			if client.Topic != "" {
				h.addSubscription(client, client.Topic)
			}
			log.Debug().Str("client_id", client.ID).Int("total_clients", len(h.clients)).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				log.Debug().Str("client_id", client.ID).Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case pub := <-h.Publish:
			for client := range h.subscriptions[pub.Topic] {
				h.deliver(client, pub.Message)
			}
		}
	}
}

// Stop ends Run and closes every client's send channel.
func (h *Hub) Stop() {
	close(h.done)
}

// Add registers a client with the running hub. It reports false once the hub has been
// stopped, in which case the client is not registered.
func (h *Hub) Add(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// PublishTo queues a message for the subscribers of topic without blocking the caller. It
// reports whether the message was queued.
func (h *Hub) PublishTo(topic string, message []byte) bool {
	select {
	case h.Publish <- Publication{Topic: topic, Message: message}:
		return true
	default:
		return false
	}
}

// deliver hands the message to a client, dropping clients that cannot keep up.
func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		h.drop(client)
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	h.removeSubscription(client)
	close(client.Send)
}

func (h *Hub) addSubscription(client *Client, topic string) {
	if h.subscriptions[topic] == nil {
		h.subscriptions[topic] = make(map[*Client]bool)
	}
	h.subscriptions[topic][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	for topic, subs := range h.subscriptions {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.subscriptions, topic)
			}
		}
	}
}
