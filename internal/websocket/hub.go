// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package websocket

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/travelmap/internal/logging"
	"github.com/tomtom215/travelmap/internal/metrics"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown path.
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline indicates the context deadline was exceeded.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

func hubLog() *zerolog.Logger { return logging.Component("websocket-hub") }

// Message types for WebSocket communication
const (
	MessageTypeState = "state"
	MessageTypePing  = "ping"
	MessageTypePong  = "pong"
)

const broadcastBuffer = 64

// Message represents a WebSocket message
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex

	snapshot func() interface{}

	doneMu sync.Mutex
	done   chan struct{}
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithSnapshot makes the hub send fn's result as a state message to every
// client as it registers. The snapshot is taken on the hub goroutine, so
// broadcasts handled earlier are never newer than it.
func WithSnapshot(fn func() interface{}) HubOption {
	return func(h *Hub) { h.snapshot = fn }
}

// NewHub creates a new Hub
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		broadcast:  make(chan Message, broadcastBuffer),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Done is closed when RunWithContext returns. A restarted hub hands out a
// fresh channel.
func (h *Hub) Done() <-chan struct{} {
	h.doneMu.Lock()
	defer h.doneMu.Unlock()
	return h.done
}

func (h *Hub) markRunning() {
	h.doneMu.Lock()
	defer h.doneMu.Unlock()
	select {
	case <-h.done:
		h.done = make(chan struct{})
	default:
	}
}

func (h *Hub) markStopped() {
	h.doneMu.Lock()
	defer h.doneMu.Unlock()
	select {
	case <-h.done:
	default:
		close(h.done)
	}
}

// RunWithContext runs the hub until ctx is done, then closes every client
// and returns ctx.Err(). Lifecycle events are handled before broadcasts so a
// newly registered client never misses the message queued right after it.
func (h *Hub) RunWithContext(ctx context.Context) error {
	h.markRunning()
	defer h.markStopped()

	for {
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.addClient(client)
			continue
		case client := <-h.Unregister:
			h.removeClient(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.addClient(client)
		case client := <-h.Unregister:
			h.removeClient(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	if h.snapshot != nil {
		client.Send(Message{Type: MessageTypeState, Data: h.snapshot()})
	}

	metrics.WSConnections.Set(float64(total))
	hubLog().Info().Int("total_clients", total).Msg("websocket client connected")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(total))
	hubLog().Info().Int("total_clients", total).Msg("websocket client disconnected")
}

func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.GetClientCount()
	h.closeAllClients()

	hubLog().Info().
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// sortedClients must be called with h.mu held.
func (h *Hub) sortedClients() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// broadcastToClients sends message to every client in id order. A client
// whose queue is full is dropped.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var toRemove []*Client
	for _, client := range h.sortedClients() {
		select {
		case client.send <- message:
		default:
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
		hubLog().Warn().Uint64("client_id", client.id).Msg("websocket client too slow, disconnecting")
	}
	if len(toRemove) > 0 {
		metrics.WSConnections.Set(float64(len(h.clients)))
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.sortedClients() {
		close(client.send)
		delete(h.clients, client)
	}
	metrics.WSConnections.Set(0)
}

// BroadcastState queues a view snapshot for every client.
func (h *Hub) BroadcastState(view interface{}) {
	h.BroadcastJSON(MessageTypeState, view)
}

// BroadcastJSON queues a typed message for every client. It never blocks;
// when the queue is full the message is dropped.
func (h *Hub) BroadcastJSON(messageType string, data interface{}) {
	select {
	case h.broadcast <- Message{Type: messageType, Data: data}:
	default:
		metrics.WSBroadcastsDropped.Inc()
		hubLog().Warn().Str("message_type", messageType).Msg("broadcast channel full, dropping message")
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
