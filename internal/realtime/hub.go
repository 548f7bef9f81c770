package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dangerclosesec/crmboard/internal/metrics"
	"github.com/google/uuid"
)

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 16

var ErrHubClosed = errors.New("realtime hub closed")

// Hub routes events to the messenger of their organization.
type Hub struct {
	mutex      sync.Mutex
	messengers map[uuid.UUID]*Messenger
	buffer     int
	closed     bool
	metrics    *metrics.Metrics
}

func NewHub(buffer int, m *metrics.Metrics) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		messengers: make(map[uuid.UUID]*Messenger),
		buffer:     buffer,
		metrics:    m,
	}
}

// Register subscribes to an organization's events. The channel is closed by
// Unregister or Close.
func (h *Hub) Register(orgID uuid.UUID) (<-chan *Event, error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.closed {
		return nil, ErrHubClosed
	}
	messenger, ok := h.messengers[orgID]
	if !ok {
		messenger = NewMessenger(orgID, h.buffer)
		h.messengers[orgID] = messenger
	}
	return messenger.Register(), nil
}

func (h *Hub) Unregister(orgID uuid.UUID, channel <-chan *Event) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	messenger, ok := h.messengers[orgID]
	if !ok {
		return
	}
	if messenger.Unregister(channel) {
		delete(h.messengers, orgID)
	}
}

// Publish delivers the event to the local subscribers of its organization.
// Subscribers whose buffer is full miss the event.
func (h *Hub) Publish(ctx context.Context, event *Event) error {
	h.mutex.Lock()
	if h.closed {
		h.mutex.Unlock()
		return ErrHubClosed
	}
	messenger, ok := h.messengers[event.OrganizationID]
	h.mutex.Unlock()

	h.metrics.EventPublished(event.Type)
	if !ok {
		return nil
	}

	if dropped := messenger.Send(event); dropped > 0 {
		slog.DebugContext(ctx, "realtime subscribers lagging",
			"type", event.Type,
			"organizationID", event.OrganizationID,
			"dropped", dropped,
		)
		for range dropped {
			h.metrics.EventDropped()
		}
	}
	return nil
}

// Subscribers returns the number of open subscriptions of an organization.
func (h *Hub) Subscribers(orgID uuid.UUID) int {
	h.mutex.Lock()
	messenger, ok := h.messengers[orgID]
	h.mutex.Unlock()
	if !ok {
		return 0
	}
	return messenger.Len()
}

// Close unregisters every subscriber. Later publishes fail with ErrHubClosed.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, messenger := range h.messengers {
		messenger.UnregisterAll()
	}
	h.messengers = map[uuid.UUID]*Messenger{}
}
