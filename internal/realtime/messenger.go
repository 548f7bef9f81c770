package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Messenger holds the subscriber channels of one organization.
type Messenger struct {
	mutex    sync.Mutex
	orgID    uuid.UUID
	buffer   int
	channels []chan *Event
}

func NewMessenger(orgID uuid.UUID, buffer int) *Messenger {
	return &Messenger{
		orgID:    orgID,
		buffer:   buffer,
		channels: []chan *Event{},
	}
}

// Register returns a new buffered subscriber channel.
func (m *Messenger) Register() <-chan *Event {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	channel := make(chan *Event, m.buffer)
	m.channels = append(m.channels, channel)
	return channel
}

// Unregister closes and removes channel. It reports whether the messenger
// has no subscribers left.
func (m *Messenger) Unregister(channel <-chan *Event) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for i, toRemove := range m.channels {
		if channel == toRemove {
			m.channels = append(m.channels[:i], m.channels[i+1:]...)
			close(toRemove)
			break
		}
	}
	return len(m.channels) == 0
}

// UnregisterAll closes every subscriber channel.
func (m *Messenger) UnregisterAll() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, channel := range m.channels {
		close(channel)
	}
	m.channels = nil
}

// Send offers the event to every subscriber without blocking and returns how
// many subscribers had a full buffer.
func (m *Messenger) Send(event *Event) (dropped int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, channel := range m.channels {
		select {
		case channel <- event:
		default:
			dropped++
		}
	}
	return dropped
}

func (m *Messenger) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.channels)
}
