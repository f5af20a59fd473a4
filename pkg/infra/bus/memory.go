package bus

import (
	"sync"

	"github.com/stigbase/saver/pkg/domain/types"
)

// Event is a recorded (subject, payload) pair.
type Event struct {
	Subject types.Subject
	Data    []byte
}

// Memory records published events in process. Used by tests and as the
// fallback publisher when no bus is configured.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

func NewMemory() *Memory {
	return &Memory{}
}

func (x *Memory) Publish(subject types.Subject, data []byte) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	dup := make([]byte, len(data))
	copy(dup, data)
	x.events = append(x.events, Event{Subject: subject, Data: dup})

	return nil
}

// Events returns a snapshot of everything published so far.
func (x *Memory) Events() []Event {
	x.mu.Lock()
	defer x.mu.Unlock()

	out := make([]Event, len(x.events))
	copy(out, x.events)
	return out
}

// EventsBySubject returns the snapshot filtered to one subject.
func (x *Memory) EventsBySubject(subject types.Subject) []Event {
	var out []Event
	for _, ev := range x.Events() {
		if ev.Subject == subject {
			out = append(out, ev)
		}
	}
	return out
}
