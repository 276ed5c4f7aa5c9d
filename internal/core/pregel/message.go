package pregel

import (
	"sync"
)

// Message carries one detached traverser, serialized, to the partition that
// will host it next superstep. Traversers never cross partitions live:
// detach-serialize-attach is the only hand-off.
type Message struct {
	To      string
	Payload []byte
	Step    int
}

// MessageAggregator collects the messages of one superstep keyed by
// destination partition. Bulk merging of equivalent traversers happens at
// delivery, once payloads are deserialized on the receiving side.
type MessageAggregator struct {
	mu       sync.Mutex
	messages map[string][]*Message
}

// NewMessageAggregator returns an empty aggregator.
func NewMessageAggregator() *MessageAggregator {
	return &MessageAggregator{messages: make(map[string][]*Message)}
}

// Add queues a message for its destination.
func (a *MessageAggregator) Add(msg *Message) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages[msg.To] = append(a.messages[msg.To], msg)
}

// Drain removes and returns all queued messages, keyed by destination.
func (a *MessageAggregator) Drain() map[string][]*Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := a.messages
	a.messages = make(map[string][]*Message)
	return out
}

// HasMessages reports whether any message is queued.
func (a *MessageAggregator) HasMessages() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, msgs := range a.messages {
		if len(msgs) > 0 {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the queued messages without draining them.
func (a *MessageAggregator) Snapshot() map[string][]*Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string][]*Message, len(a.messages))
	for to, msgs := range a.messages {
		out[to] = append([]*Message(nil), msgs...)
	}
	return out
}

// Count returns the number of queued messages.
func (a *MessageAggregator) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, msgs := range a.messages {
		n += len(msgs)
	}
	return n
}
