package notebook

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// chatLog keeps the volatile chat history of every notebook and tracks which
// notebooks have a turn in flight.
type chatLog struct {
	mu       sync.Mutex
	now      func() time.Time
	messages map[uuid.UUID][]ChatMessage
	busy     map[uuid.UUID]bool
}

func newChatLog(now func() time.Time) *chatLog {
	return &chatLog{
		now:      now,
		messages: make(map[uuid.UUID][]ChatMessage),
		busy:     make(map[uuid.UUID]bool),
	}
}

func (c *chatLog) historyLocked(id uuid.UUID) []ChatMessage {
	msgs, ok := c.messages[id]
	if !ok {
		msgs = []ChatMessage{{Role: RoleModel, Content: Greeting, SentAt: c.now()}}
		c.messages[id] = msgs
	}
	return msgs
}

func (c *chatLog) history(id uuid.UUID) []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ChatMessage(nil), c.historyLocked(id)...)
}

// begin marks a turn in flight and appends the user message. It returns false
// if another turn on the same notebook has not finished.
func (c *chatLog) begin(id uuid.UUID, question string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy[id] {
		return false
	}
	c.busy[id] = true
	c.messages[id] = append(c.historyLocked(id), ChatMessage{Role: RoleUser, Content: question, SentAt: c.now()})
	return true
}

func (c *chatLog) finish(id uuid.UUID, reply ChatMessage) ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	reply.SentAt = c.now()
	c.messages[id] = append(c.historyLocked(id), reply)
	delete(c.busy, id)
	return reply
}
