package document

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const DraftTTL = 30 * time.Minute

type draftEntry struct {
	userID uuid.UUID
	draft  Draft
}

// draftCache holds analyzed uploads until they are saved or expire.
type draftCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[uuid.UUID]draftEntry
}

func newDraftCache(ttl time.Duration, now func() time.Time) *draftCache {
	return &draftCache{ttl: ttl, now: now, entries: make(map[uuid.UUID]draftEntry)}
}

func (c *draftCache) put(userID uuid.UUID, doc Document) Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked()

	d := Draft{ID: uuid.New(), Document: *doc.clone(), ExpiresAt: c.now().Add(c.ttl)}
	c.entries[d.ID] = draftEntry{userID: userID, draft: d}
	return d.copy()
}

func (c *draftCache) update(userID, id uuid.UUID, fn func(*Document)) (Draft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked()

	e, ok := c.entries[id]
	if !ok || e.userID != userID {
		return Draft{}, false
	}
	fn(&e.draft.Document)
	e.draft.ExpiresAt = c.now().Add(c.ttl)
	c.entries[id] = e
	return e.draft.copy(), true
}

// take removes and returns the draft, so two saves of one draft cannot both succeed.
func (c *draftCache) take(userID, id uuid.UUID) (Draft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked()

	e, ok := c.entries[id]
	if !ok || e.userID != userID {
		return Draft{}, false
	}
	delete(c.entries, id)
	return e.draft, true
}

func (c *draftCache) restore(userID uuid.UUID, d Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[d.ID] = draftEntry{userID: userID, draft: d}
}

func (c *draftCache) sweepLocked() {
	now := c.now()
	for id, e := range c.entries {
		if now.After(e.draft.ExpiresAt) {
			delete(c.entries, id)
		}
	}
}

func (d Draft) copy() Draft {
	d.Document = *d.Document.clone()
	return d
}
