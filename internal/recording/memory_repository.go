package recording

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu     sync.RWMutex
	byUser map[uuid.UUID][]*RecordedClass
}

func NewMemoryRepository() RecordingRepository {
	return &memoryRepository{byUser: make(map[uuid.UUID][]*RecordedClass)}
}

func (r *memoryRepository) Create(_ context.Context, rc *RecordedClass) error {
	if rc.CreatedAt.IsZero() {
		rc.CreatedAt = time.Now()
	}
	if rc.Summary != nil && rc.Summary.CreatedAt.IsZero() {
		rc.Summary.CreatedAt = rc.CreatedAt
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[rc.UserID] = append(r.byUser[rc.UserID], rc.clone())
	return nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*RecordedClass, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recs := make([]*RecordedClass, 0, len(r.byUser[userID]))
	for _, rc := range r.byUser[userID] {
		recs = append(recs, rc.clone())
	}
	return recs, nil
}
