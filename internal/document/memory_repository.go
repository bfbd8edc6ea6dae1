package document

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu     sync.RWMutex
	byUser map[uuid.UUID][]*Document
}

// NewMemoryRepository keeps documents in process memory, in insertion order.
func NewMemoryRepository() DocumentRepository {
	return &memoryRepository{byUser: make(map[uuid.UUID][]*Document)}
}

func (r *memoryRepository) Create(_ context.Context, doc *Document) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	if doc.Summary != nil && doc.Summary.CreatedAt.IsZero() {
		doc.Summary.CreatedAt = doc.CreatedAt
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[doc.UserID] = append(r.byUser[doc.UserID], doc.clone())
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, userID, id uuid.UUID) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.byUser[userID] {
		if d.ID == id {
			return d.clone(), nil
		}
	}
	return nil, nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := make([]*Document, 0, len(r.byUser[userID]))
	for _, d := range r.byUser[userID] {
		docs = append(docs, d.clone())
	}
	return docs, nil
}

func (r *memoryRepository) ListByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*Document, error) {
	docs, _ := r.ListByUser(ctx, userID)
	return orderByIDs(docs, ids), nil
}
