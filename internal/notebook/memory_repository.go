package notebook

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu        sync.RWMutex
	notebooks []*Notebook
}

func NewMemoryRepository() NotebookRepository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, n *Notebook) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if n.DocumentIDs == nil {
		n.DocumentIDs = []uuid.UUID{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.notebooks = append(r.notebooks, n.clone())
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, userID, id uuid.UUID) (*Notebook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, n := range r.notebooks {
		if n.ID == id && n.UserID == userID {
			return n.clone(), nil
		}
	}
	return nil, nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*Notebook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Notebook
	for _, n := range r.notebooks {
		if n.UserID == userID {
			out = append(out, n.clone())
		}
	}
	return out, nil
}

func (r *memoryRepository) AppendDocument(_ context.Context, userID, id, documentID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notebooks {
		if n.ID == id && n.UserID == userID {
			n.DocumentIDs = append(n.DocumentIDs, documentID)
			return nil
		}
	}
	return ErrNotebookNotFound
}
