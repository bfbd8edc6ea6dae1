package quiz

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(ctx context.Context, a *Attempt) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(ctx context.Context, a *Attempt) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// ListByUser returns attempts oldest first.
func (r *attemptRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Attempt, error) {
	var attempts []*Attempt
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

type memoryRepository struct {
	mu       sync.RWMutex
	attempts []Attempt
}

func NewMemoryRepository() AttemptRepository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, a *Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, *a)
	return nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*Attempt{}
	for i := range r.attempts {
		if r.attempts[i].UserID == userID {
			a := r.attempts[i]
			out = append(out, &a)
		}
	}
	return out, nil
}
