package profile

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var p Profile
	if err := r.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Upsert(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"periodo", "updated_at"}),
	}).Create(p).Error
}

type memoryRepository struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]Profile
}

func NewMemoryRepository() ProfileRepository {
	return &memoryRepository{profiles: make(map[uuid.UUID]Profile)}
}

func (r *memoryRepository) Get(_ context.Context, userID uuid.UUID) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memoryRepository) Upsert(_ context.Context, p *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.UserID] = *p
	return nil
}
