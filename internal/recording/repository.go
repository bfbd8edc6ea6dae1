package recording

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecordingRepository interface {
	Create(ctx context.Context, rc *RecordedClass) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*RecordedClass, error)
}

type recordingRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) RecordingRepository {
	return &recordingRepository{db: db}
}

func (r *recordingRepository) Create(ctx context.Context, rc *RecordedClass) error {
	return r.db.WithContext(ctx).Create(rc).Error
}

func (r *recordingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*RecordedClass, error) {
	var recs []*RecordedClass
	err := r.db.WithContext(ctx).
		Preload("Summary").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&recs).Error
	return recs, err
}
