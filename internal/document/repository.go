package document

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *Document) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Document, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Document, error)
	ListByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*Document, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*Document, error) {
	var doc Document
	if err := r.db.WithContext(ctx).
		Preload("Summary").
		First(&doc, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Document, error) {
	var docs []*Document
	if err := r.db.WithContext(ctx).
		Preload("Summary").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) ListByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []*Document
	if err := r.db.WithContext(ctx).
		Preload("Summary").
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&found).Error; err != nil {
		return nil, err
	}
	return orderByIDs(found, ids), nil
}

func orderByIDs(docs []*Document, ids []uuid.UUID) []*Document {
	byID := make(map[uuid.UUID]*Document, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}
	ordered := make([]*Document, 0, len(ids))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			ordered = append(ordered, d)
		}
	}
	return ordered
}
