package notebook

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotebookRepository interface {
	Create(ctx context.Context, n *Notebook) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Notebook, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Notebook, error)
	AppendDocument(ctx context.Context, userID, id, documentID uuid.UUID) error
}

type notebookRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) NotebookRepository {
	return &notebookRepository{db: db}
}

func (r *notebookRepository) Create(ctx context.Context, n *Notebook) error {
	if n.DocumentIDs == nil {
		n.DocumentIDs = []uuid.UUID{}
	}
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notebookRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*Notebook, error) {
	var n Notebook
	if err := r.db.WithContext(ctx).First(&n, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (r *notebookRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Notebook, error) {
	var notebooks []*Notebook
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&notebooks).Error; err != nil {
		return nil, err
	}
	return notebooks, nil
}

func (r *notebookRepository) AppendDocument(ctx context.Context, userID, id, documentID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n Notebook
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&n, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotebookNotFound
			}
			return err
		}

		n.DocumentIDs = append(n.DocumentIDs, documentID)
		return tx.Model(&n).Update("document_ids", n.DocumentIDs).Error
	})
}
