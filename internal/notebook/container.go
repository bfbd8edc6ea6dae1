package notebook

import (
	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"gorm.io/gorm"
)

type NotebookContainer struct {
	Service Service
	Handler *Handler
}

func NewNotebookContainer(db *gorm.DB, documents DocumentStore, gateway aigateway.Service, maxUploadBytes int64) *NotebookContainer {
	var repo NotebookRepository
	if db != nil {
		repo = NewRepository(db)
	} else {
		repo = NewMemoryRepository()
	}
	service := NewService(repo, documents, gateway)
	handler := NewHandler(service, maxUploadBytes)

	return &NotebookContainer{
		Service: service,
		Handler: handler,
	}
}
