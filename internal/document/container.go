package document

import (
	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"github.com/saulo-duarte/odontomind-api/internal/pdftext"
	"gorm.io/gorm"
)

type DocumentContainer struct {
	Repo    DocumentRepository
	Service Service
	Handler *Handler
}

// NewDocumentContainer uses the database when db is set and memory otherwise.
func NewDocumentContainer(db *gorm.DB, gateway aigateway.Service, maxUploadBytes int64) *DocumentContainer {
	var repo DocumentRepository
	if db != nil {
		repo = NewRepository(db)
	} else {
		repo = NewMemoryRepository()
	}
	service := NewService(repo, gateway, pdftext.Extract)
	handler := NewHandler(service, maxUploadBytes)

	return &DocumentContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
