package recording

import (
	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"gorm.io/gorm"
)

type RecordingContainer struct {
	Service Service
	Handler *Handler
}

func NewRecordingContainer(db *gorm.DB, gateway *aigateway.AIGatewayContainer, allowedOrigins []string) *RecordingContainer {
	var repo RecordingRepository
	if db != nil {
		repo = NewRepository(db)
	} else {
		repo = NewMemoryRepository()
	}
	service := NewService(repo, gateway.Service)
	handler := NewHandler(service, gateway.Live, allowedOrigins)

	return &RecordingContainer{
		Service: service,
		Handler: handler,
	}
}
