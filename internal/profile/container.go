package profile

import "gorm.io/gorm"

type ProfileContainer struct {
	Handler *Handler
}

func NewProfileContainer(db *gorm.DB, attempts AttemptLister, summaries SummaryLister) *ProfileContainer {
	var repo ProfileRepository
	if db != nil {
		repo = NewRepository(db)
	} else {
		repo = NewMemoryRepository()
	}
	service := NewService(repo, attempts, summaries)
	handler := NewHandler(service)

	return &ProfileContainer{
		Handler: handler,
	}
}
