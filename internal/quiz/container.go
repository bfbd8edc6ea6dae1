package quiz

import (
	"math/rand"
	"time"

	"gorm.io/gorm"
)

type QuizContainer struct {
	Repo    AttemptRepository
	Service QuizService
	Handler *Handler
}

func NewQuizContainer(db *gorm.DB, questions QuestionSource) *QuizContainer {
	var repo AttemptRepository
	if db != nil {
		repo = NewRepository(db)
	} else {
		repo = NewMemoryRepository()
	}
	service := NewService(questions, repo, rand.New(rand.NewSource(time.Now().UnixNano())))
	handler := NewHandler(service)

	return &QuizContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
