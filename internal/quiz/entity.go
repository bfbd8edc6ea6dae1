package quiz

import (
	"time"

	"github.com/google/uuid"
)

const TopicAll = "all"

// Attempt is one completed quiz. Attempts are append-only.
type Attempt struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Topic          string    `gorm:"type:text;not null" json:"topic"`
	Score          int       `gorm:"not null;default:0" json:"score"`
	TotalQuestions int       `gorm:"not null;default:0" json:"totalQuestions"`
	Date           time.Time `gorm:"not null;index" json:"date"`
}

func (Attempt) TableName() string {
	return "quiz_attempts"
}

// Percentage of correct answers, rounded.
func (a Attempt) Percentage() int {
	return Percentage(a.Score, a.TotalQuestions)
}
