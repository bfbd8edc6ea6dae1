package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/document"
	"github.com/saulo-duarte/odontomind-api/internal/quiz"
)

// Profile is the per-user record kept alongside the auth backend's user.
type Profile struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	Periodo   int       `gorm:"not null;default:0" json:"periodo"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type RecentAttempt struct {
	*quiz.Attempt
	Percentage int `json:"percentage"`
}

type Dashboard struct {
	RecentSummaries []*document.Summary `json:"recentSummaries"`
	RecentAttempts  []RecentAttempt     `json:"recentAttempts"`
}
