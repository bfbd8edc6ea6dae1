package recording

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/document"
	util "github.com/saulo-duarte/odontomind-api/internal/utils"
)

type RecordedClass struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"-"`
	Title         string             `gorm:"type:text;not null" json:"title"`
	Date          util.LocalDateTime `gorm:"type:timestamptz;not null" json:"date"`
	Transcription string             `gorm:"type:text;not null" json:"transcription"`
	Summary       *document.Summary  `gorm:"polymorphic:Source;polymorphicValue:recording" json:"summary,omitempty"`
	CreatedAt     time.Time          `gorm:"autoCreateTime" json:"createdAt"`
}

func (RecordedClass) TableName() string {
	return "recorded_classes"
}

func (rc *RecordedClass) clone() *RecordedClass {
	cp := *rc
	if rc.Summary != nil {
		s := *rc.Summary
		cp.Summary = &s
	}
	return &cp
}
