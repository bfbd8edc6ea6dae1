package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"gorm.io/datatypes"
)

const (
	FolderAll        = "all"
	FolderRecordings = "Aulas Gravadas"
	DefaultFolder    = "Endodontia"

	SourceTypePDF       = "pdf"
	SourceTypeRecording = "recording"
)

// PdfFolders are the folders offered on the PDF upload screen.
var PdfFolders = []string{"Endodontia", "Periodontia", "Cirurgia", "Farmacologia"}

type Summary struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Title      string    `gorm:"type:text;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	SourceID   uuid.UUID `gorm:"type:uuid;not null;index" json:"sourceId"`
	SourceType string    `gorm:"type:text;not null" json:"sourceType"`
	Folder     string    `gorm:"type:text;not null;index" json:"folder"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type Document struct {
	ID        uuid.UUID                               `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID                               `gorm:"type:uuid;not null;index" json:"-"`
	Name      string                                  `gorm:"type:text;not null" json:"name"`
	Content   string                                  `gorm:"type:text;not null" json:"content"`
	Folder    string                                  `gorm:"type:text;not null;index" json:"folder"`
	Summary   *Summary                                `gorm:"polymorphic:Source;polymorphicValue:pdf" json:"summary,omitempty"`
	Questions datatypes.JSONSlice[aigateway.Question] `gorm:"type:jsonb" json:"questions"`
	CreatedAt time.Time                               `gorm:"autoCreateTime" json:"createdAt"`
}

// Draft is an analyzed upload waiting for the user to confirm it.
type Draft struct {
	ID        uuid.UUID `json:"id"`
	Document  Document  `json:"document"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Upload is one PDF received at the file-input boundary.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

func (d *Document) clone() *Document {
	cp := *d
	if d.Summary != nil {
		s := *d.Summary
		cp.Summary = &s
	}
	if d.Questions != nil {
		cp.Questions = make(datatypes.JSONSlice[aigateway.Question], len(d.Questions))
		for i, q := range d.Questions {
			q.Options = append([]string(nil), q.Options...)
			cp.Questions[i] = q
		}
	}
	return &cp
}
