package notebook

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"github.com/saulo-duarte/odontomind-api/internal/document"
	"gorm.io/datatypes"
)

const Greeting = "Olá! Faça uma pergunta sobre os documentos neste notebook."

type Notebook struct {
	ID          uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                      `gorm:"type:uuid;not null;index" json:"-"`
	Name        string                         `gorm:"type:text;not null" json:"name"`
	DocumentIDs datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb;not null" json:"documentIds"`
	CreatedAt   time.Time                      `gorm:"autoCreateTime" json:"createdAt"`
}

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type ChatMessage struct {
	Role     Role               `json:"role"`
	Content  string             `json:"content"`
	Sources  []aigateway.Source `json:"sources,omitempty"`
	Segments []Segment          `json:"segments,omitempty"`
	Failed   bool               `json:"failed,omitempty"`
	SentAt   time.Time          `json:"sentAt"`
}

// Segment is a piece of an answer: plain text or a clickable citation.
type Segment struct {
	Text     string            `json:"text,omitempty"`
	Citation *aigateway.Source `json:"citation,omitempty"`
}

type NotebookView struct {
	*Notebook
	Documents []*document.Document `json:"documents"`
}

func (n *Notebook) clone() *Notebook {
	cp := *n
	cp.DocumentIDs = append(datatypes.JSONSlice[uuid.UUID](nil), n.DocumentIDs...)
	return &cp
}
