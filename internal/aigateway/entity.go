package aigateway

import "github.com/google/uuid"

const (
	QuestionTypeMultipleChoice = "multiple-choice"
	QuestionTypeOpenEnded      = "open-ended"

	QuestionsPerBatch  = 5
	OptionsPerQuestion = 4
)

type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Type          string   `json:"type"`
}

// IsCorrect reports whether choice is exactly the correct answer.
func (q Question) IsCorrect(choice string) bool {
	return choice == q.CorrectAnswer
}

// ContextDocument is a document handed to Chat as grounding context.
type ContextDocument struct {
	ID      uuid.UUID
	Name    string
	Content string
}

// Source is a citation resolved back to the document it quotes.
type Source struct {
	ID           int       `json:"id"`
	Quote        string    `json:"quote"`
	DocumentID   uuid.UUID `json:"documentId"`
	DocumentName string    `json:"documentName"`
}

type ChatReply struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// Analysis is the summary and question batch produced for one document.
type Analysis struct {
	Summary   string     `json:"summary"`
	Questions []Question `json:"questions"`
}
