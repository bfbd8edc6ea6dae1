package quiz

import (
	"errors"
	"math"

	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
)

type State int

const (
	StateSelecting State = iota
	StateActive
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateActive:
		return "active"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var (
	ErrNoQuestions       = errors.New("Não há questões disponíveis para este tópico.")
	ErrInvalidTransition = errors.New("operação inválida para o estado atual do simulado")
	ErrAlreadyAnswered   = errors.New("esta questão já foi respondida")
	ErrNotAnswered       = errors.New("responda a questão atual antes de avançar")
	ErrInvalidChoice     = errors.New("a resposta não corresponde a nenhuma opção")
)

// Shuffler has the signature of rand.Shuffle.
type Shuffler func(n int, swap func(i, j int))

// Outcome is the final result of a finished session.
type Outcome struct {
	Topic          string
	Score          int
	TotalQuestions int
}

// Percentage is round(score/total*100), or 0 for an empty quiz.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// Session is one user's quiz state machine:
// selecting -> active -> finished -> selecting.
type Session struct {
	state     State
	topic     string
	questions []aigateway.Question
	answers   []string
	current   int
	score     int
}

func NewSession() *Session {
	return &Session{state: StateSelecting}
}

func (s *Session) State() State { return s.state }

// Start shuffles the pool and activates the quiz. An empty pool is rejected
// and the session is left exactly as it was.
func (s *Session) Start(topic string, pool []aigateway.Question, shuffle Shuffler) error {
	if s.state != StateSelecting {
		return ErrInvalidTransition
	}
	if len(pool) == 0 {
		return ErrNoQuestions
	}

	questions := append([]aigateway.Question(nil), pool...)
	shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	s.state = StateActive
	s.topic = topic
	s.questions = questions
	s.answers = make([]string, len(questions))
	s.current = 0
	s.score = 0
	return nil
}

// Answer locks in the choice for the current question.
func (s *Session) Answer(choice string) (bool, error) {
	if s.state != StateActive {
		return false, ErrInvalidTransition
	}
	if s.answers[s.current] != "" {
		return false, ErrAlreadyAnswered
	}

	q := s.questions[s.current]
	valid := false
	for _, opt := range q.Options {
		if opt == choice {
			valid = true
			break
		}
	}
	if !valid || choice == "" {
		return false, ErrInvalidChoice
	}

	s.answers[s.current] = choice
	correct := q.IsCorrect(choice)
	if correct {
		s.score++
	}
	return correct, nil
}

// Finishing reports whether the next Advance ends the quiz, and with what outcome.
func (s *Session) Finishing() (Outcome, bool) {
	if s.state != StateActive || s.answers[s.current] == "" || s.current < len(s.questions)-1 {
		return Outcome{}, false
	}
	return Outcome{Topic: s.topic, Score: s.score, TotalQuestions: len(s.questions)}, true
}

// Advance moves past an answered question. After the last one the session
// is finished and the outcome is returned; it is returned only once.
func (s *Session) Advance() (*Outcome, error) {
	if s.state != StateActive {
		return nil, ErrInvalidTransition
	}
	if s.answers[s.current] == "" {
		return nil, ErrNotAnswered
	}

	if outcome, ok := s.Finishing(); ok {
		s.state = StateFinished
		return &outcome, nil
	}
	s.current++
	return nil, nil
}

// Reset returns to topic selection from any state. A quiz abandoned while
// active records nothing.
func (s *Session) Reset() {
	*s = Session{state: StateSelecting}
}

type QuestionView struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	// Set once the question has been answered.
	Answer        string `json:"answer,omitempty"`
	CorrectAnswer string `json:"correctAnswer,omitempty"`
}

type View struct {
	State          State         `json:"state"`
	Topic          string        `json:"topic,omitempty"`
	Index          int           `json:"index"`
	TotalQuestions int           `json:"totalQuestions"`
	Score          int           `json:"score"`
	Percentage     *int          `json:"percentage,omitempty"`
	Question       *QuestionView `json:"question,omitempty"`
}

// View hides the correct answer of the current question until it is answered.
func (s *Session) View() View {
	v := View{State: s.state, Topic: s.topic, Index: s.current, TotalQuestions: len(s.questions), Score: s.score}

	switch s.state {
	case StateActive:
		q := s.questions[s.current]
		qv := &QuestionView{ID: q.ID, Question: q.Question, Options: append([]string(nil), q.Options...)}
		if a := s.answers[s.current]; a != "" {
			qv.Answer = a
			qv.CorrectAnswer = q.CorrectAnswer
		}
		v.Question = qv
	case StateFinished:
		p := Percentage(s.score, len(s.questions))
		v.Percentage = &p
	}
	return v
}
