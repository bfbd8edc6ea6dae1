package quiz

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"github.com/saulo-duarte/odontomind-api/internal/config"
)

// QuestionSource supplies the quiz pool and topics from the document store.
type QuestionSource interface {
	QuestionPool(ctx context.Context, userID uuid.UUID, topic string) ([]aigateway.Question, error)
	Topics(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type QuizService interface {
	Current(ctx context.Context, userID uuid.UUID) View
	Topics(ctx context.Context, userID uuid.UUID) ([]string, error)
	Start(ctx context.Context, userID uuid.UUID, topic string) (View, error)
	Answer(ctx context.Context, userID uuid.UUID, choice string) (bool, View, error)
	Advance(ctx context.Context, userID uuid.UUID) (View, *Attempt, error)
	Reset(ctx context.Context, userID uuid.UUID) View
	Attempts(ctx context.Context, userID uuid.UUID) ([]*Attempt, error)
}

type quizService struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	rng      *rand.Rand
	now      func() time.Time

	questions QuestionSource
	repo      AttemptRepository
}

func NewService(questions QuestionSource, repo AttemptRepository, rng *rand.Rand) QuizService {
	return &quizService{
		sessions:  make(map[uuid.UUID]*Session),
		rng:       rng,
		now:       time.Now,
		questions: questions,
		repo:      repo,
	}
}

// session must be called with s.mu held.
func (s *quizService) session(userID uuid.UUID) *Session {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = NewSession()
		s.sessions[userID] = sess
	}
	return sess
}

func (s *quizService) Current(_ context.Context, userID uuid.UUID) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(userID).View()
}

func (s *quizService) Topics(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.questions.Topics(ctx, userID)
}

func (s *quizService) Start(ctx context.Context, userID uuid.UUID, topic string) (View, error) {
	log := config.WithContext(ctx)

	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = TopicAll
	}

	pool, err := s.questions.QuestionPool(ctx, userID, topic)
	if err != nil {
		log.WithError(err).Error("Erro ao carregar questões do simulado")
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(userID)
	if err := sess.Start(topic, pool, s.rng.Shuffle); err != nil {
		log.WithError(err).WithField("topic", topic).Warn("Simulado não iniciado")
		return sess.View(), err
	}

	log.WithField("topic", topic).Infof("Simulado iniciado com %d questões", len(pool))
	return sess.View(), nil
}

func (s *quizService) Answer(ctx context.Context, userID uuid.UUID, choice string) (bool, View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(userID)
	correct, err := sess.Answer(choice)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Resposta recusada")
	}
	return correct, sess.View(), err
}

// Advance moves to the next question. Finishing the quiz stores its attempt
// before the session leaves the active state, so a failed save can be retried.
func (s *quizService) Advance(ctx context.Context, userID uuid.UUID) (View, *Attempt, error) {
	log := config.WithContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(userID)

	var attempt *Attempt
	if outcome, ok := sess.Finishing(); ok {
		attempt = &Attempt{
			ID:             uuid.New(),
			UserID:         userID,
			Topic:          outcome.Topic,
			Score:          outcome.Score,
			TotalQuestions: outcome.TotalQuestions,
			Date:           s.now(),
		}
		if err := s.repo.Create(ctx, attempt); err != nil {
			log.WithError(err).Error("Erro ao registrar tentativa do simulado")
			return sess.View(), nil, err
		}
	}

	if _, err := sess.Advance(); err != nil {
		return sess.View(), nil, err
	}

	if attempt != nil {
		log.WithField("attempt_id", attempt.ID).Infof("Simulado concluído: %d/%d", attempt.Score, attempt.TotalQuestions)
	}
	return sess.View(), attempt, nil
}

func (s *quizService) Reset(_ context.Context, userID uuid.UUID) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(userID)
	sess.Reset()
	return sess.View()
}

func (s *quizService) Attempts(ctx context.Context, userID uuid.UUID) ([]*Attempt, error) {
	attempts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Erro ao listar tentativas")
		return nil, err
	}
	return attempts, nil
}
