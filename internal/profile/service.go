package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/config"
	"github.com/saulo-duarte/odontomind-api/internal/document"
	"github.com/saulo-duarte/odontomind-api/internal/quiz"
)

const recentLimit = 3

type AttemptLister interface {
	Attempts(ctx context.Context, userID uuid.UUID) ([]*quiz.Attempt, error)
}

// SummaryLister returns summaries oldest first.
type SummaryLister interface {
	List(ctx context.Context, userID uuid.UUID, folder string) ([]*document.Summary, error)
}

type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*Profile, error)
	UpdatePeriodo(ctx context.Context, userID uuid.UUID, periodo int) (*Profile, error)
	Stats(ctx context.Context, userID uuid.UUID) (Stats, error)
	Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
}

type profileService struct {
	repo      ProfileRepository
	attempts  AttemptLister
	summaries SummaryLister
}

func NewService(repo ProfileRepository, attempts AttemptLister, summaries SummaryLister) Service {
	return &profileService{repo: repo, attempts: attempts, summaries: summaries}
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Error fetching profile")
		return nil, err
	}
	if p == nil {
		return &Profile{UserID: userID}, nil
	}
	return p, nil
}

func (s *profileService) UpdatePeriodo(ctx context.Context, userID uuid.UUID, periodo int) (*Profile, error) {
	log := config.WithContext(ctx)

	p := &Profile{UserID: userID, Periodo: periodo, UpdatedAt: time.Now()}
	if err := s.repo.Upsert(ctx, p); err != nil {
		log.WithError(err).Error("Error updating periodo")
		return nil, err
	}

	log.WithField("periodo", periodo).Info("Período atualizado")
	return p, nil
}

func (s *profileService) Stats(ctx context.Context, userID uuid.UUID) (Stats, error) {
	attempts, err := s.attempts.Attempts(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	return Aggregate(attempts), nil
}

func (s *profileService) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	summaries, err := s.summaries.List(ctx, userID, document.FolderAll)
	if err != nil {
		return nil, err
	}
	attempts, err := s.attempts.Attempts(ctx, userID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		RecentSummaries: []*document.Summary{},
		RecentAttempts:  []RecentAttempt{},
	}
	for i := len(summaries) - 1; i >= 0 && len(d.RecentSummaries) < recentLimit; i-- {
		d.RecentSummaries = append(d.RecentSummaries, summaries[i])
	}
	for i := len(attempts) - 1; i >= 0 && len(d.RecentAttempts) < recentLimit; i-- {
		d.RecentAttempts = append(d.RecentAttempts, RecentAttempt{Attempt: attempts[i], Percentage: attempts[i].Percentage()})
	}
	return d, nil
}
