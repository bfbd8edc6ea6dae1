package recording

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"github.com/saulo-duarte/odontomind-api/internal/config"
	"github.com/saulo-duarte/odontomind-api/internal/document"
	util "github.com/saulo-duarte/odontomind-api/internal/utils"
)

var ErrNoSpeech = errors.New("Nenhuma fala foi detectada para resumir.")

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, transcription string) (*RecordedClass, error)
	List(ctx context.Context, userID uuid.UUID) ([]*RecordedClass, error)
	Live(ctx context.Context, userID uuid.UUID, stream aigateway.LiveStream, sock Socket) (*RecordedClass, error)
}

type recordingService struct {
	repo    RecordingRepository
	gateway aigateway.Service
	now     func() time.Time
}

func NewService(repo RecordingRepository, gateway aigateway.Service) Service {
	return &recordingService{repo: repo, gateway: gateway, now: time.Now}
}

func (s *recordingService) Create(ctx context.Context, userID uuid.UUID, transcription string) (*RecordedClass, error) {
	log := config.WithContext(ctx)

	transcription = strings.TrimSpace(transcription)
	if transcription == "" {
		return nil, ErrNoSpeech
	}

	content, err := s.gateway.Summarize(ctx, transcription)
	if err != nil {
		log.WithError(err).Error("Erro ao resumir a gravação")
		return nil, err
	}

	now := s.now()
	label := util.FormatBR(now)
	rc := &RecordedClass{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         "Gravação de " + label,
		Date:          util.NewLocalDateTime(now),
		Transcription: transcription,
	}
	rc.Summary = &document.Summary{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      "Resumo da Gravação de " + label,
		Content:    content,
		SourceID:   rc.ID,
		SourceType: document.SourceTypeRecording,
		Folder:     document.FolderRecordings,
	}

	if err := s.repo.Create(ctx, rc); err != nil {
		log.WithError(err).Error("Erro ao salvar gravação")
		return nil, err
	}

	log.WithField("recording_id", rc.ID).Info("Gravação salva")
	return rc, nil
}

func (s *recordingService) List(ctx context.Context, userID uuid.UUID) ([]*RecordedClass, error) {
	recs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Erro ao listar gravações")
		return nil, err
	}
	return recs, nil
}
