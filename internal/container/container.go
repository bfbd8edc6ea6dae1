package container

import (
	"context"

	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"github.com/saulo-duarte/odontomind-api/internal/auth"
	"github.com/saulo-duarte/odontomind-api/internal/config"
	"github.com/saulo-duarte/odontomind-api/internal/document"
	"github.com/saulo-duarte/odontomind-api/internal/notebook"
	"github.com/saulo-duarte/odontomind-api/internal/profile"
	"github.com/saulo-duarte/odontomind-api/internal/quiz"
	"github.com/saulo-duarte/odontomind-api/internal/recording"
	"github.com/saulo-duarte/odontomind-api/internal/router"
	"github.com/saulo-duarte/odontomind-api/internal/summary"
	"gorm.io/gorm"
)

type Container struct {
	Settings           config.Settings
	AIGatewayContainer *aigateway.AIGatewayContainer
	DocumentContainer  *document.DocumentContainer
	NotebookContainer  *notebook.NotebookContainer
	QuizContainer      *quiz.QuizContainer
	ProfileContainer   *profile.ProfileContainer
	SummaryContainer   *summary.SummaryContainer
	RecordingContainer *recording.RecordingContainer
}

// Models are the tables migrated on startup when a database is configured.
var Models = []any{
	&document.Document{},
	&document.Summary{},
	&notebook.Notebook{},
	&quiz.Attempt{},
	&profile.Profile{},
	&recording.RecordedClass{},
}

func New() *Container {
	ctx := context.Background()

	settings, err := config.Load()
	if err != nil {
		config.Logger.WithError(err).Fatal("failed to load settings")
	}
	config.Init(settings.LogLevel)
	auth.Init(settings.JWTSecret)

	var db *gorm.DB
	if settings.DatabaseDSN != "" {
		if err := config.Connect(ctx, settings.DatabaseDSN, Models...); err != nil {
			config.Logger.WithError(err).Fatal("failed to connect to DB")
		}
		db = config.DB
	} else {
		config.Logger.Warn("DATABASE_DSN ausente, usando armazenamento em memória")
	}

	return build(ctx, settings, db)
}

func build(ctx context.Context, settings config.Settings, db *gorm.DB) *Container {
	gatewayContainer := aigateway.NewAIGatewayContainer(ctx, settings)
	documentContainer := document.NewDocumentContainer(db, gatewayContainer.Service, settings.MaxUploadBytes)
	notebookContainer := notebook.NewNotebookContainer(db, documentContainer.Service, gatewayContainer.Service, settings.MaxUploadBytes)
	recordingContainer := recording.NewRecordingContainer(db, gatewayContainer, settings.AllowedOrigins)
	quizContainer := quiz.NewQuizContainer(db, documentContainer.Service)

	summaryContainer := summary.NewSummaryContainer(
		documentContainer.Service,
		recordingContainer.Service,
		notebookContainer.Service,
	)
	profileContainer := profile.NewProfileContainer(db, quizContainer.Service, summaryContainer.Service)

	return &Container{
		Settings:           settings,
		AIGatewayContainer: gatewayContainer,
		DocumentContainer:  documentContainer,
		NotebookContainer:  notebookContainer,
		QuizContainer:      quizContainer,
		ProfileContainer:   profileContainer,
		SummaryContainer:   summaryContainer,
		RecordingContainer: recordingContainer,
	}
}

func (c *Container) RouterConfig() router.RouterConfig {
	return router.RouterConfig{
		AllowedOrigins:   c.Settings.AllowedOrigins,
		AIConfigured:     c.AIGatewayContainer.Configured,
		DocumentHandler:  c.DocumentContainer.Handler,
		NotebookHandler:  c.NotebookContainer.Handler,
		QuizHandler:      c.QuizContainer.Handler,
		ProfileHandler:   c.ProfileContainer.Handler,
		SummaryHandler:   c.SummaryContainer.Handler,
		RecordingHandler: c.RecordingContainer.Handler,
	}
}
