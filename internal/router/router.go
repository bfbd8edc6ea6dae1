package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saulo-duarte/odontomind-api/internal/auth"
	"github.com/saulo-duarte/odontomind-api/internal/config"
	"github.com/saulo-duarte/odontomind-api/internal/document"
	"github.com/saulo-duarte/odontomind-api/internal/middlewares"
	"github.com/saulo-duarte/odontomind-api/internal/notebook"
	"github.com/saulo-duarte/odontomind-api/internal/profile"
	"github.com/saulo-duarte/odontomind-api/internal/quiz"
	"github.com/saulo-duarte/odontomind-api/internal/recording"
	"github.com/saulo-duarte/odontomind-api/internal/summary"
)

type RouterConfig struct {
	AllowedOrigins   []string
	AIConfigured     bool
	DocumentHandler  *document.Handler
	NotebookHandler  *notebook.Handler
	QuizHandler      *quiz.Handler
	ProfileHandler   *profile.Handler
	SummaryHandler   *summary.Handler
	RecordingHandler *recording.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]any{
			"status":       "ok",
			"aiConfigured": cfg.AIConfigured,
		})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/documents", document.Routes(cfg.DocumentHandler))
		r.Mount("/notebooks", notebook.Routes(cfg.NotebookHandler))
		r.Mount("/quiz", quiz.Routes(cfg.QuizHandler))
		r.Mount("/profile", profile.Routes(cfg.ProfileHandler))
		r.Mount("/summaries", summary.Routes(cfg.SummaryHandler))
		r.Mount("/recordings", recording.Routes(cfg.RecordingHandler))

		r.Get("/dashboard", cfg.ProfileHandler.GetDashboard)
		r.Get("/folders", cfg.SummaryHandler.ListFolders)
	})
	return r
}
