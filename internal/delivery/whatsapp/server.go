package whatsapp

import (
	"context"
	"net/http"
	"time"

	"pronosbot/internal/application"
	"pronosbot/pkg/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes the Twilio WhatsApp webhook and the leaderboard image
// endpoint the webhook replies reference.
type Server struct {
	services *application.Service
	logger   application.Logger

	adminIDs      map[int64]struct{}
	publicBaseURL string

	httpServer *http.Server
}

func NewServer(cfg *config.Config, services *application.Service, logger application.Logger) *Server {
	admins := make(map[int64]struct{})
	for _, id := range cfg.AdminUserIDs {
		admins[id] = struct{}{}
	}

	s := &Server{
		services:      services,
		logger:        logger,
		adminIDs:      admins,
		publicBaseURL: cfg.PublicBaseURL,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/webhook", s.handleWebhook)
	r.Get("/leaderboard-image", s.handleLeaderboardImage)

	s.httpServer = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

func (s *Server) Run() error {
	s.logger.Info("WhatsApp webhook listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) isConfiguredAdmin(id int64) bool {
	_, ok := s.adminIDs[id]
	return ok
}
