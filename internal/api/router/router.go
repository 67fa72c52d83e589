package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/oakline/frontdesk/internal/http/handlers"
	httpmiddleware "github.com/oakline/frontdesk/internal/http/middleware"
	"github.com/oakline/frontdesk/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	VoiceHandler   *handlers.VoiceHandler
	MetricsHandler http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Twilio posts webhooks, but GET stays open so the endpoints can be
	// poked from a browser while wiring up a number.
	r.Get("/voice", cfg.VoiceHandler.Voice)
	r.Post("/voice", cfg.VoiceHandler.Voice)
	// Alias kept for numbers still configured against the old path.
	r.Get("/voiceHandler", cfg.VoiceHandler.Voice)
	r.Post("/voiceHandler", cfg.VoiceHandler.Voice)
	r.Get("/handle_speech", cfg.VoiceHandler.HandleSpeech)
	r.Post("/handle_speech", cfg.VoiceHandler.HandleSpeech)

	r.Get("/", cfg.VoiceHandler.Root)
	r.Get("/healthz", cfg.VoiceHandler.HealthCheck)

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
