package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"

	"github.com/oakline/frontdesk/internal/api/router"
	"github.com/oakline/frontdesk/internal/business"
	appconfig "github.com/oakline/frontdesk/internal/config"
	"github.com/oakline/frontdesk/internal/conversation"
	"github.com/oakline/frontdesk/internal/http/handlers"
	"github.com/oakline/frontdesk/internal/messaging"
	"github.com/oakline/frontdesk/internal/msglog"
	"github.com/oakline/frontdesk/internal/notify"
	"github.com/oakline/frontdesk/internal/observability/metrics"
	"github.com/oakline/frontdesk/internal/screening"
	"github.com/oakline/frontdesk/pkg/logging"
)

func main() {
	// Load .env file if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting frontdesk API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	biz, err := business.LoadFile(cfg.BusinessConfigPath)
	if err != nil {
		logger.Error("failed to load business config", "path", cfg.BusinessConfigPath, "error", err)
		os.Exit(1)
	}
	systemPrompt := biz.SystemPrompt()

	// Session store: in-process by default, Redis when calls must survive
	// restarts or the webhook runs on more than one instance.
	var sessions conversation.SessionStore
	switch cfg.SessionStore {
	case "redis":
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		sessions = conversation.NewRedisSessionStore(client, systemPrompt, cfg.SessionIdleTimeout)
		logger.Info("using redis session store", "addr", cfg.RedisAddr)
	default:
		sessions = conversation.NewMemorySessionStore(systemPrompt, cfg.SessionIdleTimeout, cfg.SessionSweepInterval)
		logger.Info("using in-memory session store")
	}
	defer func() { _ = sessions.Close() }()

	var replier conversation.Replier
	if cfg.OpenAIAPIKey != "" {
		replier = conversation.NewOpenAIReplier(openai.NewClient(cfg.OpenAIAPIKey), cfg.OpenAIModel, cfg.CompletionTimeout, logger)
	} else {
		logger.Warn("OPENAI_API_KEY not set; replies fall back to a canned line")
		replier = conversation.NewStaticReplier()
	}

	callMetrics := metrics.NewCallMetrics(nil)

	var sms notify.SMSSender
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioPhoneNumber != "" {
		sms = &meteredSMSSender{
			inner:   messaging.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber, logger),
			metrics: callMetrics,
		}
	} else {
		logger.Warn("Twilio credentials not fully set; SMS follow-ups disabled")
	}

	var email notify.EmailSender
	if sender := notify.NewSendGridSender(cfg.SendGridAPIKey, cfg.SendGridFromEmail, biz.BusinessName, logger); sender != nil {
		email = sender
	}

	notifier := notify.NewService(sms, email, biz, cfg.OwnerEmail, logger)
	engine := conversation.NewEngine(
		sessions,
		replier,
		screening.NewScreener(cfg.Allowlist),
		msglog.NewStore(cfg.MessagesDir),
		notifier,
		logger,
	)

	voiceHandler := handlers.NewVoiceHandler(handlers.VoiceHandlerConfig{
		Engine:        engine,
		Metrics:       callMetrics,
		Logger:        logger,
		AuthToken:     cfg.TwilioAuthToken,
		PublicBaseURL: cfg.PublicBaseURL,
	})

	r := router.New(&router.Config{
		Logger:         logger,
		VoiceHandler:   voiceHandler,
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// meteredSMSSender counts outbound sends around the real Twilio sender.
type meteredSMSSender struct {
	inner   notify.SMSSender
	metrics *metrics.CallMetrics
}

func (s *meteredSMSSender) SendSMS(ctx context.Context, to, body string) error {
	err := s.inner.SendSMS(ctx, to, body)
	if err != nil {
		s.metrics.ObserveOutboundSMS("failed")
		return err
	}
	s.metrics.ObserveOutboundSMS("sent")
	return nil
}
