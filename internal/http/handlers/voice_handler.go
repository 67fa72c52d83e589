package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/oakline/frontdesk/internal/conversation"
	"github.com/oakline/frontdesk/internal/messaging"
	"github.com/oakline/frontdesk/internal/observability/metrics"
	"github.com/oakline/frontdesk/internal/twiml"
	"github.com/oakline/frontdesk/pkg/logging"
)

// localCallID stands in when the provider omits CallSid, e.g. when the
// endpoint is exercised with curl during development.
const localCallID = "LOCAL"

// VoiceHandler serves the Twilio voice webhooks. Each inbound request carries
// the caller's latest utterance as provider-side STT output; the handler feeds
// it through the conversation engine and answers with TwiML.
type VoiceHandler struct {
	engine  *conversation.Engine
	metrics *metrics.CallMetrics
	logger  *logging.Logger

	// authToken enables Twilio signature validation when non-empty.
	authToken string
	// publicBaseURL overrides the reconstructed webhook URL during signature
	// validation, for deployments behind proxies that rewrite Host.
	publicBaseURL string
}

// VoiceHandlerConfig configures the VoiceHandler.
type VoiceHandlerConfig struct {
	Engine        *conversation.Engine
	Metrics       *metrics.CallMetrics
	Logger        *logging.Logger
	AuthToken     string
	PublicBaseURL string
}

// NewVoiceHandler creates a new VoiceHandler.
func NewVoiceHandler(cfg VoiceHandlerConfig) *VoiceHandler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &VoiceHandler{
		engine:        cfg.Engine,
		metrics:       cfg.Metrics,
		logger:        cfg.Logger,
		authToken:     cfg.AuthToken,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
}

// Voice answers a new or redirected call with the greeting gather.
func (h *VoiceHandler) Voice(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.verifySignature(w, r) {
		return
	}
	req, err := messaging.ParseVoiceWebhook(r)
	if err != nil {
		h.logger.Error("voice: failed to parse webhook", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	callID := req.CallSid
	if callID == "" {
		callID = localCallID
	}

	res, err := h.engine.Greet(r.Context(), callID)
	if err != nil {
		h.logger.Error("voice: greet failed", "call_id", callID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveWebhookLatency("voice", time.Since(start).Seconds())
	h.writeTwiML(w, twiml.GatherSpeech(res.Text, voiceFor(res.Language), "/handle_speech"))
}

// HandleSpeech processes the caller's transcribed utterance.
func (h *VoiceHandler) HandleSpeech(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.verifySignature(w, r) {
		return
	}
	req, err := messaging.ParseVoiceWebhook(r)
	if err != nil {
		h.logger.Error("handle_speech: failed to parse webhook", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	callID := req.CallSid
	if callID == "" {
		callID = localCallID
	}

	res, err := h.engine.HandleTranscript(r.Context(), callID, req.From, req.SpeechResult)
	if err != nil {
		h.logger.Error("handle_speech: turn failed", "call_id", callID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveTurn(res.Outcome)
	h.metrics.ObserveWebhookLatency("handle_speech", time.Since(start).Seconds())

	voice := voiceFor(res.Language)
	var doc *twiml.Document
	switch res.Action {
	case conversation.ActionHangup:
		doc = twiml.SayHangup(res.Text, voice)
	case conversation.ActionSay:
		doc = twiml.SayOnly(res.Text, voice)
	case conversation.ActionRedirect:
		doc = twiml.SayRedirect(res.Text, voice, "/voice")
	default:
		doc = twiml.GatherSpeech(res.Text, voice, "/handle_speech")
	}
	h.writeTwiML(w, doc)
}

// HealthCheck reports liveness.
func (h *VoiceHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok": true,
		"ts": time.Now().UTC().Format(time.RFC3339),
	})
}

// Root answers uptime probes that hit the bare domain.
func (h *VoiceHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *VoiceHandler) verifySignature(w http.ResponseWriter, r *http.Request) bool {
	if h.authToken == "" {
		return true
	}
	webhookURL := messaging.BuildAbsoluteURL(r)
	if h.publicBaseURL != "" {
		webhookURL = h.publicBaseURL + r.URL.Path
	}
	if !messaging.ValidateTwilioSignature(r, h.authToken, webhookURL) {
		h.logger.Warn("rejected webhook with invalid signature", "path", r.URL.Path, "remote_ip", r.RemoteAddr)
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}

func (h *VoiceHandler) writeTwiML(w http.ResponseWriter, doc *twiml.Document) {
	body, err := doc.Encode()
	if err != nil {
		h.logger.Error("failed to encode twiml", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func voiceFor(lang conversation.Language) string {
	if lang == conversation.LangSpanish {
		return twiml.VoiceSpanish
	}
	return twiml.VoiceEnglish
}
