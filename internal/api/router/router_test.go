package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oakline/frontdesk/internal/conversation"
	"github.com/oakline/frontdesk/internal/http/handlers"
	"github.com/oakline/frontdesk/internal/observability/metrics"
	"github.com/oakline/frontdesk/internal/screening"
	"github.com/oakline/frontdesk/pkg/logging"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := conversation.NewMemorySessionStore("You answer the phone for Oakline Dental.", 90*time.Second, 0)
	t.Cleanup(func() { _ = store.Close() })
	engine := conversation.NewEngine(store, conversation.NewStaticReplier(), screening.NewScreener(nil), nil, nil, logging.New("error"))
	reg := prometheus.NewRegistry()
	vh := handlers.NewVoiceHandler(handlers.VoiceHandlerConfig{
		Engine:  engine,
		Metrics: metrics.NewCallMetrics(reg),
		Logger:  logging.New("error"),
	})
	return New(&Config{
		Logger:         logging.New("error"),
		VoiceHandler:   vh,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
}

func TestRouterVoiceRoutes(t *testing.T) {
	r := newTestRouter(t)
	for _, path := range []string{"/voice", "/voiceHandler"} {
		form := url.Values{"CallSid": {"CA1"}}
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("POST %s: expected 200, got %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "<Gather") {
			t.Fatalf("POST %s: expected gather twiml, got %s", path, rec.Body.String())
		}
	}
}

func TestRouterHandleSpeech(t *testing.T) {
	r := newTestRouter(t)
	form := url.Values{"CallSid": {"CA2"}, "From": {"+15551230000"}, "SpeechResult": {"hi"}}
	req := httptest.NewRequest(http.MethodPost, "/handle_speech", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterHealthAndRoot(t *testing.T) {
	r := newTestRouter(t)
	for path, want := range map[string]string{"/healthz": `"ok":true`, "/": "OK"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("GET %s: expected %q in body, got %s", path, want, rec.Body.String())
		}
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rec.Code)
	}
}
