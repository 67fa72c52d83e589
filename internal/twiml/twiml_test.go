package twiml

import (
	"strings"
	"testing"
)

func TestGatherSpeech(t *testing.T) {
	doc := GatherSpeech("Hello, how can I help you today?", VoiceEnglish, "/handle_speech")
	out, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	body := string(out)
	if !strings.HasPrefix(body, "<?xml") {
		t.Fatalf("expected XML declaration, got %q", body)
	}
	for _, want := range []string{
		`<Gather input="speech" action="/handle_speech" method="POST" speechModel="phone_call">`,
		`<Say voice="Polly.Joanna">Hello, how can I help you today?</Say>`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in document, got %q", want, body)
		}
	}
}

func TestSayHangup(t *testing.T) {
	out, err := SayHangup("Goodbye.", VoiceEnglish).Encode()
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	body := string(out)
	if !strings.Contains(body, "<Hangup></Hangup>") {
		t.Fatalf("expected hangup verb, got %q", body)
	}
	if strings.Index(body, "<Say") > strings.Index(body, "<Hangup") {
		t.Fatalf("expected Say before Hangup, got %q", body)
	}
}

func TestSayRedirect(t *testing.T) {
	out, err := SayRedirect("One moment.", VoiceSpanish, "/voice").Encode()
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	body := string(out)
	if !strings.Contains(body, `<Redirect method="POST">/voice</Redirect>`) {
		t.Fatalf("expected redirect verb, got %q", body)
	}
	if !strings.Contains(body, `voice="Polly.Miguel"`) {
		t.Fatalf("expected Spanish voice, got %q", body)
	}
}
