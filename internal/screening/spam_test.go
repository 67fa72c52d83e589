package screening

import "testing"

func TestIsSpamTollFree(t *testing.T) {
	s := NewScreener(nil)
	if !s.IsSpam("+18005551234", "hello there") {
		t.Fatal("expected +1800 prefix to be spam regardless of transcript")
	}
	if !s.IsSpam("18005551234", "") {
		t.Fatal("expected bare 1800 prefix to be spam")
	}
	if s.IsSpam("+15551234567", "hello there") {
		t.Fatal("did not expect ordinary number with clean transcript to be spam")
	}
}

func TestIsSpamPhrases(t *testing.T) {
	s := NewScreener(nil)
	if !s.IsSpam("+15551234567", "We have a great EXTENDED WARRANTY for your car") {
		t.Fatal("expected phrase match to be spam")
	}
	if !s.IsSpam("+15551234567", "top seo service in town") {
		t.Fatal("expected seo service to be spam")
	}
	if s.IsSpam("+15551234567", "my warranty question about your plumbing work") {
		t.Fatal("did not expect partial phrase to be spam")
	}
}

func TestIsSpamAllowlistWins(t *testing.T) {
	s := NewScreener([]string{"+15551234567"})
	if s.IsSpam("+15551234567", "extended warranty offer") {
		t.Fatal("expected allowlisted number to bypass phrase match")
	}
	// Allowlist membership is literal; a toll-free number not on the list
	// is still rejected.
	if !s.IsSpam("+18005551234", "extended warranty offer") {
		t.Fatal("expected unlisted toll-free number to stay spam")
	}
}
