// Package screening holds the pure classifiers run against caller numbers and
// transcripts before any conversation work happens.
package screening

import (
	"regexp"
	"strings"
)

// tollFreeRe matches numbers with a leading +1800 or 1800 prefix, which are
// rejected before the transcript is even examined.
var tollFreeRe = regexp.MustCompile(`^\+?1800`)

// solicitation phrases that flag a call as spam on a single hit.
var spamPhrases = []string{
	"special offer",
	"extended warranty",
	"google listing",
	"merchant processing",
	"limited-time",
	"seo service",
	"car warranty",
}

// Screener classifies inbound calls. Allowlisted numbers are never spam.
type Screener struct {
	allowlist map[string]struct{}
}

// NewScreener builds a screener from the allow-listed caller numbers.
func NewScreener(allowlist []string) *Screener {
	allowed := make(map[string]struct{}, len(allowlist))
	for _, number := range allowlist {
		if trimmed := strings.TrimSpace(number); trimmed != "" {
			allowed[trimmed] = struct{}{}
		}
	}
	return &Screener{allowlist: allowed}
}

// IsSpam reports whether a call should be rejected. Allowlist membership wins
// over everything else; toll-free prefixes lose regardless of transcript.
func (s *Screener) IsSpam(fromNumber, transcript string) bool {
	if _, ok := s.allowlist[fromNumber]; ok {
		return false
	}
	if tollFreeRe.MatchString(fromNumber) {
		return true
	}
	lowered := strings.ToLower(transcript)
	for _, phrase := range spamPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
