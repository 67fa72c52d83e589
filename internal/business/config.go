// Package business provides the static business profile the receptionist
// answers from: hours, services, FAQs, and the booking link.
package business

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// FAQ is a single question/answer pair surfaced in the system prompt.
type FAQ struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

// Config holds the business profile. It is loaded once at startup and never
// mutated afterward.
type Config struct {
	BusinessName string   `json:"business_name"`
	Hours        string   `json:"hours"`
	Location     string   `json:"location"`
	Services     []string `json:"services"`
	Pricing      string   `json:"pricing"`
	Languages    []string `json:"languages"`
	FAQs         []FAQ    `json:"faqs"`
	BookingLink  string   `json:"booking_link"`
}

// LoadFile reads and parses the business profile from a JSON file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("business: read config %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("business: parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// SystemPrompt renders the instructional prompt that anchors every
// conversation. All FAQ pairs appear verbatim, in profile order.
func (c *Config) SystemPrompt() string {
	var faqs strings.Builder
	for _, f := range c.FAQs {
		faqs.WriteString(fmt.Sprintf("- Q: %s\n  A: %s\n", f.Question, f.Answer))
	}

	return fmt.Sprintf(`You are a concise, friendly AI receptionist for %s.
Business hours: %s
Location: %s
Services: %s
Pricing: %s
Supported languages: %s

Behavior:
- Be brief, helpful, and professional.
- Only provide info you can infer from this config and the FAQs below.
- If you're unsure, offer to take a message, or offer to text the booking link.
- If user asks to book or schedule, say you'll text the booking link and confirm.

FAQs:
%s`,
		c.BusinessName,
		c.Hours,
		c.Location,
		strings.Join(c.Services, ", "),
		c.Pricing,
		strings.Join(c.Languages, ", "),
		faqs.String(),
	)
}
