package business

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `{
		"business_name": "Acme Plumbing",
		"hours": "Mon-Fri 9am-5pm",
		"location": "Springfield",
		"services": ["repair", "install"],
		"pricing": "Varies by project",
		"languages": ["English", "Spanish"],
		"faqs": [{"q": "Do you do emergencies?", "a": "Yes, call anytime."}],
		"booking_link": "https://example.com/book"
	}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if cfg.BusinessName != "Acme Plumbing" {
		t.Fatalf("unexpected business name %q", cfg.BusinessName)
	}
	if len(cfg.Services) != 2 || cfg.Services[1] != "install" {
		t.Fatalf("unexpected services %v", cfg.Services)
	}
	if cfg.BookingLink != "https://example.com/book" {
		t.Fatalf("unexpected booking link %q", cfg.BookingLink)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := writeConfig(t, `{"business_name": `)
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestSystemPromptContainsAllFAQsInOrder(t *testing.T) {
	cfg := &Config{
		BusinessName: "Acme Plumbing",
		Hours:        "Mon-Fri 9am-5pm",
		Services:     []string{"repair"},
		Languages:    []string{"English", "Spanish"},
	}
	for i := 0; i < 5; i++ {
		cfg.FAQs = append(cfg.FAQs, FAQ{
			Question: fmt.Sprintf("question %d?", i),
			Answer:   fmt.Sprintf("answer %d.", i),
		})
	}

	prompt := cfg.SystemPrompt()
	last := -1
	for i, f := range cfg.FAQs {
		idx := strings.Index(prompt, "- Q: "+f.Question+"\n  A: "+f.Answer)
		if idx < 0 {
			t.Fatalf("FAQ %d missing from system prompt", i)
		}
		if idx <= last {
			t.Fatalf("FAQ %d out of order in system prompt", i)
		}
		last = idx
	}
	if !strings.Contains(prompt, "Acme Plumbing") {
		t.Fatalf("expected business name in prompt")
	}
	if !strings.Contains(prompt, "English, Spanish") {
		t.Fatalf("expected languages in prompt")
	}
}
