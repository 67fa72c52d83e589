package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/oakline/frontdesk/internal/business"
	appconfig "github.com/oakline/frontdesk/internal/config"
)

// Preflight check for a new deployment: verifies credentials are present and
// the business profile parses before pointing a phone number at the server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	required := []string{
		"TWILIO_ACCOUNT_SID",
		"TWILIO_AUTH_TOKEN",
		"TWILIO_PHONE_NUMBER",
		"OPENAI_API_KEY",
	}

	failed := false
	for _, key := range required {
		if os.Getenv(key) == "" {
			fmt.Printf("❌ %s = MISSING\n", key)
			failed = true
			continue
		}
		fmt.Printf("✅ %s = set\n", key)
	}

	cfg := appconfig.Load()
	biz, err := business.LoadFile(cfg.BusinessConfigPath)
	if err != nil {
		fmt.Printf("❌ business config %s: %v\n", cfg.BusinessConfigPath, err)
		failed = true
	} else {
		fmt.Printf("✅ business config %s: %s\n", cfg.BusinessConfigPath, biz.BusinessName)
	}

	if failed {
		os.Exit(1)
	}
	fmt.Println("✅ Env looks good. Point the Twilio voice webhook at https://<host>/voice (POST).")
}
