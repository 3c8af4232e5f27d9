package config

import (
	"os"
	"strconv"
	"strings"
)

// App holds the loaded configuration for the running process.
var App *Config

type Config struct {
	Port         string
	DBUrl        string
	JWTSecret    string
	CronSecret   string
	CronSchedule string

	// Emails allowed to log in. Empty list allows everyone (local dev).
	AllowedEmails []string

	Sheets SheetsConfig

	// Base64-encoded Firebase service account JSON for FCM.
	FirebaseCredentialsB64 string

	Twilio              TwilioConfig
	SMSRemindersEnabled bool
}

type SheetsConfig struct {
	SpreadsheetID string
	// Base64-encoded Google service account JSON.
	CredentialsB64 string
	SheetName      string
	// First data row in the sheet (row 1 is the header).
	StartRow int
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

func Load() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DBUrl:        os.Getenv("DB_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		CronSecret:   os.Getenv("CRON_SECRET"),
		CronSchedule: getEnv("CRON_SCHEDULE", "0 9 * * *"),
		Sheets: SheetsConfig{
			SpreadsheetID:  os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"),
			CredentialsB64: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_BASE64"),
			SheetName:      getEnv("GOOGLE_SHEETS_SHEET_NAME", "Customers"),
			StartRow:       getEnvInt("GOOGLE_SHEETS_START_ROW", 2),
		},
		FirebaseCredentialsB64: os.Getenv("FIREBASE_CREDENTIALS_BASE64"),
		Twilio: TwilioConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			FromNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
		},
		SMSRemindersEnabled: getEnv("SMS_REMINDERS_ENABLED", "false") == "true",
	}

	if allowed := os.Getenv("ALLOWED_EMAILS"); allowed != "" {
		for _, email := range strings.Split(allowed, ",") {
			if email = strings.TrimSpace(email); email != "" {
				cfg.AllowedEmails = append(cfg.AllowedEmails, strings.ToLower(email))
			}
		}
	}

	App = cfg
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
