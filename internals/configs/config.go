package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret            string
	JWTRefreshSecret     string
	GoogleClientID       string
	GoogleAllowedDomains []string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")
	GoogleAllowedDomains = splitCSV(GetEnv("GOOGLE_ALLOWED_DOMAINS"))

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}

	if JWTRefreshSecret == "" {
		log.Println("❌ JWT_REFRESH_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_REFRESH_SECRET berhasil dimuat.")
	}

	if GoogleClientID == "" {
		log.Println("❌ GOOGLE_CLIENT_ID belum diset!")
	} else {
		log.Println("✅ GOOGLE_CLIENT_ID berhasil dimuat.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// =======================
// GOOGLE (Sheets/Drive/Gemini)
// =======================

// CatalogSheetsConfig memetakan keempat spreadsheet katalog.
// Dipakai saat membangun catalog store di main — bukan lookup env
// tersebar di controller.
type CatalogSheetsConfig struct {
	MaterialsSpreadsheetID string
	DigitalSpreadsheetID   string
	ClassroomSpreadsheetID string
	ScheduleSpreadsheetID  string
}

func LoadCatalogSheets() CatalogSheetsConfig {
	cfg := CatalogSheetsConfig{
		MaterialsSpreadsheetID: GetEnv("GOOGLE_SHEETS_CATALOG_MATERI_ID"),
		DigitalSpreadsheetID:   GetEnv("GOOGLE_SHEETS_CATALOG_DIGITAL_ID"),
		ClassroomSpreadsheetID: GetEnv("GOOGLE_SHEETS_CATALOG_CLASSROOM_ID"),
		ScheduleSpreadsheetID:  GetEnv("GOOGLE_SHEETS_SCHEDULE_AUTOMATION_ID"),
	}
	if cfg.MaterialsSpreadsheetID == "" {
		log.Println("⚠️ GOOGLE_SHEETS_CATALOG_MATERI_ID belum diset")
	}
	return cfg
}

type DriveConfig struct {
	CredentialsFile string
	RootFolderID    string
}

func LoadDrive() DriveConfig {
	return DriveConfig{
		CredentialsFile: GetEnv("GOOGLE_SERVICE_ACCOUNT_CREDENTIALS", "google-credentials.json"),
		RootFolderID:    GetEnv("GOOGLE_DRIVE_FOLDER_ID"),
	}
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

func LoadGemini() GeminiConfig {
	return GeminiConfig{
		APIKey: GetEnv("GEMINI_API_KEY"),
		Model:  GetEnv("GEMINI_MODEL", "gemini-2.0-flash"),
	}
}

// =======================
// N8N WORKFLOW ENGINE
// =======================

type WorkflowConfig struct {
	WebhookURL    string
	APIToken      string
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// Enabled: URL kosong berarti trigger outbound dimatikan (silent).
func (w WorkflowConfig) Enabled() bool { return strings.TrimSpace(w.WebhookURL) != "" }

func LoadWorkflow() WorkflowConfig {
	return WorkflowConfig{
		WebhookURL:    GetEnv("N8N_WEBHOOK_URL"),
		APIToken:      GetEnv("N8N_API_TOKEN"),
		Timeout:       time.Duration(GetEnvInt("N8N_TIMEOUT", 300)) * time.Second,
		RetryAttempts: GetEnvInt("N8N_RETRY_ATTEMPTS", 3),
		RetryDelay:    time.Duration(GetEnvInt("N8N_RETRY_DELAY", 1000)) * time.Millisecond,
	}
}

// Token webhook inbound dari n8n (X-N8N-Token). Kosong = seluruh
// webhook inbound ditolak 503 sampai token dikonfigurasi.
func WebhookInboundToken() string { return GetEnv("N8N_INBOUND_TOKEN") }
