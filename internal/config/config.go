package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr            string
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	SMTPSecure      bool
	SenderName      string
	SenderAddress   string
	OperatorAddress string
	AllowedOrigins  []string
	ServerLog       *log.Logger
}

// Load reads environment variables (optionally seeded from a .env file)
// and returns a fully populated Config. Missing relay credentials are
// fatal: without them every submission would fail at send time.
func Load() Config {
	_ = godotenv.Load()

	host := strings.TrimSpace(os.Getenv("SMTP_HOST"))
	if host == "" {
		log.Fatal("SMTP_HOST must be configured")
	}

	port := 587
	if raw := strings.TrimSpace(os.Getenv("SMTP_PORT")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("SMTP_PORT is not a number: %q", raw)
		}
		port = parsed
	}

	username := strings.TrimSpace(os.Getenv("SMTP_USER"))
	password := os.Getenv("SMTP_PASS")
	if username == "" || password == "" {
		log.Fatal("SMTP_USER and SMTP_PASS must be configured")
	}

	senderAddress := strings.TrimSpace(os.Getenv("SMTP_SENDER_EMAIL"))
	if senderAddress == "" {
		log.Fatal("SMTP_SENDER_EMAIL must be configured")
	}

	operator := strings.TrimSpace(os.Getenv("SMTP_RECIPIENT_EMAIL"))
	if operator == "" {
		log.Fatal("SMTP_RECIPIENT_EMAIL must be configured")
	}

	return Config{
		Addr:            envOrDefault("HTTP_ADDR", ":8080"),
		SMTPHost:        host,
		SMTPPort:        port,
		SMTPUsername:    username,
		SMTPPassword:    password,
		SMTPSecure:      secureForPort(port),
		SenderName:      envOrDefault("SMTP_SENDER_NAME", "Dekorla Anket"),
		SenderAddress:   senderAddress,
		OperatorAddress: operator,
		AllowedOrigins: parseList("API_ALLOWED_ORIGINS", []string{
			"https://dekorla.co",
			"https://dekorla.myshopify.com",
			"https://admin.shopify.com",
			".myshopify.com",
		}),
		ServerLog: log.New(os.Stdout, "[tasarim-anketi] ", log.LstdFlags|log.Lshortfile),
	}
}

// secureForPort decides implicit TLS: port 465 is the implicit-TLS port,
// anything else upgrades via STARTTLS. SMTP_SECURE overrides.
func secureForPort(port int) bool {
	if raw := strings.TrimSpace(os.Getenv("SMTP_SECURE")); raw != "" {
		return strings.EqualFold(raw, "true")
	}
	return port == 465
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
