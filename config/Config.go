package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every runtime setting the process needs. It is built once in
// main and handed to the components that use it; nothing else reads the
// environment directly.
type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	JWTSecret   string
	TokenTTL    time.Duration
	OTPTTL      time.Duration
	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	FrontendURL string
	CORSOrigins []string
}

const (
	defaultPort     = "8080"
	defaultDBName   = "myprofile-dashboard"
	defaultTokenTTL = 7 * 24 * time.Hour
	defaultOTPTTL   = 10 * time.Minute
	defaultSMTPPort = 587
	defaultFrontend = "http://localhost:3000"
)

func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", defaultPort),
		MongoURI:    os.Getenv("MONGO_URI"),
		DBName:      getEnv("DB_NAME", defaultDBName),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenTTL:    defaultTokenTTL,
		OTPTTL:      defaultOTPTTL,
		SMTPHost:    getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:    defaultSMTPPort,
		SMTPUser:    os.Getenv("EMAIL_USER"),
		SMTPPass:    os.Getenv("EMAIL_PASS"),
		FrontendURL: getEnv("FRONTEND_URL", defaultFrontend),
		CORSOrigins: []string{getEnv("FRONTEND_URL", defaultFrontend), "http://127.0.0.1:5500"},
	}

	if v := os.Getenv("SMTP_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: invalid SMTP_PORT %q: %w", v, err)
		}
		cfg.SMTPPort = p
	}

	if v := os.Getenv("OTP_TTL_MINUTES"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: invalid OTP_TTL_MINUTES %q: %w", v, err)
		}
		cfg.OTPTTL = time.Duration(m) * time.Minute
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("config: MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
