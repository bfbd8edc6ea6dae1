package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

type Settings struct {
	Port            string
	GeminiAPIKey    string
	GeminiModel     string
	GeminiLiveModel string
	DatabaseDSN     string
	JWTSecret       string
	MaxUploadBytes  int64
	LogLevel        string
	AllowedOrigins  []string
	RunningOnLambda bool
}

// Load reads the process environment. A .env file in the working directory is
// loaded first when present; variables already set win over the file.
func Load() (Settings, error) {
	_ = godotenv.Load()

	s := Settings{
		Port:            envOrDefault("PORT", "8080"),
		GeminiAPIKey:    firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY")),
		GeminiModel:     envOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiLiveModel: envOrDefault("GEMINI_LIVE_MODEL", "gemini-2.5-flash-native-audio-preview-09-2025"),
		DatabaseDSN:     os.Getenv("DATABASE_DSN"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		AllowedOrigins:  splitList(envOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		RunningOnLambda: os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",
	}

	if s.JWTSecret == "" {
		return Settings{}, ErrMissingJWTSecret
	}

	maxUploadMB, err := parseIntEnv("MAX_UPLOAD_MB", 20)
	if err != nil {
		return Settings{}, fmt.Errorf("parse MAX_UPLOAD_MB: %w", err)
	}
	s.MaxUploadBytes = maxUploadMB * 1024 * 1024

	return s, nil
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseIntEnv(key string, fallback int64) (int64, error) {
	value := envOrDefault(key, "")
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseInt(value, 10, 64)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" && v != "undefined" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
