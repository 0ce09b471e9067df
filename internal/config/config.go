package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultInput  = "liedjes.csv"
	DefaultOutput = "wheelData.json"
	DefaultLayout = "positional"
)

// DefaultEncodings is tried in order when WHEEL_ENCODINGS is unset.
var DefaultEncodings = []string{"utf-8-sig", "windows-1252", "iso-8859-1"}

type Config struct {
	InputPath  string
	OutputPath string
	Layout     string
	Encodings  []string
	// Delimiter overrides the layout delimiter when non-empty.
	Delimiter string
	Strict    bool
	LogLevel  string
	LogFormat string

	SpotifyID     string
	SpotifySecret string
	YouTubeID     string
	YouTubeSecret string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		InputPath:     getEnv("WHEEL_INPUT", DefaultInput),
		OutputPath:    getEnv("WHEEL_OUTPUT", DefaultOutput),
		Layout:        getEnv("WHEEL_LAYOUT", DefaultLayout),
		Encodings:     getEnvList("WHEEL_ENCODINGS", DefaultEncodings),
		Delimiter:     getEnv("WHEEL_DELIMITER", ""),
		Strict:        getEnvBool("WHEEL_STRICT", false),
		LogLevel:      getEnv("WHEEL_LOG_LEVEL", "info"),
		LogFormat:     getEnv("WHEEL_LOG_FORMAT", "text"),
		SpotifyID:     getEnv("SPOTIFY_ID", ""),
		SpotifySecret: getEnv("SPOTIFY_SECRET", ""),
		YouTubeID:     getEnv("YOUTUBE_CLIENT_ID", ""),
		YouTubeSecret: getEnv("YOUTUBE_CLIENT_SECRET", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvList splits a comma-separated value, dropping empty entries.
func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), fallback...)
	}
	return out
}
