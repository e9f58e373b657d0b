package platform

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads a .env file when present. A missing file is not an
// error; real environments set variables directly.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// GetEnv reads an env var with a default.
func GetEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

// GetEnvInt reads an integer env var, keeping the default on parse failure.
func GetEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetEnvBool treats "true" and "1" as true, anything else set as false.
func GetEnvBool(key string, defaultVal bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		return strings.EqualFold(val, "true") || val == "1"
	}
	return defaultVal
}

// GetEnvList splits a comma-separated env var, trimming whitespace.
func GetEnvList(key string, defaultVal []string) []string {
	val, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(val) == "" {
		return defaultVal
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
