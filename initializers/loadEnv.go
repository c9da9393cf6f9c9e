package initializers

import (
	"log/slog"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env into the process environment when the file exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}
}
