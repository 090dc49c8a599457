// Package config loads the bot configuration from the environment
package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings shared by the bot and reminder binaries
type Config struct {
	BotToken         string  // Telegram bot authentication token
	ServiceHoursGoal float64 // Community-service hours target
	DataDir          string  // Directory holding the JSON data files
	OpenAIKey        string  // Optional, enables the natural-language assistant
}

// Load reads configuration from the environment, honoring a local .env file
// when present.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		BotToken:         os.Getenv("BOT_TOKEN"),
		ServiceHoursGoal: 120,
		DataDir:          os.Getenv("DATA_DIR"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if raw := os.Getenv("SERVICE_HOURS_GOAL"); raw != "" {
		if goal, err := strconv.ParseFloat(raw, 64); err == nil && goal > 0 {
			cfg.ServiceHoursGoal = goal
		}
	}
	return cfg
}

// Validate checks that the required settings are present
func (c Config) Validate() error {
	if c.BotToken == "" {
		return errors.New("BOT_TOKEN environment variable is not set")
	}
	return nil
}
