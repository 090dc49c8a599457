package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/dmejia/plant-bot/internal/api"
	"github.com/dmejia/plant-bot/internal/config"
	"github.com/dmejia/plant-bot/internal/integration/openai"
	"github.com/dmejia/plant-bot/internal/repository"
	"github.com/dmejia/plant-bot/internal/usecases"
)

func main() {
	// Configure logging
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Starting Plant Bot...")

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize records repository
	records, err := repository.NewJSONRecordsRepository(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize records repository: %v", err)
	}

	// Initialize usage metrics; the bot runs without them if sqlite
	// setup fails.
	var metrics repository.MetricsRepository
	sqliteMetrics, err := repository.NewSQLiteMetricsRepository(filepath.Join(cfg.DataDir, "metrics.db"))
	if err != nil {
		log.Printf("Failed to initialize metrics repository, continuing without usage tracking: %v", err)
	} else {
		metrics = sqliteMetrics
		defer sqliteMetrics.Close()
	}

	// Initialize the free-text assistant if an API key is configured
	var assistant openai.AssistantService
	if cfg.OpenAIKey != "" {
		assistant, err = openai.NewAssistantService(cfg.OpenAIKey)
		if err != nil {
			log.Printf("Failed to initialize OpenAI assistant, continuing without it: %v", err)
		}
	} else {
		log.Println("OPENAI_API_KEY not set, free-text fallback disabled")
	}

	// Initialize use cases
	plants := usecases.NewPlantUseCase(records)
	watering := usecases.NewWateringUseCase(records)
	hours := usecases.NewHoursUseCase(records, cfg.ServiceHoursGoal)

	// Initialize Telegram bot
	telegramBot, err := api.NewTelegramBot(cfg.BotToken, plants, watering, hours, metrics, assistant)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram bot: %v", err)
	}

	// Start the bot
	telegramBot.Start()
}
