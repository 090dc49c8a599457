package main

import (
	"fmt"
	"log"
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron/v3"

	"github.com/dmejia/plant-bot/internal/config"
	"github.com/dmejia/plant-bot/internal/repository"
	"github.com/dmejia/plant-bot/internal/usecases"
)

func main() {
	// Configure logging
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Starting Plant Bot Reminder...")

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

	watering := usecases.NewWateringUseCase(records)

	// The reminder runs in its own process, so it needs its own bot client
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}
	log.Printf("Authorized on Telegram account %s", bot.Self.UserName)

	notify := func(userID int64, plant string) error {
		msg := tgbotapi.NewMessage(userID, fmt.Sprintf("🌱 Time to water '%s' today!", plant))
		if _, err := bot.Send(msg); err != nil {
			return fmt.Errorf("failed to send reminder to user %d: %v", userID, err)
		}
		return nil
	}

	sweep := func() {
		// Reload from disk first so changes made by the bot process
		// since the last tick are visible.
		if err := records.Load(); err != nil {
			log.Printf("Failed to reload records, sweeping stale data: %v", err)
		}
		notified := watering.SweepReminders(time.Now(), notify)
		if notified > 0 {
			log.Printf("Sent %d watering reminder(s)", notified)
		}
	}

	// Run the sweep immediately on startup
	sweep()

	// Set up cron scheduler to run every minute
	c := cron.New()
	_, err = c.AddFunc("* * * * *", sweep)
	if err != nil {
		log.Fatalf("Failed to set up cron job: %v", err)
	}

	log.Println("Reminder sweep has been scheduled to run every minute")
	c.Start()

	// Keep the program running
	select {}
}
