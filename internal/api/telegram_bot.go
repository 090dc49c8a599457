// Package api provides handlers for external APIs and interfaces
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dmejia/plant-bot/internal/integration/openai"
	"github.com/dmejia/plant-bot/internal/repository"
	"github.com/dmejia/plant-bot/internal/usecases"
	"github.com/dmejia/plant-bot/internal/validation"
)

// TelegramBot handles interactions with the Telegram API
type TelegramBot struct {
	bot       *tgbotapi.BotAPI
	plants    *usecases.PlantUseCase
	watering  *usecases.WateringUseCase
	hours     *usecases.HoursUseCase
	metrics   repository.MetricsRepository // nil disables usage tracking
	assistant openai.AssistantService      // nil disables the free-text fallback
	sessions  map[int64]*session
}

// NewTelegramBot creates a new Telegram bot handler
func NewTelegramBot(
	botToken string,
	plants *usecases.PlantUseCase,
	watering *usecases.WateringUseCase,
	hours *usecases.HoursUseCase,
	metrics repository.MetricsRepository,
	assistant openai.AssistantService,
) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %v", err)
	}

	return &TelegramBot{
		bot:       bot,
		plants:    plants,
		watering:  watering,
		hours:     hours,
		metrics:   metrics,
		assistant: assistant,
		sessions:  make(map[int64]*session),
	}, nil
}

// Start begins listening for and handling Telegram messages
func (t *TelegramBot) Start() {
	log.Printf("Authorized on Telegram account %s", t.bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	log.Println("Bot is now listening for messages...")

	for update := range updates {
		if update.Message == nil {
			continue
		}

		log.Printf("Received message from %s (ID: %d): %s",
			update.Message.From.UserName,
			update.Message.From.ID,
			update.Message.Text)

		t.handleMessage(update.Message)
	}
}

// handleMessage routes a message to the command dispatcher, an active
// conversation, or the free-text fallback. Panics are caught here so one
// bad command never takes the whole process down.
func (t *TelegramBot) handleMessage(message *tgbotapi.Message) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic handling %q from user %d: %v", message.Text, message.From.ID, r)
			t.reply(message.Chat.ID, "Something went wrong handling that. Please try again.")
		}
	}()

	switch {
	case message.IsCommand():
		t.handleCommand(message)
	case t.sessions[message.Chat.ID] != nil:
		t.handleConversationReply(message)
	default:
		t.handleNonCommand(message)
	}
}

// handleCommand dispatches a slash command. Any command other than
// /cancel abandons an in-progress conversation first.
func (t *TelegramBot) handleCommand(message *tgbotapi.Message) {
	command := message.Command()
	t.trackUsage(message.From.ID, command)

	if command != "cancel" {
		delete(t.sessions, message.Chat.ID)
	}

	switch command {
	case "start":
		t.handleStart(message)
	case "help":
		t.handleHelp(message)
	case "register":
		t.handleRegister(message)
	case "plants":
		t.handlePlants(message)
	case "delete":
		t.handleDelete(message)
	case "measure":
		t.startMeasure(message)
	case "height":
		t.handleHeight(message)
	case "deletemeasure":
		t.startDeleteMeasure(message)
	case "water":
		t.handleWater(message)
	case "watering":
		t.handleWatering(message)
	case "setwatered":
		t.handleSetWatered(message)
	case "setfrequency":
		t.handleSetFrequency(message)
	case "loghours":
		t.handleLogHours(message, false)
	case "loghoursfor":
		t.handleLogHours(message, true)
	case "hours":
		t.handleHoursSummary(message)
	case "deletehours":
		t.handleDeleteHours(message)
	case "cancel":
		t.handleCancel(message)
	case "deletemydata":
		t.handleDeleteMyData(message)
	default:
		log.Printf("Received unknown command /%s from user %s", command, message.From.UserName)
		t.reply(message.Chat.ID, "Unknown command. Use /help to see available commands.")
	}
}

// handleNonCommand processes free-text messages outside a conversation.
// With an assistant configured the text is interpreted into an intent;
// otherwise the user gets a help hint.
func (t *TelegramBot) handleNonCommand(message *tgbotapi.Message) {
	log.Printf("Received non-command message from user %s: %s", message.From.UserName, message.Text)

	if t.assistant == nil {
		t.reply(message.Chat.ID, "I don't understand. Use /help to see available commands.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := t.assistant.InterpretUserQuery(ctx, message.Text, t.plants.List(message.From.ID))
	if err != nil {
		log.Printf("Error interpreting user query: %v", err)
		t.reply(message.Chat.ID, "I don't understand. Use /help to see available commands.")
		return
	}

	switch resp.CommandName {
	case "ConsultWatering":
		if resp.PlantName == "" {
			t.reply(message.Chat.ID, resp.UserMessage)
			return
		}
		result, err := t.watering.Consult(message.From.ID, resp.PlantName, time.Now())
		if err != nil {
			t.replyError(message.Chat.ID, err)
			return
		}
		text := formatConsult(result)
		if resp.UserMessage != "" {
			text = resp.UserMessage + "\n\n" + text
		}
		t.reply(message.Chat.ID, text)
	default:
		if resp.UserMessage == "" {
			t.reply(message.Chat.ID, "I don't understand. Use /help to see available commands.")
			return
		}
		t.reply(message.Chat.ID, resp.UserMessage)
	}
}

// trackUsage records one command invocation; failures are logged and
// never surfaced to the user.
func (t *TelegramBot) trackUsage(userID int64, command string) {
	if t.metrics == nil {
		return
	}
	if err := t.metrics.RecordCommandUsage(userID, command); err != nil {
		log.Printf("Failed to record usage of /%s: %v", command, err)
	}
}

func (t *TelegramBot) reply(chatID int64, text string) {
	t.send(tgbotapi.NewMessage(chatID, text))
}

// replyRemoveKeyboard replies while clearing any reply keyboard
func (t *TelegramBot) replyRemoveKeyboard(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	t.send(msg)
}

// replyWithPlantKeyboard replies with a one-column keyboard of the user's
// plants plus a cancel button.
func (t *TelegramBot) replyWithPlantKeyboard(chatID int64, text string, plants []string) {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(plants)+1)
	for _, plant := range plants {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(plant)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(cancelButton)))

	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.OneTimeKeyboard = true
	keyboard.ResizeKeyboard = true

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	t.send(msg)
}

func (t *TelegramBot) send(msg tgbotapi.MessageConfig) {
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// replyError reports a validation failure verbatim; anything else is
// logged and replaced with a generic message.
func (t *TelegramBot) replyError(chatID int64, err error) {
	var vErr *validation.ValidationError
	if errors.As(err, &vErr) {
		t.reply(chatID, "❗ "+vErr.Message)
		return
	}
	log.Printf("Unexpected error: %v", err)
	t.reply(chatID, "Something went wrong. Please try again.")
}

// commandArgs splits the command arguments into space-separated tokens
func commandArgs(message *tgbotapi.Message) []string {
	return strings.Fields(message.CommandArguments())
}
