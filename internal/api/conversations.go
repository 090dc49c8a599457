package api

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// cancelButton is the keyboard entry that aborts a conversation
const cancelButton = "❌ Cancel"

// sessionState names one step of a multi-step conversation
type sessionState int

const (
	awaitingMeasurePlant sessionState = iota
	awaitingMeasureValue
	awaitingDeleteMeasurePlant
	awaitingDeleteMeasureIndex
)

// session holds the pending state of a conversation: the current step and
// the plant selected so far. It is cleared on completion or /cancel.
type session struct {
	state sessionState
	plant string
}

// startMeasure begins the measure conversation by offering the user's
// plants on a reply keyboard.
func (t *TelegramBot) startMeasure(message *tgbotapi.Message) {
	plants := t.plants.List(message.From.ID)
	if len(plants) == 0 {
		t.reply(message.Chat.ID, "❌ You don't have any plants registered. Use /register <name> first.")
		return
	}

	t.sessions[message.Chat.ID] = &session{state: awaitingMeasurePlant}
	t.replyWithPlantKeyboard(message.Chat.ID,
		"🌱 Select the plant to measure:\n\nTap a name, or use /cancel to stop.", plants)
}

// startDeleteMeasure begins the delete-measurement conversation
func (t *TelegramBot) startDeleteMeasure(message *tgbotapi.Message) {
	plants := t.plants.List(message.From.ID)
	if len(plants) == 0 {
		t.reply(message.Chat.ID, "❌ You don't have any plants registered. Use /register <name> first.")
		return
	}

	t.sessions[message.Chat.ID] = &session{state: awaitingDeleteMeasurePlant}
	t.replyWithPlantKeyboard(message.Chat.ID,
		"🌿 Select the plant to delete a measurement from:\n\nTap a name, or use /cancel to stop.", plants)
}

// handleConversationReply advances the active conversation one step.
// Invalid input re-prompts at the same step instead of aborting.
func (t *TelegramBot) handleConversationReply(message *tgbotapi.Message) {
	s := t.sessions[message.Chat.ID]
	text := strings.TrimSpace(message.Text)

	if text == cancelButton {
		delete(t.sessions, message.Chat.ID)
		t.replyRemoveKeyboard(message.Chat.ID, "❌ Action cancelled.")
		return
	}

	switch s.state {
	case awaitingMeasurePlant:
		t.measureSelectPlant(message, s, text)
	case awaitingMeasureValue:
		t.measureSaveValue(message, s, text)
	case awaitingDeleteMeasurePlant:
		t.deleteMeasureSelectPlant(message, s, text)
	case awaitingDeleteMeasureIndex:
		t.deleteMeasureConfirm(message, s, text)
	}
}

func (t *TelegramBot) measureSelectPlant(message *tgbotapi.Message, s *session, text string) {
	plant, err := t.plants.SelectPlant(message.From.ID, text)
	if err != nil {
		t.reply(message.Chat.ID, "❌ Invalid selection. Pick a plant from the keyboard, or use /cancel to stop.")
		return
	}

	s.plant = plant
	s.state = awaitingMeasureValue

	measurements := t.plants.Measurements(message.From.ID, plant)
	if len(measurements) > 0 {
		latest := measurements[len(measurements)-1]
		t.replyRemoveKeyboard(message.Chat.ID, fmt.Sprintf(
			"📏 Selected plant: %s\n\n📊 Last measurement: %.1f cm (%s)\n\nEnter the new measurement in centimeters (example: 25.5):",
			plant, latest.Height, latest.Date))
		return
	}
	t.replyRemoveKeyboard(message.Chat.ID, fmt.Sprintf(
		"📏 Selected plant: %s\n\nThis will be its first measurement.\nEnter the measurement in centimeters (example: 25.5):",
		plant))
}

func (t *TelegramBot) measureSaveValue(message *tgbotapi.Message, s *session, text string) {
	result, err := t.plants.RecordMeasurement(message.From.ID, s.plant, text, time.Now())
	if err != nil {
		var reply strings.Builder
		reply.WriteString("❌ ")
		reply.WriteString(err.Error())
		reply.WriteString("\n\nEnter a valid measurement, or use /cancel to stop.")
		t.reply(message.Chat.ID, reply.String())
		return
	}

	delete(t.sessions, message.Chat.ID)

	var reply strings.Builder
	reply.WriteString("✅ Measurement recorded\n\n")
	reply.WriteString(fmt.Sprintf("🌱 Plant: %s\n", result.Plant))
	reply.WriteString(fmt.Sprintf("📏 Height: %.1f cm\n", result.Height))
	reply.WriteString(fmt.Sprintf("📅 Date: %s\n", result.Date))
	if result.HasPrevious {
		switch {
		case result.Delta > 0:
			reply.WriteString(fmt.Sprintf("\n📈 It grew %.1f cm since the last measurement!\n", result.Delta))
		case result.Delta < 0:
			reply.WriteString(fmt.Sprintf("\n📉 It shrank %.1f cm since the last measurement.\n", -result.Delta))
		default:
			reply.WriteString("\n📊 Same height as the last measurement.\n")
		}
	}
	reply.WriteString(fmt.Sprintf("\n📊 Total measurements: %d", result.Total))
	t.reply(message.Chat.ID, reply.String())
}

func (t *TelegramBot) deleteMeasureSelectPlant(message *tgbotapi.Message, s *session, text string) {
	plant, err := t.plants.SelectPlant(message.From.ID, text)
	if err != nil {
		t.reply(message.Chat.ID, "❌ Invalid selection. Pick a plant from the keyboard, or use /cancel to stop.")
		return
	}

	measurements := t.plants.Measurements(message.From.ID, plant)
	if len(measurements) == 0 {
		delete(t.sessions, message.Chat.ID)
		t.replyRemoveKeyboard(message.Chat.ID, fmt.Sprintf("📏 The plant '%s' has no measurements recorded.", plant))
		return
	}

	s.plant = plant
	s.state = awaitingDeleteMeasureIndex

	var reply strings.Builder
	reply.WriteString(fmt.Sprintf("Measurements recorded for '%s':\n", plant))
	for i, m := range measurements {
		reply.WriteString(fmt.Sprintf("%d. %.1f cm (%s)\n", i+1, m.Height, m.Date))
	}
	reply.WriteString("\nType the number of the measurement to delete.")
	t.replyRemoveKeyboard(message.Chat.ID, reply.String())
}

func (t *TelegramBot) deleteMeasureConfirm(message *tgbotapi.Message, s *session, text string) {
	removed, err := t.plants.DeleteMeasurement(message.From.ID, s.plant, text)
	if err != nil {
		t.reply(message.Chat.ID, "❗ "+err.Error()+"\nType a number from the list, or use /cancel to stop.")
		return
	}

	delete(t.sessions, message.Chat.ID)
	t.reply(message.Chat.ID, fmt.Sprintf(
		"✅ Measurement '%.1f cm (%s)' deleted from '%s'.", removed.Height, removed.Date, s.plant))
}
