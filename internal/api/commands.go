package api

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dmejia/plant-bot/internal/entities"
	"github.com/dmejia/plant-bot/internal/usecases"
)

var helpSections = []string{
	"🍃 Your plants 🍃\n" +
		"  /plants - List your registered plants\n" +
		"  /register <name> - Register a new plant\n" +
		"  /delete <name> - Delete a plant and its records\n",
	"🌱 Plant growth 🌱\n" +
		"  /measure - Record a measurement for a plant\n" +
		"  /height - Show the latest measurement of each plant\n" +
		"  /deletemeasure - Delete a recorded measurement\n",
	"💧 Plant watering 💧\n" +
		"  /water <name> [days] - Set the watering frequency and mark the plant watered today\n" +
		"  /watering <name> - Check a plant's watering status and next dates\n" +
		"  /setwatered <name> <YYYY-MM-DD> - Change the last watering date\n" +
		"  /setfrequency <name> <days> - Change the watering frequency\n",
	"🕒 Community-service hours 🕒\n" +
		"  /loghours <hours> - Register hours for today\n" +
		"  /loghoursfor <hours> <YYYY-MM-DD> - Register hours for another date\n" +
		"  /hours - Show your hours summary\n" +
		"  /deletehours <hours> <YYYY-MM-DD> - Remove hours from a date\n",
	"🔧 Other commands 🔧\n" +
		"  /cancel - Cancel the current action\n" +
		"  /start - Show the general overview\n" +
		"  /help [section] - Show this help message\n" +
		"  /deletemydata - Delete all your data from the bot\n",
}

func (t *TelegramBot) handleStart(message *tgbotapi.Message) {
	t.reply(message.Chat.ID,
		"🌿 Welcome to the Plant Care Bot! 🌱\n\n"+
			"What you can do here:\n"+
			"1️⃣ Track your plants\n"+
			"2️⃣ Record their growth\n"+
			"3️⃣ Keep a watering schedule and get reminders\n"+
			"4️⃣ Tally your community-service hours\n"+
			"5️⃣ Other commands\n\n"+
			"Use /help to see every command, or /help <number> for one section.")
}

func (t *TelegramBot) handleHelp(message *tgbotapi.Message) {
	args := commandArgs(message)
	if len(args) > 0 {
		section := 0
		if _, err := fmt.Sscanf(args[0], "%d", &section); err != nil || section < 1 || section > len(helpSections) {
			t.reply(message.Chat.ID, fmt.Sprintf("Section not found. Use /help or a section number from 1 to %d.", len(helpSections)))
			return
		}
		t.reply(message.Chat.ID, helpSections[section-1])
		return
	}

	var text strings.Builder
	text.WriteString("ℹ️ Help\n\n")
	for _, section := range helpSections {
		text.WriteString(section)
		text.WriteString("\n")
	}
	t.reply(message.Chat.ID, text.String())
}

func (t *TelegramBot) handleRegister(message *tgbotapi.Message) {
	raw := message.CommandArguments()
	if strings.TrimSpace(raw) == "" {
		t.reply(message.Chat.ID, "❗ Usage: /register <plant_name>")
		return
	}

	name, err := t.plants.Register(message.From.ID, raw)
	if err != nil {
		t.replyError(message.Chat.ID, err)
		return
	}
	t.reply(message.Chat.ID, fmt.Sprintf("✅ Plant '%s' registered.", name))
}

func (t *TelegramBot) handlePlants(message *tgbotapi.Message) {
	plants := t.plants.List(message.From.ID)
	if len(plants) == 0 {
		t.reply(message.Chat.ID, "🌱 You don't have any plants registered yet.")
		return
	}

	var text strings.Builder
	text.WriteString("🌿 Your registered plants:\n")
	for i, plant := range plants {
		text.WriteString(fmt.Sprintf("%d. %s\n", i+1, plant))
	}
	text.WriteString(fmt.Sprintf("\nTotal: %d plant(s) registered.", len(plants)))
	t.reply(message.Chat.ID, text.String())
}

func (t *TelegramBot) handleDelete(message *tgbotapi.Message) {
	raw := message.CommandArguments()
	if strings.TrimSpace(raw) == "" {
		t.reply(message.Chat.ID, "❗ Usage: /delete <plant_name>")
		return
	}

	name, removed, err := t.plants.Delete(message.From.ID, raw)
	if err != nil {
		t.replyError(message.Chat.ID, err)
		return
	}
	t.reply(message.Chat.ID, fmt.Sprintf(
		"🗑️ Removed %d plant(s) named '%s', along with their measurements and watering schedule.",
		removed, name))
}

func (t *TelegramBot) handleHeight(message *tgbotapi.Message) {
	heights, err := t.plants.LatestHeights(message.From.ID)
	if err != nil {
		t.replyError(message.Chat.ID, err)
		return
	}

	var text strings.Builder
	text.WriteString("🌿 Latest heights:\n")
	for _, entry := range heights {
		if entry.HasMeasurement {
			text.WriteString(fmt.Sprintf("• %s: %.1f cm (%s)\n", entry.Plant, entry.Height, entry.Date))
		} else {
			text.WriteString(fmt.Sprintf("• %s: no measurements yet\n", entry.Plant))
		}
	}
	t.reply(message.Chat.ID, text.String())
}

// handleWater configures watering. With a single argument the default
// frequency applies; otherwise the last token is the frequency and the
// rest is the plant name.
func (t *TelegramBot) handleWater(message *tgbotapi.Message) {
	args := commandArgs(message)
	if len(args) == 0 {
		t.reply(message.Chat.ID, "❗ Usage: /water <plant_name> [frequency_days]")
		return
	}

	name := args[0]
	frequency := ""
	if len(args) > 1 {
		name = strings.Join(args[:len(args)-1], " ")
		frequency = args[len(args)-1]
	}

	result, err := t.watering.Configure(message.From.ID, name, frequency, time.Now())
	if err != nil {
		t.replyError(message.Chat.ID, err)
		return
	}

	text := fmt.Sprintf("💧 Watering for '%s' set: every %d day(s).", result.Plant, result.FrequencyDays)
	if result.Reconfigured {
		text = fmt.Sprintf("💧 Watering for '%s' updated: every %d day(s) (was every %d).",
			result.Plant, result.FrequencyDays, result.PreviousFrequency)
	}
	t.reply(message.Chat.ID, text+"\nMarked as watered today.")
}

func (t *TelegramBot) handleWatering(message *tgbotapi.Message) {
	raw := message.CommandArguments()
	if strings.TrimSpace(raw) == "" {
		t.reply(message.Chat.ID, "❗ Usage: /watering <plant_name>")
		return
	}

	result, err := t.watering.Consult(message.From.ID, raw, time.Now())
	if err != nil {
		t.replyError(message.Chat.ID, err)
		return
	}
	t.reply(message.Chat.ID, formatConsult(result))
}

func (t *TelegramBot) handleSetWatered(message *tgbotapi.Message) {
	args := commandArgs(message)
	if len(args) < 2 {
		t.reply(message.Chat.ID, "❗ Usage: /setwatered <plant_name> <YYYY-MM-DD>")
		return
	}

	name := strings.Join(args[:len(args)-1], " ")
	plant, date, err := t.watering.ChangeLastWatered(message.From.ID, name, args[len(args)-1], time.Now())
	if err != nil {
		t.replyError(message.Chat.ID, err)
		return
	}
	t.reply(message.Chat.ID, fmt.Sprintf("✅ Last watering of '%s' updated to %s.", plant, date))
}

func (t *TelegramBot) handleSetFrequency(message *tgbotapi.Message) {
	args := commandArgs(message)
	if len(args) < 2 {
		t.reply(message.Chat.ID, "❗ Usage: /setfrequency <plant_name> <frequency_days>")
		return
	}

	name := strings.Join(args[:len(args)-1], " ")
	plant, frequency, err := t.watering.ChangeFrequency(message.From.ID, name, args[len(args)-1])
	if err != nil {
		t.replyError(message.Chat.ID, err)
		return
	}
	t.reply(message.Chat.ID, fmt.Sprintf("✅ Watering frequency of '%s' updated to every %d day(s).", plant, frequency))
}

func (t *TelegramBot) handleLogHours(message *tgbotapi.Message, withDate bool) {
	args := commandArgs(message)
	date := ""
	switch {
	case withDate && len(args) < 2:
		t.reply(message.Chat.ID, "❗ Usage: /loghoursfor <hours> <YYYY-MM-DD>")
		return
	case !withDate && len(args) < 1:
		t.reply(message.Chat.ID, "❗ Usage: /loghours <hours>")
		return
	}
	if withDate {
		date = args[1]
	}

	result, err := t.hours.Log(message.From.ID, args[0], date, time.Now())
	if err != nil {
		t.replyError(message.Chat.ID, err)
		return
	}

	if result.Summary.Completed {
		t.reply(message.Chat.ID, "🎉 You have completed the community service!\n\n"+formatHoursSummary(result.Summary))
		return
	}
	t.reply(message.Chat.ID, fmt.Sprintf(
		"✅ Registered %s hours for %s.\nYou need %s more hours to complete the community service.",
		formatHours(result.Hours), result.Date, formatHours(result.Summary.Remaining)))
}

func (t *TelegramBot) handleHoursSummary(message *tgbotapi.Message) {
	summary, err := t.hours.Summary(message.From.ID)
	if err != nil {
		t.replyError(message.Chat.ID, err)
		return
	}
	t.reply(message.Chat.ID, formatHoursSummary(summary))
}

func (t *TelegramBot) handleDeleteHours(message *tgbotapi.Message) {
	args := commandArgs(message)
	if len(args) < 2 {
		t.reply(message.Chat.ID, "❗ Usage: /deletehours <hours> <YYYY-MM-DD>")
		return
	}

	summary, err := t.hours.Delete(message.From.ID, args[0], args[1], time.Now())
	if err != nil {
		t.replyError(message.Chat.ID, err)
		return
	}
	if len(summary.Entries) == 0 {
		t.reply(message.Chat.ID, "✅ Hours removed. You have no hours registered now.")
		return
	}
	t.reply(message.Chat.ID, formatHoursSummary(summary))
}

func (t *TelegramBot) handleCancel(message *tgbotapi.Message) {
	if t.sessions[message.Chat.ID] == nil {
		t.reply(message.Chat.ID, "There is no active action to cancel.")
		return
	}
	delete(t.sessions, message.Chat.ID)
	t.replyRemoveKeyboard(message.Chat.ID, "❌ Action cancelled.")
}

func (t *TelegramBot) handleDeleteMyData(message *tgbotapi.Message) {
	t.plants.DeleteAllUserData(message.From.ID)
	delete(t.sessions, message.Chat.ID)
	t.reply(message.Chat.ID, "🗑️ All your data has been removed from the bot.")
}

func formatConsult(result usecases.ConsultResult) string {
	var text strings.Builder
	text.WriteString(fmt.Sprintf("💧 Watering schedule for '%s':\n", result.Plant))
	text.WriteString(fmt.Sprintf("Every %d day(s), last watered %s.\n\n", result.FrequencyDays, result.LastWatered))

	switch result.Status.State {
	case entities.WateringDue:
		text.WriteString("💦 Watering is due today!\n")
	case entities.WateringOverdue:
		text.WriteString(fmt.Sprintf("⏰ Watering is overdue by %d day(s)!\n", -result.Status.DaysUntilNext))
	default:
		text.WriteString(fmt.Sprintf("✅ Next watering in %d day(s).\n", result.Status.DaysUntilNext))
	}

	text.WriteString("\nUpcoming watering dates:\n")
	for _, date := range result.NextDates {
		text.WriteString("• " + date + "\n")
	}
	return text.String()
}

func formatHoursSummary(summary usecases.HoursSummary) string {
	var text strings.Builder
	text.WriteString("🕒 Hours served:\n")
	for _, entry := range summary.Entries {
		text.WriteString(fmt.Sprintf("%s: %s hours\n", entry.Date, formatHours(entry.Hours)))
	}
	text.WriteString(fmt.Sprintf("\nTotal: %s hours\n", formatHours(summary.Total)))
	if summary.Completed {
		text.WriteString("🎉 You have completed the community service!")
	} else {
		text.WriteString(fmt.Sprintf("You need %s more hours to complete the community service.", formatHours(summary.Remaining)))
	}
	return text.String()
}

// formatHours renders hour amounts without trailing zeros (2.5, not 2.50)
func formatHours(hours float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", hours), "0"), ".")
}
