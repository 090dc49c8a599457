package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token-123")
	t.Setenv("SERVICE_HOURS_GOAL", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg := Load()
	if cfg.BotToken != "token-123" {
		t.Errorf("BotToken = %q, want token-123", cfg.BotToken)
	}
	if cfg.ServiceHoursGoal != 120 {
		t.Errorf("ServiceHoursGoal = %v, want default 120", cfg.ServiceHoursGoal)
	}
	if cfg.DataDir != "data" {
		t.Errorf("DataDir = %q, want default data", cfg.DataDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed with a token set: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token-123")
	t.Setenv("SERVICE_HOURS_GOAL", "200")
	t.Setenv("DATA_DIR", "/tmp/plant-data")

	cfg := Load()
	if cfg.ServiceHoursGoal != 200 {
		t.Errorf("ServiceHoursGoal = %v, want 200", cfg.ServiceHoursGoal)
	}
	if cfg.DataDir != "/tmp/plant-data" {
		t.Errorf("DataDir = %q, want /tmp/plant-data", cfg.DataDir)
	}
}

func TestLoadIgnoresBadGoal(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token-123")
	t.Setenv("SERVICE_HOURS_GOAL", "-5")

	if cfg := Load(); cfg.ServiceHoursGoal != 120 {
		t.Errorf("ServiceHoursGoal = %v, want the default when the override is invalid", cfg.ServiceHoursGoal)
	}
}

func TestValidateRequiresToken(t *testing.T) {
	var cfg Config
	if err := cfg.Validate(); err == nil {
		t.Error("Validate accepted an empty bot token")
	}
}
