package curio

import (
	"testing"
)

func TestDefaultCurioConfig(t *testing.T) {
	config := DefaultCurioConfig()

	if config.Season != "2025-26" {
		t.Errorf("expected default season 2025-26, got %q", config.Season)
	}
	if config.MinStreakLength != 3 {
		t.Errorf("expected MinStreakLength 3, got %d", config.MinStreakLength)
	}
	if config.MinGoalsSample != 5 {
		t.Errorf("expected MinGoalsSample 5, got %d", config.MinGoalsSample)
	}
	if config.MinPassesSample != 100 {
		t.Errorf("expected MinPassesSample 100, got %d", config.MinPassesSample)
	}
	if config.RedCardFoulWeight != 3 {
		t.Errorf("expected RedCardFoulWeight 3, got %d", config.RedCardFoulWeight)
	}

	if err := ValidateConfig(config); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	bad := []*CurioConfig{
		func() *CurioConfig { c := DefaultCurioConfig(); c.Season = ""; return c }(),
		func() *CurioConfig { c := DefaultCurioConfig(); c.Season = "not a season"; return c }(),
		func() *CurioConfig { c := DefaultCurioConfig(); c.MinStreakLength = 0; return c }(),
		func() *CurioConfig { c := DefaultCurioConfig(); c.MinGoalsSample = -1; return c }(),
		func() *CurioConfig { c := DefaultCurioConfig(); c.RedCardFoulWeight = 0; return c }(),
	}

	for i, config := range bad {
		if err := ValidateConfig(config); err == nil {
			t.Errorf("config %d should have failed validation", i)
		}
	}
}

func TestUpdateConfigAndSeasonAccessors(t *testing.T) {
	original := Config
	defer UpdateConfig(original)

	custom := DefaultCurioConfig()
	custom.MinStreakLength = 5
	UpdateConfig(custom)

	if GetMinStreakLength() != 5 {
		t.Errorf("expected MinStreakLength 5 after update, got %d", GetMinStreakLength())
	}

	SetCurrentSeason("2024-25")
	if GetCurrentSeason() != "2024-25" {
		t.Errorf("expected season 2024-25, got %q", GetCurrentSeason())
	}
	// the season write lands on the swapped-in instance
	if custom.Season != "2024-25" {
		t.Errorf("expected the active config to carry the season, got %q", custom.Season)
	}
}
