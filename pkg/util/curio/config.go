package curio

import (
	"fmt"
	"os"
)

// CurioConfig contains all configurable parameters that influence which
// curiosities get emitted. This centralizes all magic numbers and thresholds
// for easy adjustment.
type CurioConfig struct {
	// Database and cache parameters
	AssetsPath string // The base directory of assets relating to the league site
	CachePath  string // The location in which cached downloaded data is stored
	DbPath     string // The location of the sqlite database

	// === RUN SCOPE DEFAULTS ===

	Season        string // season evaluated when no explicit scope is given (default "2025-26")
	CompetitionID int    // competition evaluated when > 0; takes precedence over Season

	// === MINIMUM-SAMPLE GUARDS ===

	// Ratio metrics only consider a candidate once its sample clears these,
	// which keeps one lucky afternoon from topping a season leaderboard.
	MinMatchesSample int // matches played for per-match ratios (default: 0, strict greater-than)
	MinGoalsSample   int // goals scored for points-per-goal (default: 5)
	MinPassesSample  int // passes attempted for completion percentage (default: 100)

	// === STREAK PARAMETERS ===

	MinStreakLength int // shortest streak worth publishing (default: 3)

	// === FAIR PLAY SCORE ===

	RedCardFoulWeight int // fouls a red card counts as in the fair-play score (default: 3)
}

// DefaultCurioConfig returns the default configuration with all standard values.
// The SEASON environment variable overrides the default season here, and only
// here; the Runner always receives an explicit scope.
func DefaultCurioConfig() *CurioConfig {
	assetsPath := "/var/lib/lliga/"
	season := "2025-26"
	if env := os.Getenv("SEASON"); env != "" {
		season = env
	}

	return &CurioConfig{
		AssetsPath: assetsPath,
		CachePath:  assetsPath + "cache/",
		DbPath:     assetsPath + "lliga.db",

		Season:        season,
		CompetitionID: 0,

		MinMatchesSample: 0,
		MinGoalsSample:   5,
		MinPassesSample:  100,

		MinStreakLength: 3,

		RedCardFoulWeight: 3,
	}
}

// Global configuration instance
var Config *CurioConfig

// init initializes the global configuration with default values
func init() {
	Config = DefaultCurioConfig()
}

// UpdateConfig allows updating the global configuration
func UpdateConfig(newConfig *CurioConfig) {
	Config = newConfig
}

// === CONFIGURATION VALIDATION ===

// ValidateConfig ensures all configuration values are within reasonable ranges
func ValidateConfig(config *CurioConfig) error {
	if config.Season == "" {
		return fmt.Errorf("Season must not be empty")
	}
	if _, err := ParseSeason(config.Season); err != nil {
		return fmt.Errorf("Season is not a valid season string: %w", err)
	}

	if config.MinStreakLength < 1 {
		return fmt.Errorf("MinStreakLength must be at least 1, got: %d", config.MinStreakLength)
	}

	if config.MinGoalsSample < 0 || config.MinPassesSample < 0 || config.MinMatchesSample < 0 {
		return fmt.Errorf("minimum-sample guards must not be negative")
	}

	if config.RedCardFoulWeight < 1 {
		return fmt.Errorf("RedCardFoulWeight must be at least 1, got: %d", config.RedCardFoulWeight)
	}

	return nil
}

// === HELPER FUNCTIONS FOR EASY ACCESS ===

// GetCurrentSeason returns the season evaluated by default
func GetCurrentSeason() string {
	return Config.Season
}

// SetCurrentSeason updates the default season
func SetCurrentSeason(season string) {
	Config.Season = season
}

// GetMinStreakLength returns the shortest streak worth publishing
func GetMinStreakLength() int {
	return Config.MinStreakLength
}

// GetRedCardFoulWeight returns the fair-play weight of a red card
func GetRedCardFoulWeight() int {
	return Config.RedCardFoulWeight
}
