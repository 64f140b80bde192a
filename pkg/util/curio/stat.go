package curio

import (
	"fmt"
	"time"
)

var _ Persistable = (*TeamMatchStat)(nil)

// TeamMatchStat holds one team's numbers for one match. At most one row per
// team per match; the compound primary key enforces that.
type TeamMatchStat struct {
	// Compound primary key fields
	MatchID int `json:"matchId" column:"match_id" dbtype:"INTEGER NOT NULL" primary:"true" index:"true"`
	TeamID  int `json:"teamId" column:"team_id" dbtype:"INTEGER NOT NULL" primary:"true" index:"true"`

	// Statistical fields
	Fouls           int `json:"fouls" column:"fouls" dbtype:"INTEGER DEFAULT 0"`
	RedCards        int `json:"redCards" column:"red_cards" dbtype:"INTEGER DEFAULT 0"`
	Interceptions   int `json:"interceptions" column:"interceptions" dbtype:"INTEGER DEFAULT 0"`
	Tackles         int `json:"tackles" column:"tackles" dbtype:"INTEGER DEFAULT 0"`
	Passes          int `json:"passes" column:"passes" dbtype:"INTEGER DEFAULT 0"`
	PassesCompleted int `json:"passesCompleted" column:"passes_completed" dbtype:"INTEGER DEFAULT 0"`

	// Metadata
	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" column:"updated_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

/////////////////////////////////////////////////////////////////////////
////// Persistable Interface Implementation
/////////////////////////////////////////////////////////////////////////

// GetPrimaryKey returns the compound primary key as a map
func (ts *TeamMatchStat) GetPrimaryKey() map[string]interface{} {
	return map[string]any{
		"match_id": ts.MatchID,
		"team_id":  ts.TeamID,
	}
}

// SetPrimaryKey sets the compound primary key from a map
func (ts *TeamMatchStat) SetPrimaryKey(pk map[string]interface{}) error {
	matchID, err := pkInt(pk, "match_id")
	if err != nil {
		return err
	}
	teamID, err := pkInt(pk, "team_id")
	if err != nil {
		return err
	}
	ts.MatchID = matchID
	ts.TeamID = teamID
	return nil
}

// pkInt pulls an integer value out of a primary key map
func pkInt(pk map[string]interface{}, key string) (int, error) {
	v, ok := pk[key]
	if !ok {
		return 0, fmt.Errorf("primary key '%s' not found", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("primary key '%s' must be an integer", key)
	}
}

// GetTableName returns the table name for team match stats
func (ts *TeamMatchStat) GetTableName() string {
	return "team_match_stats"
}

// BeforeSave is called before saving the stat row
func (ts *TeamMatchStat) BeforeSave() error {
	now := time.Now()
	if ts.CreatedAt.IsZero() {
		ts.CreatedAt = now
	}
	ts.UpdatedAt = now
	return nil
}

// AfterSave is called after saving the stat row
func (ts *TeamMatchStat) AfterSave() error {
	return nil
}

// DefensiveActions returns interceptions plus tackles
func (ts *TeamMatchStat) DefensiveActions() int {
	return ts.Interceptions + ts.Tackles
}
