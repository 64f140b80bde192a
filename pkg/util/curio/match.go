package curio

import (
	"fmt"
	"sort"
	"time"
)

// Compile-time check to ensure Match implements Persistable interface
var _ Persistable = (*Match)(nil)

// Match represents one fixture. Goals stay at the -1 sentinel until the match
// has been played; an unplayed match is invisible to every metric.
type Match struct {
	// Primary key
	ID int `json:"id" column:"id" dbtype:"INTEGER" primary:"true" index:"true"`

	// Scope
	Season        string `json:"season" column:"season" dbtype:"TEXT NOT NULL" index:"true"`
	CompetitionID int    `json:"competitionId" column:"competition_id" dbtype:"INTEGER DEFAULT -1" index:"true"`

	// Teams
	HomeID       int    `json:"homeId" column:"home_id" dbtype:"INTEGER NOT NULL" index:"true"`
	AwayID       int    `json:"awayId" column:"away_id" dbtype:"INTEGER NOT NULL" index:"true"`
	HomeTeamName string `json:"homeTeamName" column:"home_team_name" dbtype:"TEXT"`
	AwayTeamName string `json:"awayTeamName" column:"away_team_name" dbtype:"TEXT"`

	// Result
	HomeGoals int `json:"homeGoals" column:"home_goals" dbtype:"INTEGER DEFAULT -1"`
	AwayGoals int `json:"awayGoals" column:"away_goals" dbtype:"INTEGER DEFAULT -1"`

	MatchDate time.Time `json:"matchDate" column:"match_date" dbtype:"DATETIME" index:"true"`

	// Metadata
	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" column:"updated_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

// NewMatch creates a new Match with sentinel values for numeric fields
// Goals default to -1 to distinguish "not played" from a genuine 0-0
func NewMatch() *Match {
	return &Match{
		CompetitionID: -1,
		HomeGoals:     -1,
		AwayGoals:     -1,
	}
}

/////////////////////////////////////////////////////////////////////////
////// Persistable Interface Implementation
/////////////////////////////////////////////////////////////////////////

// GetPrimaryKey returns the primary key as a map
func (m *Match) GetPrimaryKey() map[string]interface{} {
	return map[string]any{
		"id": m.ID,
	}
}

// SetPrimaryKey sets the primary key from a map
func (m *Match) SetPrimaryKey(pk map[string]interface{}) error {
	if id, ok := pk["id"]; ok {
		if idInt, ok := id.(int); ok {
			m.ID = idInt
			return nil
		}
		if idInt64, ok := id.(int64); ok {
			m.ID = int(idInt64)
			return nil
		}
		return fmt.Errorf("primary key 'id' must be an integer")
	}
	return fmt.Errorf("primary key 'id' not found")
}

// GetTableName returns the table name for matches
func (m *Match) GetTableName() string {
	return "matches"
}

// BeforeSave is called before saving the match
func (m *Match) BeforeSave() error {
	if m.ID <= 0 {
		return fmt.Errorf("match id must be positive, got: %d", m.ID)
	}
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	return nil
}

// AfterSave is called after saving the match
func (m *Match) AfterSave() error {
	return nil
}

/////////////////////////////////////////////////////////////////////////
////// Status Query Methods
/////////////////////////////////////////////////////////////////////////

// HasBeenPlayed determines if the match has a result
func (m *Match) HasBeenPlayed() bool {
	return m.HomeGoals >= 0 && m.AwayGoals >= 0
}

// TotalGoals returns the combined score of a played match
func (m *Match) TotalGoals() int {
	if !m.HasBeenPlayed() {
		return 0
	}
	return m.HomeGoals + m.AwayGoals
}

// Involves returns true if the given team took part in this match
func (m *Match) Involves(teamID int) bool {
	return m.HomeID == teamID || m.AwayID == teamID
}

// GoalsFor returns the goals scored by teamID in this match
func (m *Match) GoalsFor(teamID int) int {
	if m.HomeID == teamID {
		return m.HomeGoals
	}
	return m.AwayGoals
}

// GoalsAgainst returns the goals conceded by teamID in this match
func (m *Match) GoalsAgainst(teamID int) int {
	if m.HomeID == teamID {
		return m.AwayGoals
	}
	return m.HomeGoals
}

// OpponentOf returns the id of the other team in this match
func (m *Match) OpponentOf(teamID int) int {
	if m.HomeID == teamID {
		return m.AwayID
	}
	return m.HomeID
}

// Label renders "Local 3 - 1 Visitante" for finding descriptions
func (m *Match) Label() string {
	home := m.HomeTeamName
	if home == "" {
		home = "Local"
	}
	away := m.AwayTeamName
	if away == "" {
		away = "Visitante"
	}
	if !m.HasBeenPlayed() {
		return fmt.Sprintf("%s - %s", home, away)
	}
	return fmt.Sprintf("%s %d - %d %s", home, m.HomeGoals, m.AwayGoals, away)
}

/////////////////////////////////////////////////////////////////////////
////// Match Collection Operations
/////////////////////////////////////////////////////////////////////////

// SortMatchesByDate orders matches oldest first. Streak evaluators depend on
// this ordering; ties on the same kick-off time fall back to the match id.
func SortMatchesByDate(matches []*Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].MatchDate.Equal(matches[j].MatchDate) {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].MatchDate.Before(matches[j].MatchDate)
	})
}

// MatchByID finds a match in a slice, nil when absent
func MatchByID(matches []*Match, id int) *Match {
	for _, m := range matches {
		if m.ID == id {
			return m
		}
	}
	return nil
}
