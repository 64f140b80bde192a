package curio

import (
	"fmt"
	"time"
)

var _ Persistable = (*GoalEvent)(nil)
var _ Persistable = (*RedCardEvent)(nil)

// Goal event types
const (
	GoalNormal = "normal"
	GoalOwn    = "own_goal"
)

// GoalEvent records a single goal. For an own goal, TeamID identifies the
// team whose player put it in his own net; the benefit goes to the opponent.
type GoalEvent struct {
	ID        int       `json:"id" column:"id" dbtype:"INTEGER" primary:"true" index:"true"`
	MatchID   int       `json:"matchId" column:"match_id" dbtype:"INTEGER NOT NULL" index:"true"`
	TeamID    int       `json:"teamId" column:"team_id" dbtype:"INTEGER NOT NULL" index:"true"`
	PlayerID  int       `json:"playerId" column:"player_id" dbtype:"INTEGER NOT NULL" index:"true"`
	EventType string    `json:"eventType" column:"event_type" dbtype:"TEXT NOT NULL DEFAULT 'normal'"`
	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

// GetPrimaryKey returns the primary key as a map
func (g *GoalEvent) GetPrimaryKey() map[string]interface{} {
	return map[string]any{"id": g.ID}
}

// SetPrimaryKey sets the primary key from a map
func (g *GoalEvent) SetPrimaryKey(pk map[string]interface{}) error {
	id, err := pkInt(pk, "id")
	if err != nil {
		return err
	}
	g.ID = id
	return nil
}

// GetTableName returns the table name for goal events
func (g *GoalEvent) GetTableName() string {
	return "goal_events"
}

// BeforeSave is called before saving the goal event
func (g *GoalEvent) BeforeSave() error {
	if g.EventType == "" {
		g.EventType = GoalNormal
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	return nil
}

// AfterSave is called after saving the goal event
func (g *GoalEvent) AfterSave() error {
	return nil
}

// IsOwnGoal reports whether this goal was scored against the player's own team
func (g *GoalEvent) IsOwnGoal() bool {
	return g.EventType == GoalOwn
}

// BeneficiaryTeamID resolves which team the goal counted for. A normal goal
// counts for the scoring team; an own goal counts for the opponent in that
// match. Returns an error when the event's team is not in the match at all.
func (g *GoalEvent) BeneficiaryTeamID(match *Match) (int, error) {
	if match == nil || !match.Involves(g.TeamID) {
		return 0, fmt.Errorf("goal event %d does not belong to match", g.ID)
	}
	if g.IsOwnGoal() {
		return match.OpponentOf(g.TeamID), nil
	}
	return g.TeamID, nil
}

// RedCardEvent records a dismissal
type RedCardEvent struct {
	ID        int       `json:"id" column:"id" dbtype:"INTEGER" primary:"true" index:"true"`
	MatchID   int       `json:"matchId" column:"match_id" dbtype:"INTEGER NOT NULL" index:"true"`
	PlayerID  int       `json:"playerId" column:"player_id" dbtype:"INTEGER NOT NULL" index:"true"`
	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

// GetPrimaryKey returns the primary key as a map
func (r *RedCardEvent) GetPrimaryKey() map[string]interface{} {
	return map[string]any{"id": r.ID}
}

// SetPrimaryKey sets the primary key from a map
func (r *RedCardEvent) SetPrimaryKey(pk map[string]interface{}) error {
	id, err := pkInt(pk, "id")
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}

// GetTableName returns the table name for red card events
func (r *RedCardEvent) GetTableName() string {
	return "red_card_events"
}

// BeforeSave is called before saving the red card event
func (r *RedCardEvent) BeforeSave() error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return nil
}

// AfterSave is called after saving the red card event
func (r *RedCardEvent) AfterSave() error {
	return nil
}
