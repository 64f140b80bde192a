package curio

import (
	"fmt"
	"time"
)

var _ Persistable = (*Team)(nil)

// Team represents a club in the league. Name is the nickname shown on the
// site and is what image keys derive from.
type Team struct {
	ID        int       `json:"id" column:"id" dbtype:"INTEGER" primary:"true" index:"true"`
	Name      string    `json:"name" column:"name" dbtype:"TEXT NOT NULL" index:"true"`
	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" column:"updated_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

/////////////////////////////////////////////////////////////////////////
////// Persistable Interface Implementation
/////////////////////////////////////////////////////////////////////////

// GetPrimaryKey returns the primary key as a map
func (t *Team) GetPrimaryKey() map[string]interface{} {
	return map[string]interface{}{
		"id": t.ID,
	}
}

// SetPrimaryKey sets the primary key from a map
func (t *Team) SetPrimaryKey(pk map[string]interface{}) error {
	if id, ok := pk["id"]; ok {
		if idInt, ok := id.(int); ok {
			t.ID = idInt
			return nil
		}
		if idInt64, ok := id.(int64); ok {
			t.ID = int(idInt64)
			return nil
		}
		return fmt.Errorf("primary key 'id' must be an integer")
	}
	return fmt.Errorf("primary key 'id' not found")
}

// GetTableName returns the table name for teams
func (t *Team) GetTableName() string {
	return "teams"
}

// BeforeSave is called before saving the team
func (t *Team) BeforeSave() error {
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	return nil
}

// AfterSave is called after saving the team
func (t *Team) AfterSave() error {
	return nil
}

/////////////////////////////////////////////////////////////////////////
////// Team Collection Operations
/////////////////////////////////////////////////////////////////////////

// SaveTeams saves teams to database using BulkSave, skipping existing ids
func SaveTeams(teams []*Team) error {
	var newTeams []Persistable
	for _, team := range teams {
		exists, err := Exists(team)
		if err != nil {
			return fmt.Errorf("failed to check if team exists: %w", err)
		}
		if !exists {
			newTeams = append(newTeams, team)
		}
	}

	if len(newTeams) > 0 {
		if err := BulkSave(newTeams); err != nil {
			return fmt.Errorf("failed to bulk save teams: %w", err)
		}
	}

	return nil
}
