package curio

import (
	"fmt"
	"time"
)

var _ Persistable = (*Player)(nil)

// Player represents a registered player
type Player struct {
	ID        int       `json:"id" column:"id" dbtype:"INTEGER" primary:"true" index:"true"`
	Name      string    `json:"name" column:"name" dbtype:"TEXT NOT NULL" index:"true"`
	TeamID    int       `json:"teamId" column:"team_id" dbtype:"INTEGER DEFAULT -1" index:"true"`
	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" column:"updated_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

// GetPrimaryKey returns the primary key as a map
func (p *Player) GetPrimaryKey() map[string]interface{} {
	return map[string]interface{}{
		"id": p.ID,
	}
}

// SetPrimaryKey sets the primary key from a map
func (p *Player) SetPrimaryKey(pk map[string]interface{}) error {
	if id, ok := pk["id"]; ok {
		if idInt, ok := id.(int); ok {
			p.ID = idInt
			return nil
		}
		if idInt64, ok := id.(int64); ok {
			p.ID = int(idInt64)
			return nil
		}
		return fmt.Errorf("primary key 'id' must be an integer")
	}
	return fmt.Errorf("primary key 'id' not found")
}

// GetTableName returns the table name for players
func (p *Player) GetTableName() string {
	return "players"
}

// BeforeSave is called before saving the player
func (p *Player) BeforeSave() error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	return nil
}

// AfterSave is called after saving the player
func (p *Player) AfterSave() error {
	return nil
}
