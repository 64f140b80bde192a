package curio

import (
	"sync"
)

// MemoryDatasource holds the whole dataset in slices. It backs the unit
// tests and is handy for dry-running a day's metrics against a fixture
// without touching the database. Rows are served in insertion order, so a
// fixture's ordering is its tie-break order.
type MemoryDatasource struct {
	MatchRows  []*Match
	StatRows   []*TeamMatchStat
	GoalRows   []*GoalEvent
	CardRows   []*RedCardEvent
	Teams      map[int]string
	Players    map[int]string
	Findings   []*CuriosityFinding
	FetchError error // when set, every fetch fails with it

	mu sync.Mutex
}

// NewMemoryDatasource creates an empty in-memory datasource
func NewMemoryDatasource() *MemoryDatasource {
	return &MemoryDatasource{
		Teams:   make(map[int]string),
		Players: make(map[int]string),
	}
}

func (ds *MemoryDatasource) inScope(matchID int, scope Scope) bool {
	m := MatchByID(ds.MatchRows, matchID)
	if m == nil {
		return false
	}
	if scope.CompetitionID > 0 {
		return m.CompetitionID == scope.CompetitionID
	}
	return m.Season == scope.Season
}

// Matches returns the fixtures in scope, oldest first
func (ds *MemoryDatasource) Matches(scope Scope) ([]*Match, error) {
	if ds.FetchError != nil {
		return nil, ds.FetchError
	}
	var matches []*Match
	for _, m := range ds.MatchRows {
		if scope.CompetitionID > 0 {
			if m.CompetitionID == scope.CompetitionID {
				matches = append(matches, m)
			}
		} else if m.Season == scope.Season {
			matches = append(matches, m)
		}
	}
	SortMatchesByDate(matches)
	return matches, nil
}

// TeamMatchStats returns the stat rows in scope
func (ds *MemoryDatasource) TeamMatchStats(scope Scope) ([]*TeamMatchStat, error) {
	if ds.FetchError != nil {
		return nil, ds.FetchError
	}
	var stats []*TeamMatchStat
	for _, s := range ds.StatRows {
		if ds.inScope(s.MatchID, scope) {
			stats = append(stats, s)
		}
	}
	return stats, nil
}

// GoalEvents returns the goal events in scope
func (ds *MemoryDatasource) GoalEvents(scope Scope) ([]*GoalEvent, error) {
	if ds.FetchError != nil {
		return nil, ds.FetchError
	}
	var events []*GoalEvent
	for _, e := range ds.GoalRows {
		if ds.inScope(e.MatchID, scope) {
			events = append(events, e)
		}
	}
	return events, nil
}

// RedCardEvents returns the dismissals in scope
func (ds *MemoryDatasource) RedCardEvents(scope Scope) ([]*RedCardEvent, error) {
	if ds.FetchError != nil {
		return nil, ds.FetchError
	}
	var events []*RedCardEvent
	for _, e := range ds.CardRows {
		if ds.inScope(e.MatchID, scope) {
			events = append(events, e)
		}
	}
	return events, nil
}

// TeamName looks up a team's display name
func (ds *MemoryDatasource) TeamName(id int) string {
	if name, ok := ds.Teams[id]; ok {
		return name
	}
	return UnknownName
}

// PlayerName looks up a player's display name
func (ds *MemoryDatasource) PlayerName(id int) string {
	if name, ok := ds.Players[id]; ok {
		return name
	}
	return UnknownName
}

// SaveFinding appends the finding, skipping primary-key duplicates
func (ds *MemoryDatasource) SaveFinding(finding *CuriosityFinding) (bool, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	for _, existing := range ds.Findings {
		if existing.Date == finding.Date &&
			existing.MetricKind == finding.MetricKind &&
			existing.Season == finding.Season &&
			existing.CompetitionID == finding.CompetitionID {
			return false, nil
		}
	}
	ds.Findings = append(ds.Findings, finding)
	return true, nil
}
