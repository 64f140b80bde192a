package curio

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Xaaaaii7/lliga-sub001/internal/logger"
)

// Scope restricts which rows a run considers. When CompetitionID is set
// (> 0) it takes precedence over season filtering.
type Scope struct {
	Season        string
	CompetitionID int
}

// DefaultScope builds a scope from the global configuration
func DefaultScope() Scope {
	return Scope{
		Season:        Config.Season,
		CompetitionID: Config.CompetitionID,
	}
}

// String renders the scope for log lines
func (s Scope) String() string {
	if s.CompetitionID > 0 {
		return fmt.Sprintf("competition %d", s.CompetitionID)
	}
	return fmt.Sprintf("season %s", s.Season)
}

// Datasource is the narrow read interface the engine depends on, plus the
// finding sink. Evaluators only ever see rows already filtered to their
// scope; the implementations own the filtering and the row order (primary
// key ascending, matches by date then id), which the leader tie-break
// relies on.
type Datasource interface {
	Matches(scope Scope) ([]*Match, error)
	TeamMatchStats(scope Scope) ([]*TeamMatchStat, error)
	GoalEvents(scope Scope) ([]*GoalEvent, error)
	RedCardEvents(scope Scope) ([]*RedCardEvent, error)

	TeamName(id int) string
	PlayerName(id int) string

	// SaveFinding inserts the finding. Returns false without error when a
	// finding for the same metric, scope and date already exists.
	SaveFinding(finding *CuriosityFinding) (bool, error)
}

// Name lookup placeholder, substituted on any miss rather than failing
const UnknownName = "Desconocido"

/////////////////////////////////////////////////////////////////////////
////// Sqlite implementation
/////////////////////////////////////////////////////////////////////////

// SqliteDatasource reads the entities out of the league database
type SqliteDatasource struct {
	teamNames   map[int]string
	playerNames map[int]string
	mu          sync.Mutex
}

var (
	sqliteInstance *SqliteDatasource
	sqliteOnce     sync.Once
)

// GetSqliteDatasource returns the shared sqlite-backed datasource, creating
// the schema on first use
func GetSqliteDatasource() (*SqliteDatasource, error) {
	var initErr error
	sqliteOnce.Do(func() {
		if err := createTables(); err != nil {
			initErr = fmt.Errorf("failed to create tables: %w", err)
			return
		}
		sqliteInstance = &SqliteDatasource{
			teamNames:   make(map[int]string),
			playerNames: make(map[int]string),
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	if sqliteInstance == nil {
		return nil, fmt.Errorf("datasource initialisation previously failed")
	}
	return sqliteInstance, nil
}

// Matches returns the played and unplayed fixtures in scope, oldest first
func (ds *SqliteDatasource) Matches(scope Scope) ([]*Match, error) {
	where := "season = ?"
	arg := any(scope.Season)
	if scope.CompetitionID > 0 {
		where = "competition_id = ?"
		arg = scope.CompetitionID
	}

	rows, err := FindWhere(&Match{}, where, "match_date, id", arg)
	if err != nil {
		return nil, err
	}

	matches := make([]*Match, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, row.(*Match))
	}
	return matches, nil
}

// matchIDClause builds an IN clause over the scope's match ids.
// Returns ok=false when the scope holds no matches at all.
func (ds *SqliteDatasource) matchIDClause(scope Scope) (string, []interface{}, bool, error) {
	matches, err := ds.Matches(scope)
	if err != nil {
		return "", nil, false, err
	}
	if len(matches) == 0 {
		return "", nil, false, nil
	}

	placeholders := make([]string, 0, len(matches))
	args := make([]interface{}, 0, len(matches))
	for _, m := range matches {
		placeholders = append(placeholders, "?")
		args = append(args, m.ID)
	}
	return fmt.Sprintf("match_id IN (%s)", strings.Join(placeholders, ", ")), args, true, nil
}

// TeamMatchStats returns the per-team per-match stat rows in scope
func (ds *SqliteDatasource) TeamMatchStats(scope Scope) ([]*TeamMatchStat, error) {
	clause, args, ok, err := ds.matchIDClause(scope)
	if err != nil || !ok {
		return nil, err
	}

	rows, err := FindWhere(&TeamMatchStat{}, clause, "match_id, team_id", args...)
	if err != nil {
		return nil, err
	}

	stats := make([]*TeamMatchStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, row.(*TeamMatchStat))
	}
	return stats, nil
}

// GoalEvents returns the goal events in scope
func (ds *SqliteDatasource) GoalEvents(scope Scope) ([]*GoalEvent, error) {
	clause, args, ok, err := ds.matchIDClause(scope)
	if err != nil || !ok {
		return nil, err
	}

	rows, err := FindWhere(&GoalEvent{}, clause, "id", args...)
	if err != nil {
		return nil, err
	}

	events := make([]*GoalEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.(*GoalEvent))
	}
	return events, nil
}

// RedCardEvents returns the dismissals in scope
func (ds *SqliteDatasource) RedCardEvents(scope Scope) ([]*RedCardEvent, error) {
	clause, args, ok, err := ds.matchIDClause(scope)
	if err != nil || !ok {
		return nil, err
	}

	rows, err := FindWhere(&RedCardEvent{}, clause, "id", args...)
	if err != nil {
		return nil, err
	}

	events := make([]*RedCardEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.(*RedCardEvent))
	}
	return events, nil
}

// TeamName looks up a team's display name, caching hits. Misses substitute
// the placeholder rather than failing the evaluator.
func (ds *SqliteDatasource) TeamName(id int) string {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if name, ok := ds.teamNames[id]; ok {
		return name
	}

	team := &Team{}
	if err := FindByPrimaryKey(team, map[string]interface{}{"id": id}); err != nil {
		logger.Debug("Team name lookup miss", id)
		return UnknownName
	}
	ds.teamNames[id] = team.Name
	return team.Name
}

// PlayerName looks up a player's display name, caching hits
func (ds *SqliteDatasource) PlayerName(id int) string {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if name, ok := ds.playerNames[id]; ok {
		return name
	}

	player := &Player{}
	if err := FindByPrimaryKey(player, map[string]interface{}{"id": id}); err != nil {
		logger.Debug("Player name lookup miss", id)
		return UnknownName
	}
	ds.playerNames[id] = player.Name
	return player.Name
}

// SaveFinding inserts one finding. A finding already emitted for the same
// metric, scope and date is skipped, which keeps re-runs of the daily job
// from duplicating curiosities.
func (ds *SqliteDatasource) SaveFinding(finding *CuriosityFinding) (bool, error) {
	exists, err := Exists(finding)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing finding: %w", err)
	}
	if exists {
		logger.Info("Finding already emitted today, skipping", finding.MetricKind)
		return false, nil
	}
	if err := Save(finding); err != nil {
		return false, fmt.Errorf("failed to save finding: %w", err)
	}
	return true, nil
}
