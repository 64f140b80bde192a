package curio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureDatasource builds a small three-team season with one unplayed
// fixture and one match from another season. Most evaluator expectations
// below are worked out by hand from these rows.
func fixtureDatasource() *MemoryDatasource {
	ds := NewMemoryDatasource()
	ds.Teams = map[int]string{
		1: "Atlético Azul",
		2: "Deportivo Rojo",
		3: "Racing Verde",
	}
	ds.Players = map[int]string{
		11: "José Martínez",
		12: "Iker López",
		21: "Álvaro Núñez",
		22: "Pedro Sánchez",
		23: "Juan García",
		31: "Mikel Etxeberria",
		32: "David Ortega",
	}

	day := func(d int) time.Time {
		return time.Date(2025, 9, d, 18, 0, 0, 0, time.UTC)
	}

	ds.MatchRows = []*Match{
		{ID: 1, Season: "2025-26", CompetitionID: 100, HomeID: 1, AwayID: 2,
			HomeTeamName: "Atlético Azul", AwayTeamName: "Deportivo Rojo",
			HomeGoals: 3, AwayGoals: 1, MatchDate: day(1)},
		{ID: 2, Season: "2025-26", CompetitionID: 100, HomeID: 2, AwayID: 3,
			HomeTeamName: "Deportivo Rojo", AwayTeamName: "Racing Verde",
			HomeGoals: 2, AwayGoals: 2, MatchDate: day(8)},
		{ID: 3, Season: "2025-26", CompetitionID: 100, HomeID: 3, AwayID: 1,
			HomeTeamName: "Racing Verde", AwayTeamName: "Atlético Azul",
			HomeGoals: 0, AwayGoals: 2, MatchDate: day(15)},
		// not played yet, must be invisible to every metric
		{ID: 5, Season: "2025-26", CompetitionID: 100, HomeID: 2, AwayID: 1,
			HomeTeamName: "Deportivo Rojo", AwayTeamName: "Atlético Azul",
			HomeGoals: -1, AwayGoals: -1, MatchDate: day(22)},
		{ID: 4, Season: "2025-26", CompetitionID: 100, HomeID: 1, AwayID: 3,
			HomeTeamName: "Atlético Azul", AwayTeamName: "Racing Verde",
			HomeGoals: 1, AwayGoals: 1, MatchDate: day(29)},
		// previous season, must never leak into a 2025-26 scope
		{ID: 6, Season: "2024-25", CompetitionID: 99, HomeID: 1, AwayID: 2,
			HomeTeamName: "Atlético Azul", AwayTeamName: "Deportivo Rojo",
			HomeGoals: 9, AwayGoals: 0, MatchDate: day(2)},
	}

	ds.GoalRows = []*GoalEvent{
		{ID: 101, MatchID: 1, TeamID: 1, PlayerID: 11, EventType: GoalNormal},
		{ID: 102, MatchID: 1, TeamID: 1, PlayerID: 11, EventType: GoalNormal},
		{ID: 103, MatchID: 1, TeamID: 2, PlayerID: 21, EventType: GoalOwn},
		{ID: 104, MatchID: 1, TeamID: 2, PlayerID: 22, EventType: GoalNormal},
		{ID: 105, MatchID: 2, TeamID: 2, PlayerID: 22, EventType: GoalNormal},
		{ID: 106, MatchID: 2, TeamID: 2, PlayerID: 23, EventType: GoalNormal},
		{ID: 107, MatchID: 2, TeamID: 3, PlayerID: 31, EventType: GoalNormal},
		{ID: 108, MatchID: 2, TeamID: 3, PlayerID: 32, EventType: GoalNormal},
		{ID: 109, MatchID: 3, TeamID: 1, PlayerID: 11, EventType: GoalNormal},
		{ID: 110, MatchID: 3, TeamID: 1, PlayerID: 12, EventType: GoalNormal},
		{ID: 111, MatchID: 4, TeamID: 1, PlayerID: 12, EventType: GoalNormal},
		{ID: 112, MatchID: 4, TeamID: 3, PlayerID: 31, EventType: GoalNormal},
		{ID: 113, MatchID: 6, TeamID: 1, PlayerID: 11, EventType: GoalNormal},
	}

	ds.CardRows = []*RedCardEvent{
		{ID: 201, MatchID: 1, PlayerID: 21},
		{ID: 202, MatchID: 1, PlayerID: 23},
		{ID: 203, MatchID: 3, PlayerID: 31},
		{ID: 204, MatchID: 6, PlayerID: 22},
	}

	ds.StatRows = []*TeamMatchStat{
		{MatchID: 1, TeamID: 1, Fouls: 10, RedCards: 0, Interceptions: 8, Tackles: 12, Passes: 500, PassesCompleted: 450},
		{MatchID: 1, TeamID: 2, Fouls: 18, RedCards: 2, Interceptions: 10, Tackles: 10, Passes: 300, PassesCompleted: 210},
		// team 4 barely plays the ball; its perfect-looking completion
		// percentage must be held back by the pass sample guard
		{MatchID: 1, TeamID: 4, Fouls: 20, RedCards: 0, Interceptions: 0, Tackles: 0, Passes: 80, PassesCompleted: 76},
		{MatchID: 2, TeamID: 2, Fouls: 12, RedCards: 0, Interceptions: 5, Tackles: 9, Passes: 400, PassesCompleted: 320},
		{MatchID: 2, TeamID: 3, Fouls: 8, RedCards: 0, Interceptions: 7, Tackles: 11, Passes: 350, PassesCompleted: 280},
		{MatchID: 3, TeamID: 3, Fouls: 9, RedCards: 1, Interceptions: 6, Tackles: 8, Passes: 320, PassesCompleted: 240},
		{MatchID: 3, TeamID: 1, Fouls: 7, RedCards: 0, Interceptions: 9, Tackles: 10, Passes: 480, PassesCompleted: 430},
		{MatchID: 4, TeamID: 1, Fouls: 6, RedCards: 0, Interceptions: 5, Tackles: 7, Passes: 460, PassesCompleted: 400},
		{MatchID: 4, TeamID: 3, Fouls: 11, RedCards: 0, Interceptions: 8, Tackles: 9, Passes: 330, PassesCompleted: 250},
	}

	return ds
}

func fixtureScope() Scope {
	return Scope{Season: "2025-26"}
}

func TestTeamMostWins(t *testing.T) {
	cand, err := EvalTeamMostWins(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, 1, cand.SubjectID)
	assert.Equal(t, "Atlético Azul", cand.SubjectName)
	assert.Equal(t, 2.0, cand.Value)
}

func TestTeamMostDraws(t *testing.T) {
	cand, err := EvalTeamMostDraws(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, 3, cand.SubjectID)
	assert.Equal(t, 2.0, cand.Value)
}

// Both Deportivo and Racing have one defeat; first observation order breaks
// the tie and Deportivo appears first in the fixture list.
func TestTeamMostLossesTieBreak(t *testing.T) {
	cand, err := EvalTeamMostLosses(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, 2, cand.SubjectID)
	assert.Equal(t, 1.0, cand.Value)
}

// The 9-0 from the previous season must not count here.
func TestTeamMostGoalsRespectsScope(t *testing.T) {
	cand, err := EvalTeamMostGoals(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, 1, cand.SubjectID)
	assert.Equal(t, 6.0, cand.Value)
}

func TestTeamMostConceded(t *testing.T) {
	cand, err := EvalTeamMostConceded(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	// Deportivo and Racing both conceded 5, Deportivo observed first
	assert.Equal(t, 2, cand.SubjectID)
	assert.Equal(t, 5.0, cand.Value)
}

func TestMatchMostGoalsTieBreak(t *testing.T) {
	cand, err := EvalMatchMostGoals(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	// matches 1 and 2 both produced 4 goals, the earlier kick-off wins
	assert.Equal(t, 1, cand.SubjectID)
	assert.Equal(t, SubjectMatch, cand.SubjectKind)
	assert.Equal(t, "Atlético Azul 3 - 1 Deportivo Rojo", cand.SubjectName)
	assert.Equal(t, 4.0, cand.Value)
}

func TestMatchMostFouls(t *testing.T) {
	cand, err := EvalMatchMostFouls(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, 1, cand.SubjectID)
	assert.Equal(t, 48.0, cand.Value)
}

func TestMatchMostRedCards(t *testing.T) {
	cand, err := EvalMatchMostRedCards(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, 1, cand.SubjectID)
	assert.Equal(t, 2.0, cand.Value)
}

// An own goal counts for the opponent of the team whose player scored it.
func TestOwnGoalBeneficiary(t *testing.T) {
	cand, err := EvalTeamOwnGoalBeneficiary(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, 1, cand.SubjectID)
	assert.Equal(t, 1.0, cand.Value)
}

// Núñez's own goal must not creep into anybody's scoring tally.
func TestTopScorerExcludesOwnGoals(t *testing.T) {
	cand, err := EvalPlayerTopScorer(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, 11, cand.SubjectID)
	assert.Equal(t, "José Martínez", cand.SubjectName)
	assert.Equal(t, 3.0, cand.Value)
}

func TestPlayerMostOwnGoals(t *testing.T) {
	cand, err := EvalPlayerMostOwnGoals(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, 21, cand.SubjectID)
	assert.Equal(t, 1.0, cand.Value)
}

func TestPlayerMostRedCards(t *testing.T) {
	cand, err := EvalPlayerMostRedCards(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	// three players on one card each, first observed leads
	assert.Equal(t, 21, cand.SubjectID)
	assert.Equal(t, 1.0, cand.Value)
}

func TestPlayerDistinctVictims(t *testing.T) {
	cand, err := EvalPlayerDistinctVictims(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	// Martínez scored against Deportivo and Racing
	assert.Equal(t, 11, cand.SubjectID)
	assert.Equal(t, 2.0, cand.Value)
}

func TestTeamUniqueScorers(t *testing.T) {
	cand, err := EvalTeamUniqueScorers(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	// every team has two distinct scorers, first observed leads
	assert.Equal(t, 1, cand.SubjectID)
	assert.Equal(t, 2.0, cand.Value)
}

func TestTeamDistinctVictims(t *testing.T) {
	cand, err := EvalTeamDistinctVictims(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, 1, cand.SubjectID)
	assert.Equal(t, 2.0, cand.Value)
}

func TestTeamAwayAttack(t *testing.T) {
	cand, err := EvalTeamAwayAttack(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	// Atlético's only away match ended 0-2
	assert.Equal(t, 1, cand.SubjectID)
	assert.Equal(t, 2.0, cand.Value)
}

func TestTeamHomeDefense(t *testing.T) {
	cand, err := EvalTeamHomeDefense(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	// one goal conceded per home match, the lowest of the three
	assert.Equal(t, 1, cand.SubjectID)
	assert.Equal(t, 1.0, cand.Value)
}

func TestTeamEntertainment(t *testing.T) {
	cand, err := EvalTeamEntertainment(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	// both Deportivo matches finished with four goals on the board
	assert.Equal(t, 2, cand.SubjectID)
	assert.Equal(t, 4.0, cand.Value)
}

// Team 4 completes 95% of its passes but attempted only 80, below the
// sample guard, so the lead goes to the best qualifying side.
func TestTeamPassCompletionSampleGuard(t *testing.T) {
	cand, err := EvalTeamPassCompletion(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, 1, cand.SubjectID)
	assert.InDelta(t, 1280.0/1440.0, cand.Value, 1e-9)
}

// Only Atlético has scored more than the minimum goal sample; the others
// have better-looking ratios on tiny tallies and must not qualify.
func TestTeamPointsPerGoalSampleGuard(t *testing.T) {
	cand, err := EvalTeamPointsPerGoal(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, 1, cand.SubjectID)
	assert.InDelta(t, 7.0/6.0, cand.Value, 1e-9)
}

func TestTeamScoringConsistency(t *testing.T) {
	cand, err := EvalTeamScoringConsistency(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	// Atlético and Deportivo both scored in every match, first observed leads
	assert.Equal(t, 1, cand.SubjectID)
	assert.Equal(t, 1.0, cand.Value)
}

func TestTeamFairPlay(t *testing.T) {
	cand, err := EvalTeamFairPlay(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, 1, cand.SubjectID)
	assert.InDelta(t, 23.0/3.0, cand.Value, 1e-9)
}

func TestTeamDefensiveActions(t *testing.T) {
	cand, err := EvalTeamDefensiveActions(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	// Atlético and Deportivo average 17 actions, first observed leads
	assert.Equal(t, 1, cand.SubjectID)
	assert.Equal(t, 17.0, cand.Value)
}

// The unplayed midweek fixture sits between Atlético's wins and its draw.
// It must be skipped, not treated as a defeat, so the run reaches 3.
func TestTeamUnbeatenStreakSkipsUnplayed(t *testing.T) {
	cand, err := EvalTeamUnbeatenStreak(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, 1, cand.SubjectID)
	assert.Equal(t, 3.0, cand.Value)
}

func TestTeamScoringStreak(t *testing.T) {
	cand, err := EvalTeamScoringStreak(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, 1, cand.SubjectID)
	assert.Equal(t, 3.0, cand.Value)
}

func TestTeamConcedingStreak(t *testing.T) {
	cand, err := EvalTeamConcedingStreak(fixtureDatasource(), fixtureScope())
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, 3, cand.SubjectID)
	assert.Equal(t, 3.0, cand.Value)
}

// A season of goalless draws has no most-goals match, no winningest team
// and no top scorer. A leader whose tally never left zero is not a
// curiosity and must not become a finding.
func TestZeroTalliesYieldNoCandidates(t *testing.T) {
	ds := NewMemoryDatasource()
	ds.Teams = map[int]string{1: "Atlético Azul", 2: "Deportivo Rojo"}
	ds.MatchRows = []*Match{
		{ID: 1, Season: "2025-26", CompetitionID: 100, HomeID: 1, AwayID: 2,
			HomeTeamName: "Atlético Azul", AwayTeamName: "Deportivo Rojo",
			HomeGoals: 0, AwayGoals: 0, MatchDate: time.Date(2025, 9, 1, 18, 0, 0, 0, time.UTC)},
		{ID: 2, Season: "2025-26", CompetitionID: 100, HomeID: 2, AwayID: 1,
			HomeTeamName: "Deportivo Rojo", AwayTeamName: "Atlético Azul",
			HomeGoals: 0, AwayGoals: 0, MatchDate: time.Date(2025, 9, 8, 18, 0, 0, 0, time.UTC)},
	}
	ds.StatRows = []*TeamMatchStat{
		{MatchID: 1, TeamID: 1, Passes: 400, PassesCompleted: 300},
		{MatchID: 1, TeamID: 2, Passes: 380, PassesCompleted: 290},
	}
	scope := fixtureScope()

	zeroTallied := []struct {
		kind string
		eval Evaluator
	}{
		{"match_most_goals", EvalMatchMostGoals},
		{"match_most_fouls", EvalMatchMostFouls},
		{"match_most_red_cards", EvalMatchMostRedCards},
		{"team_most_wins", EvalTeamMostWins},
		{"team_most_losses", EvalTeamMostLosses},
		{"team_most_goals", EvalTeamMostGoals},
		{"team_most_conceded", EvalTeamMostConceded},
		{"team_own_goal_beneficiary", EvalTeamOwnGoalBeneficiary},
		{"player_top_scorer", EvalPlayerTopScorer},
	}
	for _, tc := range zeroTallied {
		cand, err := tc.eval(ds, scope)
		if err != nil {
			t.Errorf("%s returned error: %v", tc.kind, err)
		}
		if cand != nil {
			t.Errorf("%s crowned a zero-valued leader: %+v", tc.kind, cand)
		}
	}

	// draws genuinely happened, so that count still leads
	cand, err := EvalTeamMostDraws(ds, scope)
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, 2.0, cand.Value)
}

// When no team's best run reaches the minimum publishable length there is
// no streak finding at all.
func TestStreaksBelowMinimumYieldNoCandidate(t *testing.T) {
	ds := NewMemoryDatasource()
	ds.Teams = map[int]string{1: "Atlético Azul", 2: "Deportivo Rojo"}
	day := func(d int) time.Time {
		return time.Date(2025, 9, d, 18, 0, 0, 0, time.UTC)
	}
	// both teams score twice in a row, then dry up: best streak 2 < 3
	ds.MatchRows = []*Match{
		{ID: 1, Season: "2025-26", HomeID: 1, AwayID: 2, HomeGoals: 1, AwayGoals: 1, MatchDate: day(1)},
		{ID: 2, Season: "2025-26", HomeID: 2, AwayID: 1, HomeGoals: 2, AwayGoals: 1, MatchDate: day(8)},
		{ID: 3, Season: "2025-26", HomeID: 1, AwayID: 2, HomeGoals: 0, AwayGoals: 0, MatchDate: day(15)},
	}

	cand, err := EvalTeamScoringStreak(ds, fixtureScope())
	require.NoError(t, err)
	assert.Nil(t, cand)
}

// A scope with no data yields no candidate from any metric, never an error.
func TestEmptyDatasetYieldsNoCandidates(t *testing.T) {
	ds := NewMemoryDatasource()
	scope := fixtureScope()

	for _, metric := range Registry() {
		cand, err := metric.Evaluate(ds, scope)
		if err != nil {
			t.Errorf("%s returned error on empty dataset: %v", metric.Kind, err)
		}
		if cand != nil {
			t.Errorf("%s returned a candidate on empty dataset: %+v", metric.Kind, cand)
		}
	}
}

// A competition scope selects by competition id and ignores the season field.
func TestCompetitionScopePrecedence(t *testing.T) {
	ds := fixtureDatasource()
	scope := Scope{Season: "bogus", CompetitionID: 100}

	cand, err := EvalTeamMostGoals(ds, scope)
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, 1, cand.SubjectID)
	assert.Equal(t, 6.0, cand.Value)
}
