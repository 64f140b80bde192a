package curio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestDatabase points the package at a throwaway database file and
// restores the previous path when the test finishes
func setupTestDatabase(t *testing.T) {
	t.Helper()

	originalPath := Config.DbPath
	err := InitDatabase(filepath.Join(t.TempDir(), "curio_test.db"))
	require.NoError(t, err)
	require.NoError(t, createTables())

	t.Cleanup(func() {
		CloseDatabase()
		Config.DbPath = originalPath
	})
}

func testMatch(id int) *Match {
	m := NewMatch()
	m.ID = id
	m.Season = "2025-26"
	m.HomeID = 1
	m.AwayID = 2
	m.HomeTeamName = "Atlético Azul"
	m.AwayTeamName = "Deportivo Rojo"
	return m
}

func TestSaveAndFindRoundTrip(t *testing.T) {
	setupTestDatabase(t)

	m := testMatch(501)
	m.HomeGoals = 2
	m.AwayGoals = 1
	require.NoError(t, Save(m))

	exists, err := Exists(m)
	require.NoError(t, err)
	require.True(t, exists)

	loaded := &Match{}
	require.NoError(t, FindByPrimaryKey(loaded, map[string]interface{}{"id": 501}))
	if loaded.HomeGoals != 2 || loaded.AwayGoals != 1 {
		t.Errorf("expected 2-1, got %d-%d", loaded.HomeGoals, loaded.AwayGoals)
	}
	if loaded.Season != "2025-26" {
		t.Errorf("expected season 2025-26, got %q", loaded.Season)
	}

	// a second save updates in place rather than duplicating
	m.AwayGoals = 3
	require.NoError(t, Save(m))

	rows, err := FindWhere(&Match{}, "id = ?", "id", 501)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	if got := rows[0].(*Match).AwayGoals; got != 3 {
		t.Errorf("expected updated away goals 3, got %d", got)
	}
}

func TestBulkSaveCommitsBatch(t *testing.T) {
	setupTestDatabase(t)

	batch := []Persistable{testMatch(601), testMatch(602), testMatch(603)}
	require.NoError(t, BulkSave(batch))

	for _, obj := range batch {
		exists, err := Exists(obj)
		require.NoError(t, err)
		require.True(t, exists)
	}
}

func TestBulkSaveRollsBackOnFailure(t *testing.T) {
	setupTestDatabase(t)

	good := testMatch(701)
	bad := NewMatch() // id 0 fails the before-save hook

	err := BulkSave([]Persistable{good, bad})
	require.Error(t, err)

	// the earlier save in the batch must not survive the rollback
	exists, err := Exists(good)
	require.NoError(t, err)
	require.False(t, exists)
}
