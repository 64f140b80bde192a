package curio

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var formatDate = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestFormatFindingPercent(t *testing.T) {
	metric := &Metric{
		Kind:     "team_pass_completion",
		Title:    "El toque más fino",
		Category: CategoryEstadisticas,
		Template: "{nombre} completa el {valor} de sus pases",
		Percent:  true,
		Decimals: 1,
	}
	cand := &Candidate{
		SubjectID:   5,
		SubjectName: "Atlético Azul",
		SubjectKind: SubjectTeam,
		Value:       0.8888889,
	}
	scope := Scope{Season: "2025-26"}

	finding := FormatFinding(metric, cand, scope, formatDate)

	assert.Equal(t, 88.9, finding.Value)
	assert.Equal(t, "Atlético Azul completa el 88.9% de sus pases", finding.Description)
	assert.Equal(t, "2026-03-14", finding.Date)
	assert.Equal(t, "atlético azul", finding.ImageKey)
	assert.Equal(t, CategoryEstadisticas, finding.Category)
}

// The numeric value stored on the finding is the rounded display value, so
// re-rendering a stored finding can never disagree with its description.
func TestFormatFindingStoresDisplayValue(t *testing.T) {
	metric := &Metric{
		Kind:     "team_away_attack",
		Category: CategoryEstadisticas,
		Template: "{nombre}: {valor}",
		Decimals: 2,
	}
	cand := &Candidate{SubjectID: 1, SubjectName: "Racing Verde", SubjectKind: SubjectTeam, Value: 5.0 / 3.0}

	finding := FormatFinding(metric, cand, Scope{Season: "2025-26"}, formatDate)

	rendered := strconv.FormatFloat(finding.Value, 'f', metric.Decimals, 64)
	if rendered != "1.67" {
		t.Errorf("expected stored value to render as 1.67, got %s", rendered)
	}
	if finding.Value != 1.67 {
		t.Errorf("expected stored value 1.67, got %v", finding.Value)
	}
}

func TestFormatFindingIntegerValue(t *testing.T) {
	metric := &Metric{
		Kind:     "team_most_wins",
		Category: CategoryEquipos,
		Template: "{nombre} suma {valor} victorias",
	}
	cand := &Candidate{SubjectID: 2, SubjectName: "Deportivo Rojo", SubjectKind: SubjectTeam, Value: 7}

	finding := FormatFinding(metric, cand, Scope{Season: "2025-26"}, formatDate)

	assert.Equal(t, "Deportivo Rojo suma 7 victorias", finding.Description)
	assert.Equal(t, 7.0, finding.Value)
	assert.Equal(t, "2", finding.SubjectKey)
}

func TestFormatFindingScopeKey(t *testing.T) {
	metric := &Metric{Kind: "player_top_scorer", Category: CategoryJugadores, Template: "{nombre}: {valor}"}
	cand := &Candidate{SubjectID: 11, SubjectName: "José Martínez", SubjectKind: SubjectPlayer, Value: 3}

	// a season scope has no competition, the key column carries the sentinel
	finding := FormatFinding(metric, cand, Scope{Season: "2025-26"}, formatDate)
	if finding.CompetitionID != -1 {
		t.Errorf("expected sentinel competition id -1, got %d", finding.CompetitionID)
	}

	finding = FormatFinding(metric, cand, Scope{Season: "2025-26", CompetitionID: 87}, formatDate)
	if finding.CompetitionID != 87 {
		t.Errorf("expected competition id 87, got %d", finding.CompetitionID)
	}
}

func TestImageKeys(t *testing.T) {
	testCases := []struct {
		name     string
		kind     string
		expected string
	}{
		{"Álvaro Núñez", SubjectPlayer, "alvaro-nunez"},
		{"José María Íñiguez", SubjectPlayer, "jose-maria-iniguez"},
		{"Atlético Azul", SubjectTeam, "atlético azul"},
		{" Deportivo Rojo ", SubjectTeam, "deportivo rojo"},
		{"Azul 3 - 1 Rojo", SubjectMatch, ""},
	}

	for _, tc := range testCases {
		got := ImageKey(tc.name, tc.kind)
		if got != tc.expected {
			t.Errorf("ImageKey(%q, %s): expected %q, got %q", tc.name, tc.kind, tc.expected, got)
		}
	}
}
