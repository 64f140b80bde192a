package curio

import (
	"testing"
)

func TestParseSeason(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"2025-26", "2025-26"},
		{"2025/26", "2025-26"},
		{"2025-2026", "2025-26"},
		{"2025/2026", "2025-26"},
	}

	for _, tc := range testCases {
		got, err := ParseSeason(tc.input)
		if err != nil {
			t.Errorf("ParseSeason(%q) returned error: %v", tc.input, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseSeason(%q): expected %q, got %q", tc.input, tc.expected, got)
		}
	}
}

func TestParseSeasonRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "2025", "25-26", "2025_26", "not a season"} {
		if _, err := ParseSeason(input); err == nil {
			t.Errorf("ParseSeason(%q): expected an error", input)
		}
	}
	if _, err := ParseSeason(nil); err == nil {
		t.Error("ParseSeason(nil): expected an error")
	}
}

func TestSeasonYears(t *testing.T) {
	first, err := GetFirstYear("2025-26")
	if err != nil || first != 2025 {
		t.Errorf("GetFirstYear: expected 2025, got %d (%v)", first, err)
	}

	second, err := GetSecondYear("2025-26")
	if err != nil || second != 2026 {
		t.Errorf("GetSecondYear: expected 2026, got %d (%v)", second, err)
	}

	// century rollover
	second, err = GetSecondYear("1999-00")
	if err != nil || second != 2000 {
		t.Errorf("GetSecondYear rollover: expected 2000, got %d (%v)", second, err)
	}
}

func TestIsSameSeason(t *testing.T) {
	same, err := IsSameSeason("2025/2026", "2025-26")
	if err != nil {
		t.Fatal(err)
	}
	if !same {
		t.Error("expected 2025/2026 and 2025-26 to be the same season")
	}

	same, err = IsSameSeason("2024-25", "2025-26")
	if err != nil {
		t.Fatal(err)
	}
	if same {
		t.Error("expected different seasons to differ")
	}
}
