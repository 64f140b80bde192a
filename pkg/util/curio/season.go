package curio

import (
	"fmt"

	"github.com/Xaaaaii7/lliga-sub001/pkg/util"
)

// ParseSeason normalises the many season spellings that turn up in feeds and
// configuration into the canonical short form used everywhere in this module.
// The format we want to return is YYYY-YY, as in "2025-26". Accepted inputs:
//   - "2025-26" or "2025/26" (already short form, maybe wrong delimiter)
//   - "2025-2026" or "2025/2026" (long form)
func ParseSeason(season any) (string, error) {
	if season == nil {
		return "", fmt.Errorf("must pass a season")
	}
	ss, err := util.GetAsString(season)
	if err != nil {
		return "", err
	}
	if len(ss) == 7 && (ss[4] == '-' || ss[4] == '/') {
		return fmt.Sprintf("%s-%s", ss[:4], ss[5:]), nil
	}
	// long form: keep the first year and abbreviate the second
	if len(ss) == 9 && (ss[4] == '-' || ss[4] == '/') {
		return fmt.Sprintf("%s-%s", ss[:4], ss[7:]), nil
	}
	return "", fmt.Errorf("invalid season format: %s", ss)
}

// GetFirstYear returns the first year of a season, so 2025 for "2025-26"
func GetFirstYear(season any) (int, error) {
	s, err := ParseSeason(season)
	if err != nil {
		return 0, err
	}
	return util.GetAsInteger(s[:4])
}

// GetSecondYear returns the second year of a season, so 2026 for "2025-26"
func GetSecondYear(season any) (int, error) {
	s, err := ParseSeason(season)
	if err != nil {
		return 0, err
	}
	yy, err := util.GetAsInteger(s[5:])
	if err != nil {
		return 0, err
	}
	first, err := util.GetAsInteger(s[:4])
	if err != nil {
		return 0, err
	}
	// reattach the century of the first year, rolling over at 99/00
	century := first / 100
	if yy < first%100 {
		century++
	}
	return century*100 + yy, nil
}

// IsSameSeason returns true if the two parameters represent the same season
func IsSameSeason(s1 any, s2 any) (bool, error) {
	season1, err := ParseSeason(s1)
	if err != nil {
		return false, err
	}
	season2, err := ParseSeason(s2)
	if err != nil {
		return false, err
	}
	return season1 == season2, nil
}
