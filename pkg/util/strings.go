package util

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// GetAsString converts various types to string
// If s is a string, return it
// If s is any form of number, parse it into a string and return it
// If s is any other type, convert it to string representation
func GetAsString(s any) (string, error) {
	if s == nil {
		return "", fmt.Errorf("cannot convert nil to string")
	}

	switch v := s.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		// Fallback to fmt.Sprintf for other types
		return fmt.Sprintf("%v", v), nil
	}
}

// GetAsInteger converts various types to integer
// If s is an integer, return it
// If s is a string that represents an integer, convert it to an integer and return it
// If s is any other type, return an error
func GetAsInteger(s any) (int, error) {
	if s == nil {
		return 0, fmt.Errorf("cannot convert nil to integer")
	}

	switch v := s.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		if v > 2147483647 || v < -2147483648 {
			return 0, fmt.Errorf("int64 value %d is out of int range", v)
		}
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as integer: %w", v, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to integer", s)
	}
}

// Slugify lowercases a display name and replaces space runs with the given
// separator, stripping accents commonly found in Spanish team and player names.
// Used to derive image asset keys, so "Atlético Prat" becomes "atletico-prat"
// (or "atletico prat" with a space separator).
func Slugify(name string, separator string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = stripAccents(name)

	var b strings.Builder
	lastSep := false
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSep = false
		default:
			if !lastSep && b.Len() > 0 {
				b.WriteString(separator)
				lastSep = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), separator)
}

// stripAccents maps accented latin characters to their plain equivalent
func stripAccents(s string) string {
	replacer := strings.NewReplacer(
		"á", "a", "à", "a", "ä", "a", "â", "a",
		"é", "e", "è", "e", "ë", "e", "ê", "e",
		"í", "i", "ì", "i", "ï", "i", "î", "i",
		"ó", "o", "ò", "o", "ö", "o", "ô", "o",
		"ú", "u", "ù", "u", "ü", "u", "û", "u",
		"ñ", "n", "ç", "c",
	)
	return replacer.Replace(s)
}
