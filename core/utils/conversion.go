package utils

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// ToInt converts query and flag values to int, returning fallback when the
// value is empty or not a number.
func ToInt(val any, fallback int) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fallback
		}
		return i
	case []byte:
		return ToInt(string(v), fallback)
	default:
		return fallback
	}
}

// FormatValue renders a leaf value for human-readable reports. Strings are
// quoted, nil is rendered as null and long values are truncated to max runes.
func FormatValue(val any, max int) string {
	var s string
	switch v := val.(type) {
	case nil:
		return "null"
	case string:
		s = strconv.Quote(v)
	case []byte:
		s = "0x" + hex.EncodeToString(v)
	case fmt.Stringer:
		s = v.String()
	default:
		s = fmt.Sprintf("%v", v)
	}

	if max > 0 {
		if r := []rune(s); len(r) > max {
			return string(r[:max]) + "…"
		}
	}
	return s
}
