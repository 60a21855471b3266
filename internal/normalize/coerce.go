// Package normalize turns raw payloads from the salon core backend into
// canonical records. The backend's field naming and response shapes vary
// between endpoints and versions, so every helper here tolerates missing,
// renamed or mistyped fields and degrades to empty values instead of
// returning errors.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// String coerces a decoded JSON value to a string. Numbers keep their
// printed form, so numeric ids survive the trip. Anything else becomes "".
func String(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

// Number coerces a decoded JSON value to a finite float64. Numeric strings
// are trimmed and parsed. The second return reports whether a usable number
// was found.
func Number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Date parses an ISO-8601 timestamp or plain date string. Non-string and
// unparsable values report false.
func Date(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Record returns v as a JSON object, or nil when it is anything else.
func Record(v any) map[string]any {
	rec, _ := v.(map[string]any)
	return rec
}

// Array returns v as a JSON array, or nil when it is anything else.
func Array(v any) []any {
	arr, _ := v.([]any)
	return arr
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s != "" && s != "false" && s != "0" && s != "no"
	}
	return false
}

// stringField walks keys in order and returns the first value that coerces
// to a non-empty string.
func stringField(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := String(rec[k]); s != "" {
			return s
		}
	}
	return ""
}

// numberField walks keys in order and returns the first usable number.
func numberField(rec map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if n, ok := Number(rec[k]); ok {
			return n, true
		}
	}
	return 0, false
}

// dateField walks keys in order and returns the first parsable timestamp,
// or nil when none of the fields hold one.
func dateField(rec map[string]any, keys ...string) *time.Time {
	for _, k := range keys {
		if t, ok := Date(rec[k]); ok {
			return &t
		}
	}
	return nil
}

// flagField reports whether any of the named fields holds a truthy value.
func flagField(rec map[string]any, keys ...string) bool {
	for _, k := range keys {
		if truthy(rec[k]) {
			return true
		}
	}
	return false
}
