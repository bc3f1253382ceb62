package broker

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Params is the raw argument bag of one request, as decoded from JSON.
type Params map[string]any

// stringValue returns the trimmed string under key, or "" when the key is
// absent or not a string. Whitespace-only values count as missing.
func (p Params) stringValue(key string) string {
	value, ok := p[key]
	if !ok {
		return ""
	}
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// intValue returns the integer under key, accepting the numeric shapes
// JSON decoding can produce. Absent or unusable values fall back.
func (p Params) intValue(key string, fallback int64) int64 {
	switch value := p[key].(type) {
	case int:
		return int64(value)
	case int64:
		return value
	case float64:
		return int64(value)
	case json.Number:
		if n, err := value.Int64(); err == nil {
			return n
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
