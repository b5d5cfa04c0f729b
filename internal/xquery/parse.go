package xquery

import (
	"net/url"
	"strconv"
)

// ParseInt returns the named query parameter as an int, falling back to
// defaultValue when the parameter is missing or malformed.
func ParseInt(query url.Values, name string, defaultValue int) int {
	value := query.Get(name)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return parsed
}

// ParseCount parses a count-like parameter (limit, days, threshold). Values
// at or below zero take the default; values above maxValue are clamped so
// they are safe to use as SQL limits. A maxValue of 0 means unbounded.
func ParseCount(query url.Values, name string, defaultValue int, maxValue int) int {
	return Count(ParseInt(query, name, defaultValue), defaultValue, maxValue)
}

// Count applies the count normalization rule to an already-parsed value.
func Count(value int, defaultValue int, maxValue int) int {
	if value <= 0 {
		value = defaultValue
	}
	if maxValue > 0 && value > maxValue {
		value = maxValue
	}
	return value
}
