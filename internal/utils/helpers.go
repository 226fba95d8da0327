package utils

import "strconv"

// MakeMap creates and returns a map[string]string containing a single key-value pair.
func MakeMap(key, value string) map[string]string {
	return map[string]string{key: value}
}

// FormatMiles renders a distance for use as a tag or log value.
func FormatMiles(miles float64) string {
	return strconv.FormatFloat(miles, 'f', 2, 64)
}
