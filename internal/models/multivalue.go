package models

import "strings"

// Checkbox answers travel as a single comma-joined string. That encoding is
// a contract with existing clients, so it is kept at the boundary; these
// helpers are the one place that knows the delimiter.

const multiValueSeparator = ","

func EncodeMultiValue(values []string) string {
	return strings.Join(values, multiValueSeparator)
}

func DecodeMultiValue(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, multiValueSeparator)
}
