package utils

import (
	"strconv"
	"strings"
)

// ParseQueryInt converts a query value to int, returning defaultValue when
// the value is empty. Malformed numbers are reported as InvalidRequest.
func ParseQueryInt(name, value string, defaultValue int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultValue, nil
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return 0, InvalidRequest("parameter %s must be an integer", name)
	}

	return result, nil
}

// ParseQueryBool is ParseQueryInt for booleans. The value is required.
func ParseQueryBool(name, value string) (bool, error) {
	result, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, InvalidRequest("parameter %s must be true or false", name)
	}
	return result, nil
}
