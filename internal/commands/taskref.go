package commands

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses the task id from the first positional argument.
// Ids are positive decimal integers; "#3" is accepted as "3".
func ParseTaskID(args []string) (int, error) {
	if len(args) == 0 || args[0] == "" {
		return 0, ErrTaskIDRequired
	}

	raw := args[0]
	digits := raw
	if digits[0] == '#' {
		digits = digits[1:]
	}
	if !isAllDigits(digits) {
		return 0, fmt.Errorf("invalid task id: %s", raw)
	}

	id, err := strconv.Atoi(digits)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", raw)
	}
	return id, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
