package errors

import (
	"strconv"

	"github.com/google/uuid"
)

// ValidateNodeIndex checks that the string names a node inside a graph
// of the given size and returns the parsed index.
func ValidateNodeIndex(s string, size int) (int, error) {
	if s == "" {
		return 0, New(ErrCodeInvalidNode, "node index cannot be empty")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, New(ErrCodeInvalidNode, "node index must be an integer: %q", s)
	}
	if n < 0 || n >= size {
		return 0, New(ErrCodeInvalidNode, "node index %d out of range [0,%d)", n, size)
	}
	return n, nil
}

// ValidateAlgorithm checks an algorithm name against the allowed set.
func ValidateAlgorithm(name string, allowed ...string) error {
	if name == "" {
		return New(ErrCodeInvalidAlgo, "algorithm cannot be empty")
	}
	for _, a := range allowed {
		if name == a {
			return nil
		}
	}
	return New(ErrCodeInvalidAlgo, "unknown algorithm: %q", name)
}

// ValidateFormat checks a render format against the allowed set.
func ValidateFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unknown format: %q", format)
}

// ValidateGraphID checks that the string is a well-formed graph ID.
// Graph IDs are UUIDs assigned at upload time.
func ValidateGraphID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "graph ID cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return New(ErrCodeInvalidID, "malformed graph ID: %q", id)
	}
	return nil
}
