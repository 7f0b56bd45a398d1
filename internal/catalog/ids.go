package catalog

import (
	"github.com/google/uuid"
)

// IsValidID reports whether s is a well-formed document id: a UUID in its
// canonical 36 character form.
func IsValidID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// requireIDs validates ids in order and fails on the first malformed one.
// Pairs are (label, value).
func requireIDs(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if !IsValidID(pairs[i+1]) {
			return invalidArgument("invalid " + pairs[i])
		}
	}
	return nil
}
