package repository

import "errors"

// ErrNotFound is wrapped by writes that matched no row.
var ErrNotFound = errors.New("record not found")

func uuidStrings[T interface{ String() string }](ids []T) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
