package internalerr

import "errors"

// Sentinel errors shared by the store, crawler and facade.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicate        = errors.New("duplicate entry")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// Truncate shortens msg to at most limit runes. Error strings are stored
// on source and run rows, which cap their length.
func Truncate(msg string, limit int) string {
	if limit <= 0 {
		return ""
	}
	n := 0
	for i := range msg {
		if n == limit {
			return msg[:i]
		}
		n++
	}
	return msg
}
