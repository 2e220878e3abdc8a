// Package cursor implements the server side of the id-cursor pagination
// contract used by the chat polling endpoints. Pagination is id-based, not
// offset-based, so pages stay correct while new messages are appended
// between polls.
package cursor

import "strconv"

// Direction of a fetch relative to the cursor id.
const (
	DirectionNewer = "newer"
	DirectionOlder = "older"
)

const (
	// DefaultLimit is the page size used when the client sends none.
	DefaultLimit = 50
	// MaxLimit caps client-supplied page sizes.
	MaxLimit = 100
)

// ParseID parses a cursor id from its query-string form. Malformed or
// negative values clamp to 0, the "no cursor" sentinel, so a confused client
// restarts from the beginning instead of breaking its polling loop.
func ParseID(raw string) uint {
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return uint(id)
}

// ParseLimit parses a page size, clamping out-of-range values to the default.
func ParseLimit(raw string) int {
	if raw == "" {
		return DefaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > MaxLimit {
		return DefaultLimit
	}
	return limit
}

// ParseDirection normalizes a direction parameter; anything that is not
// "older" means newer.
func ParseDirection(raw string) string {
	if raw == DirectionOlder {
		return DirectionOlder
	}
	return DirectionNewer
}

// HasMore signals whether another page likely exists. A full page means more
// may follow; this is the protocol's approximation, the exact answer needs a
// count query.
func HasMore(returned, limit int) bool {
	return returned == limit
}
