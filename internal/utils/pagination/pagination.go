package pagination

import "fmt"

const (
	// DefaultLimit is used when the caller does not ask for a page size.
	DefaultLimit = 200
	// MaxLimit is the largest page a caller may request.
	MaxLimit = 500
)

// Params is an offset-based page request.
type Params struct {
	Limit  int
	Offset int
}

// New builds Params from raw query values. A zero limit means DefaultLimit.
func New(limit, offset int) (Params, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return Params{}, fmt.Errorf("limit must be between 1 and %d", MaxLimit)
	}
	if offset < 0 {
		return Params{}, fmt.Errorf("offset must not be negative")
	}
	return Params{Limit: limit, Offset: offset}, nil
}
