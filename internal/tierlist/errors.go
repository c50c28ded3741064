package tierlist

import (
	"errors"
	"fmt"
)

// InvalidItemError is returned when an item cannot be built from the given input.
type InvalidItemError struct {
	Reason string
}

func (e InvalidItemError) Error() string {
	return "invalid item: " + e.Reason
}

// InvalidTierError is returned when a tier name is empty after trimming or
// is not valid UTF-8.
type InvalidTierError struct {
	Name   string
	Reason string
}

func (e InvalidTierError) Error() string {
	return fmt.Sprintf("invalid tier name %q: %s", e.Name, e.Reason)
}

// NotFoundError reports a tier, item or container id that does not resolve.
type NotFoundError struct {
	Resource string // "tier", "item" or "container"
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID '%s' not found", e.Resource, e.ID)
}

// IsInvalidItem reports whether err is, or wraps, an InvalidItemError.
func IsInvalidItem(err error) bool {
	var e InvalidItemError
	return errors.As(err, &e)
}

// IsInvalidTier reports whether err is, or wraps, an InvalidTierError.
func IsInvalidTier(err error) bool {
	var e InvalidTierError
	return errors.As(err, &e)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var e NotFoundError
	return errors.As(err, &e)
}
