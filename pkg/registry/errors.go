package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by UpdateAvailability when no material has the
	// requested identifier.
	ErrNotFound = errors.New("material not found")

	// ErrUnauthorized is returned by UpdateAvailability when the caller is not
	// the material's owner.
	ErrUnauthorized = errors.New("caller is not the material owner")
)

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized reports whether err is, or wraps, ErrUnauthorized.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// PublishError reports that a change was stored but its event could not be
// published. The mutation it follows is not rolled back.
type PublishError struct {
	Kind EventKind
	ID   MaterialID
	Err  error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("material %d stored but %s event not published: %v", e.ID, e.Kind, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// IsPublishError reports whether err is, or wraps, a *PublishError.
func IsPublishError(err error) bool {
	var pe *PublishError
	return errors.As(err, &pe)
}
