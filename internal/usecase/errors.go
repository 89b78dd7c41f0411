package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrSignInRequired        = errors.New("sign in required")
	ErrStoreUnavailable      = errors.New("prediction store unavailable")
	ErrFetchFailed           = errors.New("fetch failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// storeError marks a failed write so callers keep the draft and offer a retry.
func storeError(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// fetchError marks a failed read; readers degrade to an empty result.
func fetchError(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrFetchFailed, what, err)
}
