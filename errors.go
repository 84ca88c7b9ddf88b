package main

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDateFormat is returned when a birthday is not a valid YYYY-MM-DD date.
	ErrInvalidDateFormat = errors.New("invalid birthday format")

	// ErrLifespanExceeded is returned when the weeks lived do not fit the grid.
	ErrLifespanExceeded = errors.New("lifespan exceeded")

	ErrLifeExpectancyRange = fmt.Errorf("life expectancy must be between %d and %d years", minLifeExpectancy, maxLifeExpectancy)
	ErrInvalidSymbol       = errors.New("symbol must be a single visible glyph")
	ErrMissingBirthday     = errors.New("no birthday given and no active profile, use --birthday or 'profile save'")
	ErrProfileNotFound     = errors.New("profile not found")
)

// DateError keeps the rejected input and the underlying parse failure.
type DateError struct {
	Input string
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid birthday format received: %v", e.Err)
}

func (e *DateError) Unwrap() error { return e.Err }

func (e *DateError) Is(target error) bool { return target == ErrInvalidDateFormat }

type LifespanError struct {
	LifeExpectancy int
	WeeksLived     int
}

func (e *LifespanError) Error() string {
	return fmt.Sprintf("exceeded expected lifespan of %d years", e.LifeExpectancy)
}

func (e *LifespanError) Is(target error) bool { return target == ErrLifespanExceeded }
