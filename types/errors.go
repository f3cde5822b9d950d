package types

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain marks a physically invalid input, such as gamma <= 1 or a negative pressure.
	ErrDomain = errors.New("domain error")

	// ErrNoSupersonicRoot is returned when the area-Mach relation has no root M > 1 inside the bracket.
	ErrNoSupersonicRoot = errors.New("no supersonic root in bracket")

	// ErrSelfCheck indicates the recomputed thrust did not reproduce the target thrust.
	ErrSelfCheck = errors.New("self-consistency check failed")

	// ErrConfiguration indicates a malformed requirement, input file or record.
	ErrConfiguration = errors.New("configuration error")

	// ErrMissingField indicates a structured record lacks a required field.
	ErrMissingField = errors.New("missing field")
)

type DomainError struct {
	Quantity   string
	Value      float64
	Constraint string
}

func NewDomainError(quantity string, value float64, constraint string) *DomainError {
	return &DomainError{Quantity: quantity, Value: value, Constraint: constraint}
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s = %g, must satisfy %s", ErrDomain, e.Quantity, e.Value, e.Constraint)
}

func (e *DomainError) Unwrap() error {
	return ErrDomain
}

type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Path)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}
