package services

import (
	"errors"
	"fmt"

	"natura-salon-backend/models"
)

var ErrReservationNotFound = errors.New("reservation not found")

// ValidationError carries one message per rejected field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// ConflictError reports a slot that is already booked.
type ConflictError struct {
	Slot models.Slot
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot %s %s is already reserved", e.Slot.Date, e.Slot.Time)
}

// StorageError wraps a backend failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
