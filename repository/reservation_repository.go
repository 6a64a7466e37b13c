package repository

import (
	"context"
	"errors"

	"natura-salon-backend/models"
)

var (
	// ErrSlotTaken reports that another reservation already holds the slot.
	ErrSlotTaken = errors.New("slot already reserved")
	ErrNotFound  = errors.New("reservation not found")
)

// ListFilter narrows List. A zero value lists everything.
type ListFilter struct {
	Date string
}

// ReservationRepository persists reservations. Create must be atomic with
// respect to the slot: of two concurrent creates for one slot exactly one
// succeeds and the other returns ErrSlotTaken.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	// FindBySlot returns ErrNotFound when the slot is free.
	FindBySlot(ctx context.Context, slot models.Slot) (*models.Reservation, error)
	GetByID(ctx context.Context, id uint) (*models.Reservation, error)
	// List returns reservations ordered by date then time.
	List(ctx context.Context, filter ListFilter) ([]models.Reservation, error)
	Delete(ctx context.Context, id uint) error
	Ping(ctx context.Context) error
}
