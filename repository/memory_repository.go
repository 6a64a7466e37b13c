package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"natura-salon-backend/models"
)

// MemoryReservationRepository keeps reservations in process memory. Ids come
// from a counter that starts at 1 and never reuses values. Nothing survives a
// restart.
type MemoryReservationRepository struct {
	mu           sync.RWMutex
	reservations []models.Reservation
	slots        map[models.Slot]uint
	nextID       uint
	now          func() time.Time
}

func NewMemoryReservationRepository() *MemoryReservationRepository {
	return &MemoryReservationRepository{
		slots:  make(map[models.Slot]uint),
		nextID: 1,
		now:    time.Now,
	}
}

func (r *MemoryReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	slot := reservation.Slot()
	if _, taken := r.slots[slot]; taken {
		return ErrSlotTaken
	}

	reservation.ID = r.nextID
	r.nextID++
	reservation.CreatedAt = r.now().UTC()

	r.reservations = append(r.reservations, *reservation)
	r.slots[slot] = reservation.ID
	return nil
}

func (r *MemoryReservationRepository) FindBySlot(ctx context.Context, slot models.Slot) (*models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.slots[slot]
	if !ok {
		return nil, ErrNotFound
	}
	return r.get(id)
}

func (r *MemoryReservationRepository) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.get(id)
}

func (r *MemoryReservationRepository) get(id uint) (*models.Reservation, error) {
	if i := r.indexOf(id); i >= 0 {
		found := r.reservations[i]
		return &found, nil
	}
	return nil, ErrNotFound
}

func (r *MemoryReservationRepository) indexOf(id uint) int {
	for i := range r.reservations {
		if r.reservations[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *MemoryReservationRepository) List(ctx context.Context, filter ListFilter) ([]models.Reservation, error) {
	r.mu.RLock()
	out := make([]models.Reservation, 0, len(r.reservations))
	for _, res := range r.reservations {
		if filter.Date != "" && res.PreferredDate != filter.Date {
			continue
		}
		out = append(out, res)
	}
	r.mu.RUnlock()

	// Canonical YYYY-MM-DD and HH:MM strings sort chronologically.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PreferredDate != out[j].PreferredDate {
			return out[i].PreferredDate < out[j].PreferredDate
		}
		return out[i].PreferredTime < out[j].PreferredTime
	})
	return out, nil
}

func (r *MemoryReservationRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	delete(r.slots, r.reservations[i].Slot())
	r.reservations = append(r.reservations[:i], r.reservations[i+1:]...)
	return nil
}

func (r *MemoryReservationRepository) Ping(ctx context.Context) error {
	return nil
}
