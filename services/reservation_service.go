package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"natura-salon-backend/models"
	"natura-salon-backend/repository"
	"natura-salon-backend/utils"
)

const notifyTimeout = 30 * time.Second

type ReservationService struct {
	repo     repository.ReservationRepository
	rules    ValidationRules
	loc      *time.Location
	now      func() time.Time
	notifier Notifier
}

type Option func(*ReservationService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *ReservationService) { s.now = now }
}

// WithNotifier sets who is told about new reservations.
func WithNotifier(n Notifier) Option {
	return func(s *ReservationService) { s.notifier = n }
}

func NewReservationService(repo repository.ReservationRepository, rules ValidationRules, loc *time.Location, opts ...Option) *ReservationService {
	if loc == nil {
		loc = time.UTC
	}
	s := &ReservationService{
		repo:     repo,
		rules:    rules,
		loc:      loc,
		now:      time.Now,
		notifier: NopNotifier{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates in and books its slot. The FindBySlot lookup only gives an
// early answer; the repository's atomic Create is what rejects a double booking.
func (s *ReservationService) Create(ctx context.Context, in ReservationInput) (*models.Reservation, error) {
	res, fieldErrs := ValidateReservation(in, s.now().In(s.loc), s.rules)
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	slot := res.Slot()
	if _, err := s.repo.FindBySlot(ctx, slot); err == nil {
		return nil, &ConflictError{Slot: slot}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, &StorageError{Op: "check slot", Err: err}
	}

	if err := s.repo.Create(ctx, &res); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, &ConflictError{Slot: slot}
		}
		return nil, &StorageError{Op: "create reservation", Err: err}
	}

	log.Info().
		Uint("reservation_id", res.ID).
		Str("date", res.PreferredDate).
		Str("time", res.PreferredTime).
		Str("menu", res.Menu).
		Msg("Reservation created")

	go s.notify(res)

	return &res, nil
}

func (s *ReservationService) notify(res models.Reservation) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := s.notifier.ReservationCreated(ctx, res); err != nil {
		log.Error().Err(err).Uint("reservation_id", res.ID).Msg("Failed to send reservation confirmation")
	}
}

// List returns reservations, optionally only those on date (YYYY-MM-DD).
func (s *ReservationService) List(ctx context.Context, date string) ([]models.Reservation, error) {
	filter := repository.ListFilter{}
	if date != "" {
		d, err := utils.ParseDate(date, s.loc)
		if err != nil {
			return nil, &ValidationError{Fields: map[string]string{"date": "Date must be in YYYY-MM-DD format"}}
		}
		filter.Date = d.Format(models.DateLayout)
	}

	reservations, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, &StorageError{Op: "list reservations", Err: err}
	}
	return reservations, nil
}

func (s *ReservationService) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, &StorageError{Op: "get reservation", Err: err}
	}
	return res, nil
}

func (s *ReservationService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrReservationNotFound
	}
	if err != nil {
		return &StorageError{Op: "delete reservation", Err: err}
	}
	log.Info().Uint("reservation_id", id).Msg("Reservation cancelled")
	return nil
}

func (s *ReservationService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
