package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"natura-salon-backend/models"
)

const pgUniqueViolation = "23505"

// GormReservationRepository stores reservations in a relational database.
// The unique index on (preferred_date, preferred_time) decides conflicts.
type GormReservationRepository struct {
	db *gorm.DB
}

func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

func (r *GormReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	err := r.db.WithContext(ctx).Create(reservation).Error
	if isDuplicateKey(err) {
		return ErrSlotTaken
	}
	return err
}

func (r *GormReservationRepository) FindBySlot(ctx context.Context, slot models.Slot) (*models.Reservation, error) {
	var res models.Reservation
	err := r.db.WithContext(ctx).
		Where("preferred_date = ? AND preferred_time = ?", slot.Date, slot.Time).
		First(&res).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &res, nil
}

func (r *GormReservationRepository) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &res, nil
}

func (r *GormReservationRepository) List(ctx context.Context, filter ListFilter) ([]models.Reservation, error) {
	q := r.db.WithContext(ctx).Model(&models.Reservation{})
	if filter.Date != "" {
		q = q.Where("preferred_date = ?", filter.Date)
	}

	reservations := []models.Reservation{}
	if err := q.Order("preferred_date ASC, preferred_time ASC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *GormReservationRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Reservation{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormReservationRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// isDuplicateKey also inspects the raw postgres error for connections opened
// without TranslateError.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
