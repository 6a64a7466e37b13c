// services/reminder_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"natura-salon-backend/config"
	"natura-salon-backend/models"
	"natura-salon-backend/repository"
	"natura-salon-backend/utils"
)

const (
	reminderSent   = "sent"
	reminderFailed = "failed"
)

// ReminderService texts customers the day before their appointment. Each
// reservation is attempted once; attempts are recorded in reminder_logs when a
// database is available and in memory otherwise.
type ReminderService struct {
	repo   repository.ReservationRepository
	sender SMSSender
	db     *gorm.DB

	salon  string
	region string
	menus  map[string]string
	loc    *time.Location
	now    func() time.Time

	mu       sync.Mutex
	reminded map[uint]bool
	cron     *cron.Cron
}

// NewReminderService builds the service. db may be nil.
func NewReminderService(repo repository.ReservationRepository, sender SMSSender, db *gorm.DB, cfg *config.Config) *ReminderService {
	return &ReminderService{
		repo:     repo,
		sender:   sender,
		db:       db,
		salon:    cfg.App.Name,
		region:   cfg.Reminders.PhoneRegion,
		menus:    menuNames(cfg.Menu.Items),
		loc:      cfg.Location(),
		now:      time.Now,
		reminded: make(map[uint]bool),
	}
}

// StartScheduler runs SendDailyReminders on spec in the salon's timezone.
func (s *ReminderService) StartScheduler(spec string) error {
	c := cron.New(cron.WithLocation(s.loc))
	if _, err := c.AddFunc(spec, func() {
		if _, err := s.SendDailyReminders(context.Background()); err != nil {
			log.Error().Err(err).Msg("Daily reminder run failed")
		}
	}); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}

	c.Start()
	s.cron = c
	log.Info().Str("schedule", spec).Msg("Reminder scheduler started")
	return nil
}

// Stop halts the scheduler and waits for a running job.
func (s *ReminderService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// SendDailyReminders reminds every reservation booked for tomorrow and
// returns how many messages went out.
func (s *ReminderService) SendDailyReminders(ctx context.Context) (int, error) {
	tomorrow := utils.BeginningOfDay(s.now().In(s.loc)).AddDate(0, 0, 1).Format(models.DateLayout)

	reservations, err := s.repo.List(ctx, repository.ListFilter{Date: tomorrow})
	if err != nil {
		return 0, fmt.Errorf("list reservations for %s: %w", tomorrow, err)
	}

	sent := 0
	for _, res := range reservations {
		done, err := s.alreadyReminded(ctx, res.ID)
		if err != nil {
			log.Error().Err(err).Uint("reservation_id", res.ID).Msg("Failed to check reminder log")
			continue
		}
		if done {
			continue
		}
		if s.remind(ctx, res) {
			sent++
		}
	}

	log.Info().Str("date", tomorrow).Int("candidates", len(reservations)).Int("sent", sent).Msg("Daily reminders processed")
	return sent, nil
}

func (s *ReminderService) remind(ctx context.Context, res models.Reservation) bool {
	entry := models.ReminderLog{
		ReservationID: res.ID,
		Phone:         res.Phone,
		Message:       s.reminderMessage(res),
		Channel:       "sms",
		Status:        reminderSent,
		SentAt:        s.now().UTC(),
	}

	to, err := ToE164(res.Phone, s.region)
	if err == nil {
		entry.ProviderID, err = s.sender.SendSMS(ctx, to, entry.Message)
	}
	if err != nil {
		log.Warn().Err(err).Uint("reservation_id", res.ID).Msg("Failed to send reminder")
		entry.Status = reminderFailed
		entry.ErrorMessage = err.Error()
	}

	s.record(ctx, entry)
	return entry.Status == reminderSent
}

func (s *ReminderService) reminderMessage(res models.Reservation) string {
	return fmt.Sprintf("%s: reminder of your %s appointment tomorrow (%s) at %s. We look forward to seeing you.",
		s.salon, menuLabel(s.menus, res.Menu), res.PreferredDate, res.PreferredTime)
}

func (s *ReminderService) alreadyReminded(ctx context.Context, id uint) (bool, error) {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.reminded[id], nil
	}

	var entry models.ReminderLog
	err := s.db.WithContext(ctx).Where("reservation_id = ?", id).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *ReminderService) record(ctx context.Context, entry models.ReminderLog) {
	if s.db == nil {
		s.mu.Lock()
		s.reminded[entry.ReservationID] = true
		s.mu.Unlock()
		return
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Error().Err(err).Uint("reservation_id", entry.ReservationID).Msg("Failed to log reminder")
	}
}
