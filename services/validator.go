package services

import (
	"fmt"
	"strings"
	"time"

	"natura-salon-backend/config"
	"natura-salon-backend/models"
	"natura-salon-backend/utils"
)

// ReservationInput is a submitted booking before validation.
type ReservationInput struct {
	Name          string
	Phone         string
	Email         string
	PreferredDate string
	PreferredTime string
	Menu          string
	Notes         string
}

// ValidationRules holds the configurable parts of validation. A nil Menus
// accepts any non-blank menu.
type ValidationRules struct {
	OpenHour       int
	CloseHour      int
	CloseInclusive bool
	Menus          []string
}

func RulesFromConfig(cfg *config.Config) ValidationRules {
	return ValidationRules{
		OpenHour:       cfg.BusinessHours.OpenHour,
		CloseHour:      cfg.BusinessHours.CloseHour,
		CloseInclusive: cfg.BusinessHours.CloseInclusive,
		Menus:          cfg.MenuKeys(),
	}
}

// withinHours reports whether a booking may start at c.
func (r ValidationRules) withinHours(c utils.Clock) bool {
	if c.Hour < r.OpenHour {
		return false
	}
	if c.Hour < r.CloseHour {
		return true
	}
	return r.CloseInclusive && c.Hour == r.CloseHour && c.Minute == 0 && c.Second == 0
}

func (r ValidationRules) acceptsMenu(menu string) bool {
	if r.Menus == nil {
		return true
	}
	for _, m := range r.Menus {
		if m == menu {
			return true
		}
	}
	return false
}

// ValidateReservation checks every field of in independently and returns
// either a normalized reservation or the full set of field errors. today is
// any instant on the current day in the salon's timezone.
func ValidateReservation(in ReservationInput, today time.Time, rules ValidationRules) (models.Reservation, map[string]string) {
	errs := make(map[string]string)
	res := models.Reservation{
		Name:  strings.TrimSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
		Email: strings.TrimSpace(in.Email),
		Menu:  strings.TrimSpace(in.Menu),
		Notes: in.Notes,
	}

	if res.Name == "" {
		errs["name"] = "Please enter your name"
	}

	if res.Phone == "" {
		errs["phone"] = "Please enter your phone number"
	} else if !utils.ValidatePhone(res.Phone) {
		errs["phone"] = "Phone number may contain digits and hyphens only"
	}

	if res.Email == "" {
		errs["email"] = "Please enter your email address"
	} else if !utils.ValidateEmail(res.Email) {
		errs["email"] = "Email address format is invalid"
	}

	if utils.IsBlank(in.PreferredDate) {
		errs["preferredDate"] = "Please choose a preferred date"
	} else if date, err := utils.ParseDate(in.PreferredDate, today.Location()); err != nil {
		errs["preferredDate"] = "Preferred date must be in YYYY-MM-DD format"
	} else if date.Before(utils.BeginningOfDay(today)) {
		errs["preferredDate"] = "Past dates cannot be selected"
	} else {
		res.PreferredDate = date.Format(models.DateLayout)
	}

	if utils.IsBlank(in.PreferredTime) {
		errs["preferredTime"] = "Please choose a preferred time"
	} else if clock, err := utils.ParseClock(in.PreferredTime); err != nil {
		errs["preferredTime"] = "Preferred time must be in HH:MM format"
	} else if !rules.withinHours(clock) {
		errs["preferredTime"] = fmt.Sprintf("Please choose a time within business hours (%02d:00-%02d:00)", rules.OpenHour, rules.CloseHour)
	} else {
		res.PreferredTime = clock.String()
	}

	if res.Menu == "" {
		errs["menu"] = "Please choose a menu"
	} else if !rules.acceptsMenu(res.Menu) {
		errs["menu"] = "Please choose a menu from the list"
	}

	if len(errs) > 0 {
		return models.Reservation{}, errs
	}
	return res, nil
}
