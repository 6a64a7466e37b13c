package models

import "time"

const DateLayout = "2006-01-02"

// Reservation is one booked slot. A slot is the (PreferredDate, PreferredTime)
// pair and is unique across the table.
type Reservation struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Phone         string    `gorm:"type:varchar(32);not null" json:"phone"`
	Email         string    `gorm:"not null" json:"email"`
	PreferredDate string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_reservation_slot,priority:1" json:"preferredDate"`
	PreferredTime string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_reservation_slot,priority:2" json:"preferredTime"`
	Menu          string    `gorm:"not null" json:"menu"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Slot identifies a bookable appointment.
type Slot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func (r *Reservation) Slot() Slot {
	return Slot{Date: r.PreferredDate, Time: r.PreferredTime}
}

