package models

import "time"

type Booking struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	EventID     string    `json:"event_id"`
	BookingDate time.Time `json:"booking_date"`
}
