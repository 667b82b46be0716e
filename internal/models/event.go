package models

import "time"

type Event struct {
	ID          string    `json:"id"`
	EventName   string    `json:"event_name"`
	Location    string    `json:"location"`
	DateTime    time.Time `json:"date_time"`
	Description string    `json:"description"`
	Price       *float64  `json:"price,omitempty"`
	CreatorID   string    `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type EventRequest struct {
	EventName   string    `json:"event_name" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	DateTime    time.Time `json:"date_time" binding:"required"`
	Description string    `json:"description"`
	Price       *float64  `json:"price"`
}
