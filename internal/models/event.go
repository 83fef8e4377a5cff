package models

import (
	"time"
)

type Event struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Date        string    `json:"date" gorm:"type:varchar(10);not null"` // YYYY-MM-DD
	Time        string    `json:"time" gorm:"type:varchar(5);not null"`  // HH:MM
	Location    string    `json:"location" gorm:"not null"`
	CreatedBy   uint      `json:"created_by" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RSVP is a membership row in an event's attendee set.
type RSVP struct {
	EventID   uint      `json:"event_id" gorm:"primaryKey;autoIncrement:false"`
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false;index"`
	Event     *Event    `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

func (RSVP) TableName() string {
	return "rsvps"
}

type EventRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required,event_date"`
	Time        string `json:"time" validate:"required,event_time"`
	Location    string `json:"location" validate:"required"`
}

// EventSummary is an event as seen by a particular viewer.
type EventSummary struct {
	Event
	AttendeeCount int64 `json:"attendee_count"`
	RSVPed        bool  `json:"rsvped"`
}

type RSVPResult struct {
	EventID uint `json:"event_id"`
	RSVPed  bool `json:"rsvped"`
}
