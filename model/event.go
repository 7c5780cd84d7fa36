package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
)

// Event is a tournament event owned by the user who created it.
type Event struct {
	gorm.Model
	Name           string    `gorm:"size:128;not null"`
	LogoURL        string    `gorm:"size:256"`
	Date           time.Time `gorm:"not null"`
	PrimaryColor   string    `gorm:"size:16"`
	SecondaryColor string    `gorm:"size:16"`
	Status         string    `gorm:"size:16;default:upcoming;not null"`
	CreatorID      uint      `gorm:"index;not null"`
}
