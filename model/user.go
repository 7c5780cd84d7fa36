package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Unique index names, used to map storage-level duplicate key errors back to
// the offending column.
const (
	IdxUserEmail = "idx_user_email"
)

// User stores an account and its activation state. Status moves
// pending -> approved or pending -> rejected by admin action only.
type User struct {
	gorm.Model
	Name                    string  `gorm:"size:64;not null"`
	Email                   string  `gorm:"uniqueIndex:idx_user_email;size:256;not null"`
	Password                string  `gorm:"size:64;not null"`
	EmailVerified           bool    `gorm:"default:false;not null"`
	VerificationToken       *string `gorm:"size:64;index"`
	VerificationTokenExpiry *time.Time
	Status                  string     `gorm:"size:16;default:pending;not null;index"`
	IsAdmin                 bool       `gorm:"default:false;not null"`
	LastLoginAt             *time.Time `gorm:"index"`
}

func (u *User) IsApproved() bool {
	return u.Status == StatusApproved
}
