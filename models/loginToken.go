package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginToken backs token revocation: a JWT with no matching row is invalid.
type LoginToken struct {
	gorm.Model
	Token          string `gorm:"index"`
	ExpirationTime time.Time
	UserID         uint
	Role           string
}
