package models

import (
	"time"

	"gorm.io/gorm"
)

type Sale struct {
	gorm.Model
	ProductID uint `gorm:"not null"`
	Product   Product
	Quantity  uint      `gorm:"not null"`
	UnitPrice uint      `gorm:"not null"`
	SaleDate  time.Time `gorm:"not null"`
}

// Total is derived on read so historical totals stay stable after price edits.
func (s *Sale) Total() uint {
	return s.Quantity * s.UnitPrice
}
