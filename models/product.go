package models

import "gorm.io/gorm"

type Product struct {
	gorm.Model
	Name       string `gorm:"not null"`
	CategoryID *uint
	Category   *Category
	Variant    string
	Price      uint `gorm:"not null"`
	Stock      uint `gorm:"not null;default:0"`
	ImageURL   string
	Sales      []Sale `gorm:"constraint:OnDelete:CASCADE;"`
}
