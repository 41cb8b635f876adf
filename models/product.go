package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Category    string    `gorm:"index" json:"category"`
	Type        string    `gorm:"default:'veg'" json:"type"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Image       string    `json:"image"`
	Stock       int       `json:"stock"`
	Badge       string    `json:"badge"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
