package models

import "time"

type User struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username          string    `gorm:"not null" json:"username"`
	Email             string    `gorm:"uniqueIndex;not null" json:"email"`
	Password          string    `json:"-"` // empty for social-login-only accounts
	Contact           string    `json:"contact"`
	DOB               string    `json:"dob"`
	Provider          string    `json:"provider"` // "local", "google" or "facebook"
	ProfilePictureURL string    `json:"profile_picture_url"`
	Address           Address   `gorm:"embedded" json:"address"`
	Orders            []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"orders,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Address model embedded in User
type Address struct {
	Line1   string `json:"line1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}
