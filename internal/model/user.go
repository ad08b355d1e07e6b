package model

import "time"

// User is a registered account. PasswordHash never leaves the service layer.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	FullName     string
	PasswordHash string `gorm:"not null"`
	IsActive     bool   `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
