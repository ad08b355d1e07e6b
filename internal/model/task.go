package model

import "time"

// Task represents a single to-do item owned by exactly one user.
type Task struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"index;not null"`
	Title  string `gorm:"not null"`
	IsDone bool   `gorm:"default:false"`
	// CreatedDate is set once on insert. UpdatedDate stays nil until the first mutation.
	CreatedDate time.Time `gorm:"not null"`
	UpdatedDate *time.Time
}
