package model

import "time"

// Session is a persisted login: the API token and the username it was issued for.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Token     string    `gorm:"size:256;not null"`
	Username  string    `gorm:"size:150;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`
}
