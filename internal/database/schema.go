package database

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatSession struct {
	SessionID     string         `gorm:"primaryKey;size:255"`
	RecruiterInfo datatypes.JSON // {"company": "...", "email": "...", "name": "..."}
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ChatTurn rows are append-only; insertion order is conversation order.
type ChatTurn struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"index;size:255;not null"`
	Role      string `gorm:"size:20;not null"` // 'user' or 'assistant'
	Content   string `gorm:"not null"`
	Timestamp time.Time
}
