package types

import (
	"time"

	"github.com/google/uuid"
)

// SttConfiguration stores a user's speech-to-text selection. The unique
// index on user_id is what guarantees at most one row per user; the repo
// upserts against it rather than doing a find-then-insert.
type SttConfiguration struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:user_id" json:"user_id"`
	Provider  string    `gorm:"not null;column:provider" json:"provider"`
	Model     string    `gorm:"not null;column:model" json:"model"`
	Language  string    `gorm:"not null;column:language" json:"language"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (SttConfiguration) TableName() string {
	return "stt_configuration"
}
