package types

import (
	"time"

	"github.com/google/uuid"
)

// LinkedAccount records an external identity (e.g. Google) attached to a
// user. The (provider, provider_user_id) pair is globally unique.
type LinkedAccount struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	Provider       string    `gorm:"uniqueIndex:idx_provider_subject;not null;column:provider" json:"provider"`
	ProviderUserID string    `gorm:"uniqueIndex:idx_provider_subject;not null;column:provider_user_id" json:"-"`
	CreatedAt      time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (LinkedAccount) TableName() string {
	return "linked_account"
}
