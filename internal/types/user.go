package types

import (
	"time"

	"github.com/google/uuid"
)

// User is an account record. Password holds a bcrypt hash and is empty for
// accounts that only ever signed in through an external provider.
type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"not null;column:name" json:"name"`
	Email           string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Phone           string    `gorm:"column:phone" json:"phone,omitempty"`
	Password        string    `gorm:"column:password" json:"-"`
	ProfileImageKey string    `gorm:"column:profile_image_key" json:"-"`
	ProfileImageURL string    `gorm:"column:profile_image_url" json:"profile_image_url,omitempty"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}

// HasPassword reports whether the account carries a credential hash. Clients
// use this to hide password management for OAuth-only accounts.
func (u *User) HasPassword() bool {
	return u != nil && u.Password != ""
}
