package models

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"
)

// User is a registered account. PasswordHash holds a bcrypt hash and is
// never serialized.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null;type:varchar(64)" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null;type:varchar(120)" json:"email"`
	PasswordHash string    `gorm:"not null;type:varchar(255)" json:"-"`
	AboutMe      string    `gorm:"type:varchar(140)" json:"about_me"`
	LastSeen     time.Time `gorm:"not null" json:"last_seen"`

	AssetUpdates []AssetUpdate `gorm:"foreignKey:AuthorID" json:"asset_updates,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// AvatarURL returns the gravatar identicon URL for the user's email.
func (u *User) AvatarURL(size int) string {
	digest := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(u.Email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon&s=%d", digest, size)
}
