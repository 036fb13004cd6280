package models

import (
	"time"
)

// AssetUpdate is a timestamped note on an asset. AuthorID is nullable since
// the create routes are reachable without a session.
type AssetUpdate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null;type:varchar(140)" json:"title"`
	Content   string    `gorm:"not null;type:text" json:"content"`
	AuthorID  *uint     `gorm:"index" json:"author_id,omitempty"`
	AssetID   uint      `gorm:"not null;index" json:"asset_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Asset  Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

func (AssetUpdate) TableName() string {
	return "asset_updates"
}
