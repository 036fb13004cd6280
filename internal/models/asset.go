package models

import (
	"time"
)

// Asset is a tracked investment idea. Assets are immutable after creation;
// there is no edit or delete flow.
type Asset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;type:varchar(140)" json:"name"`
	Thesis    string    `gorm:"not null;type:text" json:"thesis"`
	Type      string    `gorm:"type:varchar(140)" json:"type"`
	Class     string    `gorm:"type:varchar(140)" json:"class"`
	CreatedAt time.Time `json:"created_at"`
}

func (Asset) TableName() string {
	return "assets"
}
