package models

import (
	"time"
)

// Post counters reflect the current reaction state of the post's
// associations, not a cumulative event count.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Title     string    `gorm:"size:250;not null" json:"title"`
	Content   string    `gorm:"size:500;not null" json:"content"`
	Liked     int       `gorm:"not null;default:0" json:"liked"`
	Unliked   int       `gorm:"not null;default:0" json:"unliked"`
	CreatedAt time.Time `json:"-"`
}
