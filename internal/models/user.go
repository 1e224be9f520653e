package models

import (
	"time"
)

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:250;not null" json:"name"`
	Email       string    `gorm:"size:250;uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"size:100;not null" json:"-"` // bcrypt hash
	LastRequest int64     `gorm:"not null;default:0" json:"last_request"` // Unix seconds
	CreatedAt   time.Time `json:"created_at"`
}
