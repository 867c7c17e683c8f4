package models

import "time"

type Comment struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	PingID    int       `gorm:"not null;index" json:"ping_id"`
	Content   string    `gorm:"not null" json:"content"`
	ImageData []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
