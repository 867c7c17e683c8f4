package models

import "time"

// Ping is a short feed post with an optional compressed image stored inline.
type Ping struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	UserID       int       `gorm:"not null;index" json:"user_id"`
	User         User      `gorm:"foreignKey:UserID" json:"-"`
	Content      string    `gorm:"not null" json:"content"`
	Category     string    `gorm:"not null;default:Other" json:"category"`
	LocationName string    `json:"location_name,omitempty"`
	ImageData    []byte    `json:"-"` // re-encoded JPEG, nil when no upload
	Upvotes      int       `gorm:"not null;default:0" json:"upvotes"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
