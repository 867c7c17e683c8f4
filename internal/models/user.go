package models

import "time"

// Roles assignable at registration. Anything other than admin gets no
// special treatment by the handlers.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	Role      string    `gorm:"not null;default:student" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"` // optional, defaults to student
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
