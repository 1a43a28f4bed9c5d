package models

import (
	"time"
)

// User is a registered author, one row in the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                                  // Primary key
	Username    string     `json:"username" db:"username" example:"leo_tolstoy"`                            // Unique public handle, used in profile URLs
	Email       *string    `json:"email,omitempty" db:"email" example:"leo@yasnaya.ru"`                     // Contact address, nullable
	Password    string     `json:"-" db:"password"`                                                         // bcrypt hash, never serialized
	FirstName   string     `json:"firstName,omitempty" db:"first_name" example:"Lev"`                       // Optional display name
	LastName    string     `json:"lastName,omitempty" db:"last_name" example:"Tolstoy"`                     // Optional display name
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`                                  // Disabled accounts cannot sign in
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`                // Registration time
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`                // Last modification time
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2024-04-20T18:00:00Z"` // Set on each successful login, nullable
}
