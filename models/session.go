package models

import (
	"time"
)

type Session struct {
	ID        string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID    string    `gorm:"not null;index" json:"user_id"`
	Email     string    `gorm:"not null" json:"email"`
	CompanyID string    `gorm:"index" json:"company_id"`
	Role      string    `json:"role"`
	Token     string    `gorm:"uniqueIndex;not null;type:varchar(128)" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	IPAddress string    `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent string    `gorm:"type:text" json:"user_agent"`
}

// TableName specifies the table name for Session model
func (Session) TableName() string {
	return "sessions"
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// SessionUser is the per-request view of the logged-in user, derived
// from the session cookie. Read per request, never mutated here.
type SessionUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CompanyID string `json:"companyId"`
	Role      string `json:"role,omitempty"`
}
