package models

import (
	"time"
)

// ProxyAuditLog records a generation-class call forwarded to the
// backend service.
type ProxyAuditLog struct {
	ID        string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	UserID     string `gorm:"index" json:"user_id"`
	CompanyID  string `gorm:"index" json:"company_id"`
	Path       string `gorm:"not null" json:"path"`
	Method     string `gorm:"type:varchar(8)" json:"method"`
	StatusCode int    `json:"status_code"`
	DurationMS int64  `json:"duration_ms"`
	IPAddress  string `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent  string `gorm:"type:text" json:"user_agent"`
}

func (ProxyAuditLog) TableName() string {
	return "proxy_audit_logs"
}
