package services

import (
	"log"
	"time"

	"page_flow_app_go/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditContext carries the request identity recorded alongside a
// forwarded backend call.
type AuditContext struct {
	UserID    string
	CompanyID string
	IPAddress string
	UserAgent string
}

// RecordProxyAudit writes one audit row for a generation-class proxy
// call. Failures are logged, never propagated: auditing must not break
// the request it describes.
func RecordProxyAudit(db *gorm.DB, ctx AuditContext, path, method string, statusCode int, duration time.Duration) {
	if db == nil {
		return
	}

	entry := models.ProxyAuditLog{
		ID:         uuid.New().String(),
		UserID:     ctx.UserID,
		CompanyID:  ctx.CompanyID,
		Path:       path,
		Method:     method,
		StatusCode: statusCode,
		DurationMS: duration.Milliseconds(),
		IPAddress:  ctx.IPAddress,
		UserAgent:  ctx.UserAgent,
	}

	if err := db.Create(&entry).Error; err != nil {
		log.Printf("[WARNING] Failed to record proxy audit entry for %s: %v", path, err)
	}
}
