package middleware

import (
	"time"

	"page_flow_app_go/db"
	"page_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// AuditProxy records generation-class proxy calls: who asked for what,
// the status they got, and how long the backend took.
func AuditProxy() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			auditCtx := services.AuditContext{
				IPAddress: c.RealIP(),
				UserAgent: c.Request().UserAgent(),
			}
			if user := GetCurrentUser(c); user != nil {
				auditCtx.UserID = user.ID
				auditCtx.CompanyID = user.CompanyID
			}

			services.RecordProxyAudit(db.DB, auditCtx,
				c.Path(), c.Request().Method, c.Response().Status, duration)

			return err
		}
	}
}
