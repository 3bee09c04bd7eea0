package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"page_flow_app_go/config"
	"page_flow_app_go/db"
	"page_flow_app_go/middleware"
	"page_flow_app_go/models"
	"page_flow_app_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSessionSecret = "handler-test-secret-0123456789abcdef"

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared-memory name isolates tests while keeping the shared
	// cache available for goroutines spawned by handlers.
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	if services.Storage == nil {
		services.Storage = services.NewLocalStorage("tmp/test_uploads")
	}

	err = testDB.AutoMigrate(
		&models.Session{},
		&models.PreviewDraft{},
		&models.ProxyAuditLog{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:       "test",
		SessionCookieName: "page_flow_session",
		SessionSecret:     testSessionSecret,
		FallbackDomain:    "https://fallback.example",
		AppURL:            "http://localhost:3000",
		EmailTestMode:     true,
	}
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set(middleware.ContextKeyConfig, testConfig())

	return e, c, rec
}

// newBackendServer starts a fake backend and returns a client wired to
// it. The server is torn down with the test.
func newBackendServer(t *testing.T, handler http.HandlerFunc) *services.BackendClient {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return services.NewBackendClient(&config.Config{
		BackendAPIURL:     srv.URL,
		BackendTimeout:    5 * time.Second,
		GenerationTimeout: 2 * time.Second,
	})
}

func loginTestUser(c echo.Context) *models.SessionUser {
	user := &models.SessionUser{
		ID:        "user-123",
		Email:     "owner@example.com",
		CompanyID: "company-456",
		Role:      "owner",
	}
	c.Set(middleware.ContextKeyUser, user)
	return user
}
