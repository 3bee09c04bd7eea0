package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"page_flow_app_go/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/nacl/secretbox"
	"gorm.io/gorm"
)

const (
	// SessionTokenLength is the length of the session token in bytes (64 chars hex)
	SessionTokenLength = 32
	// DefaultSessionDuration is the default session duration (7 days)
	DefaultSessionDuration = 7 * 24 * time.Hour
)

// SessionResult is the never-failing session lookup contract. Missing
// cookie, bad seal, and expired session all come back as Success=false.
type SessionResult struct {
	Success bool                `json:"success"`
	Data    *models.SessionUser `json:"data"`
	Error   string              `json:"error,omitempty"`
}

// GenerateSessionToken generates a cryptographically secure random token
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, SessionTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// sealKey derives the fixed-size secretbox key from the session secret.
func sealKey(secret string) [32]byte {
	return sha256.Sum256([]byte(secret))
}

// SealToken encrypts a session token into an opaque cookie value.
func SealToken(secret, token string) (string, error) {
	key := sealKey(secret)

	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(token), &nonce, &key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// UnsealToken decrypts a cookie value back into the session token.
// Any tampering or key mismatch returns an error.
func UnsealToken(secret, sealedValue string) (string, error) {
	key := sealKey(secret)

	sealed, err := base64.RawURLEncoding.DecodeString(sealedValue)
	if err != nil {
		return "", fmt.Errorf("invalid cookie encoding")
	}
	if len(sealed) < 24 {
		return "", fmt.Errorf("invalid cookie payload")
	}

	var nonce [24]byte
	copy(nonce[:], sealed[:24])

	token, ok := secretbox.Open(nil, sealed[24:], &nonce, &key)
	if !ok {
		return "", fmt.Errorf("failed to unseal cookie")
	}
	return string(token), nil
}

// CreateSession creates a session for a user and returns it along with
// the sealed cookie value.
func CreateSession(db *gorm.DB, secret string, user *models.SessionUser, ipAddress, userAgent string) (*models.Session, string, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return nil, "", err
	}

	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Email:     user.Email,
		CompanyID: user.CompanyID,
		Role:      user.Role,
		Token:     token,
		ExpiresAt: time.Now().Add(DefaultSessionDuration),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	if err := db.Create(session).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	sealed, err := SealToken(secret, token)
	if err != nil {
		return nil, "", err
	}

	return session, sealed, nil
}

// ValidateSession validates a session token and returns the session if valid
func ValidateSession(db *gorm.DB, token string) (*models.Session, error) {
	var session models.Session

	err := db.Where("token = ?", token).First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to validate session: %w", err)
	}

	if session.IsExpired() {
		// Delete expired session
		db.Delete(&session)
		return nil, fmt.Errorf("session expired")
	}

	return &session, nil
}

// GetSessionData resolves the sealed cookie value to the logged-in
// user. It never returns a Go error: every failure mode reports
// Success=false with Data=nil.
func GetSessionData(db *gorm.DB, secret, cookieValue string) SessionResult {
	if cookieValue == "" {
		return SessionResult{Success: false, Data: nil, Error: "no session cookie"}
	}
	if db == nil {
		return SessionResult{Success: false, Data: nil, Error: "session store unavailable"}
	}

	token, err := UnsealToken(secret, cookieValue)
	if err != nil {
		return SessionResult{Success: false, Data: nil, Error: err.Error()}
	}

	session, err := ValidateSession(db, token)
	if err != nil {
		return SessionResult{Success: false, Data: nil, Error: err.Error()}
	}

	return SessionResult{
		Success: true,
		Data: &models.SessionUser{
			ID:        session.UserID,
			Email:     session.Email,
			CompanyID: session.CompanyID,
			Role:      session.Role,
		},
	}
}

// DeleteSession deletes a session (logout)
func DeleteSession(db *gorm.DB, token string) error {
	result := db.Where("token = ?", token).Delete(&models.Session{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	return nil
}

// CleanupExpiredSessions removes all expired sessions from the database
func CleanupExpiredSessions(db *gorm.DB) error {
	result := db.Where("expires_at < ?", time.Now()).Delete(&models.Session{})
	if result.Error != nil {
		return fmt.Errorf("failed to cleanup expired sessions: %w", result.Error)
	}
	return nil
}
