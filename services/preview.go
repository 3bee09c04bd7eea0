package services

import (
	"fmt"

	"page_flow_app_go/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavePreviewDraft stores the most recently generated landing page for
// a user, replacing any previous draft.
func SavePreviewDraft(db *gorm.DB, userID string, page *models.LandingPage) (*models.PreviewDraft, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	draft := models.PreviewDraft{}
	err := db.Where("user_id = ?", userID).First(&draft).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("failed to load preview draft: %w", err)
		}
		draft = models.PreviewDraft{
			ID:     uuid.New().String(),
			UserID: userID,
		}
	}

	if err := draft.SetPage(page); err != nil {
		return nil, fmt.Errorf("failed to encode preview draft: %w", err)
	}

	if err := db.Save(&draft).Error; err != nil {
		return nil, fmt.Errorf("failed to save preview draft: %w", err)
	}
	return &draft, nil
}

// GetPreviewDraft returns the user's current draft, or nil when none
// exists.
func GetPreviewDraft(db *gorm.DB, userID string) (*models.PreviewDraft, error) {
	var draft models.PreviewDraft
	err := db.Where("user_id = ?", userID).First(&draft).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load preview draft: %w", err)
	}
	return &draft, nil
}
