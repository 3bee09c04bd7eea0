package models

import (
	"encoding/json"
	"time"
)

// PreviewDraft holds the most recently generated landing page for a
// user so the preview screen survives reloads. One row per user.
type PreviewDraft struct {
	ID        string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID   string `gorm:"uniqueIndex;not null" json:"user_id"`
	PageJSON string `gorm:"type:text;not null" json:"-"`
}

func (PreviewDraft) TableName() string {
	return "preview_drafts"
}

// Page decodes the stored landing page.
func (d *PreviewDraft) Page() (*LandingPage, error) {
	var page LandingPage
	if err := json.Unmarshal([]byte(d.PageJSON), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SetPage encodes the landing page into the draft.
func (d *PreviewDraft) SetPage(page *LandingPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	d.PageJSON = string(data)
	return nil
}
