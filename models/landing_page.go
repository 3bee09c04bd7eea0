package models

import (
	"encoding/json"
	"sort"
	"time"
)

// LandingPage is the frontend copy of a backend-owned landing page.
// The backend sends `_id` and RFC3339 date strings; UnmarshalJSON
// normalizes both so the rest of the app only sees this shape.
type LandingPage struct {
	ID               string               `json:"id"`
	Title            string               `json:"title"`
	BusinessName     string               `json:"businessName"`
	BusinessOverview string               `json:"businessOverview"`
	TargetAudience   string               `json:"targetAudience"`
	BrandTone        string               `json:"brandTone"`
	WebsiteURL       string               `json:"websiteUrl"`
	Status           string               `json:"status,omitempty"`
	Tags             []string             `json:"tags"`
	Sections         []LandingPageSection `json:"sections"`
	Settings         map[string]any       `json:"settings,omitempty"`
	Analytics        map[string]any       `json:"analytics,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

// LandingPageSection is one ordered content block of a landing page.
// Order defines render sequence; uniqueness and contiguity are not enforced.
type LandingPageSection struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Content    string         `json:"content"`
	Order      int            `json:"order"`
	Components []any          `json:"components,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// rawLandingPage mirrors the backend wire shape before normalization.
type rawLandingPage struct {
	MongoID          string               `json:"_id"`
	ID               string               `json:"id"`
	Title            string               `json:"title"`
	BusinessName     string               `json:"businessName"`
	BusinessOverview string               `json:"businessOverview"`
	TargetAudience   string               `json:"targetAudience"`
	BrandTone        string               `json:"brandTone"`
	WebsiteURL       string               `json:"websiteUrl"`
	Status           string               `json:"status"`
	Tags             []string             `json:"tags"`
	Sections         []LandingPageSection `json:"sections"`
	Settings         map[string]any       `json:"settings"`
	Analytics        map[string]any       `json:"analytics"`
	CreatedAt        string               `json:"createdAt"`
	UpdatedAt        string               `json:"updatedAt"`
}

// dateLayouts are tried in order when coercing backend date strings.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseBackendDate(value string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// UnmarshalJSON normalizes the backend wire shape: `_id` becomes ID,
// date strings become time.Time, and missing arrays default to empty.
func (p *LandingPage) UnmarshalJSON(data []byte) error {
	var raw rawLandingPage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id := raw.ID
	if id == "" {
		id = raw.MongoID
	}

	p.ID = id
	p.Title = raw.Title
	p.BusinessName = raw.BusinessName
	p.BusinessOverview = raw.BusinessOverview
	p.TargetAudience = raw.TargetAudience
	p.BrandTone = raw.BrandTone
	p.WebsiteURL = raw.WebsiteURL
	p.Status = raw.Status
	p.Tags = raw.Tags
	p.Sections = raw.Sections
	p.Settings = raw.Settings
	p.Analytics = raw.Analytics
	p.CreatedAt = parseBackendDate(raw.CreatedAt)
	p.UpdatedAt = parseBackendDate(raw.UpdatedAt)

	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Sections == nil {
		p.Sections = []LandingPageSection{}
	}

	return nil
}

// SortedSections returns the sections ordered by their Order value.
// Safe to call on a page with nil sections.
func (p *LandingPage) SortedSections() []LandingPageSection {
	if len(p.Sections) == 0 {
		return []LandingPageSection{}
	}
	sections := make([]LandingPageSection, len(p.Sections))
	copy(sections, p.Sections)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
	return sections
}

// LandingPagePatch is a partial update to a landing page. Nil fields are
// left untouched by the backend.
type LandingPagePatch struct {
	Title            *string              `json:"title,omitempty"`
	BusinessName     *string              `json:"businessName,omitempty"`
	BusinessOverview *string              `json:"businessOverview,omitempty"`
	TargetAudience   *string              `json:"targetAudience,omitempty"`
	BrandTone        *string              `json:"brandTone,omitempty"`
	WebsiteURL       *string              `json:"websiteUrl,omitempty"`
	Status           *string              `json:"status,omitempty"`
	Tags             []string             `json:"tags,omitempty"`
	Sections         []LandingPageSection `json:"sections,omitempty"`
	Settings         map[string]any       `json:"settings,omitempty"`
}

// SectionsOnly reports whether the patch carries only a sections array
// and no business-info fields. Such patches go to the dedicated
// sections-update endpoint.
func (p *LandingPagePatch) SectionsOnly() bool {
	return p.Sections != nil &&
		p.Title == nil &&
		p.BusinessName == nil &&
		p.BusinessOverview == nil &&
		p.TargetAudience == nil &&
		p.BrandTone == nil &&
		p.WebsiteURL == nil &&
		p.Status == nil &&
		p.Tags == nil &&
		p.Settings == nil
}
