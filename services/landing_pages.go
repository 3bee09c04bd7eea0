package services

import (
	"context"

	"page_flow_app_go/models"

	"gorm.io/gorm"
)

// LandingPageLimit is the fixed page size for landing-page lists.
const LandingPageLimit = 15

// BackendDownMessage is shown as the empty state when the backend
// service is unreachable.
const BackendDownMessage = "The content service is currently unavailable. Your pages will appear here once it is back."

// LandingPageService orchestrates landing-page CRUD against the
// backend, reconciling the authorization flag derived from the session.
type LandingPageService struct {
	Client *BackendClient
	DB     *gorm.DB
	Secret string
}

func NewLandingPageService(client *BackendClient, db *gorm.DB, secret string) *LandingPageService {
	return &LandingPageService{Client: client, DB: db, Secret: secret}
}

// ListResult is one fetched page of landing pages plus derived state.
type ListResult struct {
	Pages      []models.LandingPage `json:"landingPages"`
	Page       int                  `json:"page"`
	Count      int                  `json:"count"`
	TotalPages int                  `json:"totalPages"`
	Authorized bool                 `json:"isAuthorized"`
	// Unavailable is set when the backend cannot be reached; the UI
	// shows an empty state instead of an error in that case.
	Unavailable bool   `json:"unavailable,omitempty"`
	Message     string `json:"message,omitempty"`
}

// UpdateResult reports which update path ran. Exactly one field is set:
// Page for a generic update (merged copy, no refetch), Refreshed for a
// sections-only update (full list reload).
type UpdateResult struct {
	Page      *models.LandingPage `json:"page,omitempty"`
	Refreshed *ListResult         `json:"refreshed,omitempty"`
}

// List fetches one page of landing pages. Session lookup failure is
// non-fatal: the list degrades to all pages with Authorized=false.
func (s *LandingPageService) List(ctx context.Context, sessionCookie string, page int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}

	companyID := ""
	authorized := false
	if session := GetSessionData(s.DB, s.Secret, sessionCookie); session.Success && session.Data != nil {
		companyID = session.Data.CompanyID
		authorized = true
	}

	list, err := s.Client.GetLandingPages(ctx, page, LandingPageLimit, companyID)
	if err != nil {
		if IsConnectivityError(err) {
			return &ListResult{
				Pages:       []models.LandingPage{},
				Page:        page,
				Authorized:  authorized,
				Unavailable: true,
				Message:     BackendDownMessage,
			}, nil
		}
		return nil, err
	}

	return &ListResult{
		Pages:      list.Pages,
		Page:       page,
		Count:      list.Count,
		TotalPages: totalPages(list.Count, LandingPageLimit),
		Authorized: authorized,
	}, nil
}

func totalPages(count, limit int) int {
	if count <= 0 || limit <= 0 {
		return 0
	}
	return (count + limit - 1) / limit
}

// CreatePage creates a landing page and refetches the current page so
// the caller sees backend-assigned fields.
func (s *LandingPageService) CreatePage(ctx context.Context, sessionCookie string, input any, currentPage int) (*ListResult, error) {
	if _, err := s.Client.CreateLandingPage(ctx, input); err != nil {
		return nil, err
	}
	return s.List(ctx, sessionCookie, currentPage)
}

// DeletePage deletes a landing page and refetches the current page.
func (s *LandingPageService) DeletePage(ctx context.Context, sessionCookie, id string, currentPage int) (*ListResult, error) {
	if err := s.Client.DeleteLandingPage(ctx, id); err != nil {
		return nil, err
	}
	return s.List(ctx, sessionCookie, currentPage)
}

// UpdatePage branches on the patch shape. A patch carrying only a
// sections array goes to the dedicated sections endpoint followed by a
// full list refresh. Anything else goes to the generic update endpoint
// and the patch is merged into snapshot on success, with no refetch and
// no rollback path.
func (s *LandingPageService) UpdatePage(ctx context.Context, sessionCookie, id string, patch *models.LandingPagePatch, snapshot *models.LandingPage, currentPage int) (*UpdateResult, error) {
	if patch.SectionsOnly() {
		if err := s.Client.UpdateLandingPageSections(ctx, id, patch.Sections); err != nil {
			return nil, err
		}
		refreshed, err := s.List(ctx, sessionCookie, currentPage)
		if err != nil {
			return nil, err
		}
		return &UpdateResult{Refreshed: refreshed}, nil
	}

	updated, err := s.Client.UpdateLandingPage(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil || updated.ID == "" {
		// Backend acknowledged without a body; merge locally.
		merged := ApplyPatch(snapshot, id, patch)
		return &UpdateResult{Page: merged}, nil
	}
	return &UpdateResult{Page: updated}, nil
}

// ApplyPatch merges a patch into a local copy of a page. snapshot may
// be nil, in which case a minimal page is built from the patch alone.
func ApplyPatch(snapshot *models.LandingPage, id string, patch *models.LandingPagePatch) *models.LandingPage {
	merged := models.LandingPage{ID: id}
	if snapshot != nil {
		merged = *snapshot
		merged.ID = id
	}

	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.BusinessName != nil {
		merged.BusinessName = *patch.BusinessName
	}
	if patch.BusinessOverview != nil {
		merged.BusinessOverview = *patch.BusinessOverview
	}
	if patch.TargetAudience != nil {
		merged.TargetAudience = *patch.TargetAudience
	}
	if patch.BrandTone != nil {
		merged.BrandTone = *patch.BrandTone
	}
	if patch.WebsiteURL != nil {
		merged.WebsiteURL = *patch.WebsiteURL
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	if patch.Tags != nil {
		merged.Tags = patch.Tags
	}
	if patch.Sections != nil {
		merged.Sections = patch.Sections
	}
	if patch.Settings != nil {
		merged.Settings = patch.Settings
	}
	if merged.Sections == nil {
		merged.Sections = []models.LandingPageSection{}
	}
	if merged.Tags == nil {
		merged.Tags = []string{}
	}
	return &merged
}
