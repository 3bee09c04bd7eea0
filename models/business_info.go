package models

// BusinessInfo is the backend-owned business profile used to seed
// content generation. The frontend only relays it.
type BusinessInfo struct {
	ID             string `json:"id,omitempty"`
	CompanyID      string `json:"companyId,omitempty"`
	Name           string `json:"name"`
	Overview       string `json:"overview"`
	TargetAudience string `json:"targetAudience"`
	BrandTone      string `json:"brandTone"`
	WebsiteURL     string `json:"websiteUrl"`
}
