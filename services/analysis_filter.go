package services

import (
	"fmt"
	"net/url"
	"strings"
)

// AnalysisData is the normalized shape of a raw design-analysis payload.
// Array fields are never nil and nullable scalars stay null when absent
// so the UI can render without guards.
type AnalysisData struct {
	Colors       []string         `json:"colors"`
	Fonts        []string         `json:"fonts"`
	Images       []string         `json:"images"`
	Headlines    []string         `json:"headlines"`
	CTAButtons   []string         `json:"ctaButtons"`
	Sections     []map[string]any `json:"sections"`
	LayoutType   *string          `json:"layoutType"`
	ThemeStyle   *string          `json:"themeStyle"`
	SectionCount int              `json:"sectionCount"`
	Confidence   float64          `json:"confidence"`
}

// DirectResponse is the normalized shape of a backend response that
// carries generated content directly instead of an analysis.
type DirectResponse struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Sections    []map[string]any `json:"sections"`
	Keywords    []string         `json:"keywords"`
	WordCount   int              `json:"wordCount"`
}

// FilterAnalysisData reshapes an arbitrary analysis payload into
// AnalysisData. An empty map yields all arrays as [] and scalars as
// zero values; it never panics on unexpected types.
func FilterAnalysisData(raw map[string]any) *AnalysisData {
	return &AnalysisData{
		Colors:       stringSlice(raw, "colors"),
		Fonts:        stringSlice(raw, "fonts"),
		Images:       stringSlice(raw, "images"),
		Headlines:    stringSlice(raw, "headlines"),
		CTAButtons:   stringSlice(raw, "ctaButtons"),
		Sections:     mapSlice(raw, "sections"),
		LayoutType:   nullableString(raw, "layoutType"),
		ThemeStyle:   nullableString(raw, "themeStyle"),
		SectionCount: intValue(raw, "sectionCount"),
		Confidence:   floatValue(raw, "confidence"),
	}
}

// FilterDirectResponse reshapes a direct content payload into
// DirectResponse with the same zero-value guarantees as
// FilterAnalysisData.
func FilterDirectResponse(raw map[string]any) *DirectResponse {
	return &DirectResponse{
		Title:       nullableString(raw, "title"),
		Description: nullableString(raw, "description"),
		Sections:    mapSlice(raw, "sections"),
		Keywords:    stringSlice(raw, "keywords"),
		WordCount:   intValue(raw, "wordCount"),
	}
}

func stringSlice(raw map[string]any, key string) []string {
	result := []string{}
	if raw == nil {
		return result
	}
	values, ok := raw[key].([]any)
	if !ok {
		return result
	}
	for _, value := range values {
		switch v := value.(type) {
		case string:
			result = append(result, v)
		case fmt.Stringer:
			result = append(result, v.String())
		}
	}
	return result
}

func mapSlice(raw map[string]any, key string) []map[string]any {
	result := []map[string]any{}
	if raw == nil {
		return result
	}
	values, ok := raw[key].([]any)
	if !ok {
		return result
	}
	for _, value := range values {
		if m, ok := value.(map[string]any); ok {
			result = append(result, m)
		}
	}
	return result
}

func nullableString(raw map[string]any, key string) *string {
	if raw == nil {
		return nil
	}
	if s, ok := raw[key].(string); ok && s != "" {
		return &s
	}
	return nil
}

func intValue(raw map[string]any, key string) int {
	if raw == nil {
		return 0
	}
	switch v := raw[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func floatValue(raw map[string]any, key string) float64 {
	if raw == nil {
		return 0
	}
	switch v := raw[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// ExtractMainDomain reduces a URL to scheme://host[:port]. Malformed
// input returns the fallback domain.
func ExtractMainDomain(raw, fallback string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fallback
	}

	return fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
}
