package services

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"page_flow_app_go/models"

	"github.com/microcosm-cc/bluemonday"
)

// placeholderRegex matches {{variable.path}} patterns
var placeholderRegex = regexp.MustCompile(`\{\{([a-zA-Z0-9_.]+)\}\}`)

var fileNameSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

// sectionPolicy sanitizes section content before it is embedded in a
// preview or PDF document. Section content is user-editable HTML.
var sectionPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("style").OnElements("div", "span", "p", "h1", "h2", "h3", "section")
	return p
}()

const pageSkeleton = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{page.title}}</title>
<style>
body { margin: 0; font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; color: #1a1a2e; }
.page-section { padding: 48px 24px; max-width: 960px; margin: 0 auto; }
.page-section h2 { margin: 0 0 16px; font-size: 28px; }
.page-footer { padding: 24px; text-align: center; color: #9a9ab0; font-size: 13px; }
</style>
</head>
<body>
{{page.sections}}
<footer class="page-footer">{{page.businessName}}</footer>
</body>
</html>`

const sectionSkeleton = `<section class="page-section" data-section-type="{{section.type}}" data-section-id="{{section.id}}">
<h2>{{section.title}}</h2>
<div class="section-content">{{section.content}}</div>
</section>`

// RenderTemplate replaces {{variable}} placeholders with values from
// the provided map. Unknown placeholders are left as-is.
func RenderTemplate(content string, values map[string]string) string {
	return placeholderRegex.ReplaceAllStringFunc(content, func(match string) string {
		key := strings.TrimPrefix(strings.TrimSuffix(match, "}}"), "{{")
		if value, ok := values[key]; ok {
			return value
		}
		return match
	})
}

// SanitizeSectionContent strips unsafe markup from section HTML.
func SanitizeSectionContent(content string) string {
	return sectionPolicy.Sanitize(content)
}

// RenderLandingPageHTML builds the full preview document for a landing
// page: sections in Order sequence, content sanitized.
func RenderLandingPageHTML(page *models.LandingPage) string {
	var sections strings.Builder
	for _, section := range page.SortedSections() {
		sections.WriteString(RenderTemplate(sectionSkeleton, map[string]string{
			"section.type":    html.EscapeString(section.Type),
			"section.id":      html.EscapeString(section.ID),
			"section.title":   html.EscapeString(section.Title),
			"section.content": SanitizeSectionContent(section.Content),
		}))
		sections.WriteString("\n")
	}

	title := page.Title
	if title == "" {
		title = "Landing Page Preview"
	}

	return RenderTemplate(pageSkeleton, map[string]string{
		"page.title":        html.EscapeString(title),
		"page.businessName": html.EscapeString(page.BusinessName),
		"page.sections":     sections.String(),
	})
}

// DownloadFileName builds the attachment name for a page download.
func DownloadFileName(page *models.LandingPage, format string) string {
	name := strings.TrimSpace(page.Title)
	if name == "" {
		name = "landing-page"
	}
	name = strings.ToLower(name)
	name = fileNameSanitizer.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "landing-page"
	}
	return fmt.Sprintf("%s.%s", name, format)
}
