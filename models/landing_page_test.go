package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLandingPageUnmarshalNormalizesMongoID(t *testing.T) {
	payload := `{
		"_id": "64f0c2a9e1",
		"title": "Launch Page",
		"businessName": "Acme",
		"createdAt": "2024-03-15T10:30:00.000Z",
		"updatedAt": "2024-03-16"
	}`

	var page LandingPage
	assert.NoError(t, json.Unmarshal([]byte(payload), &page))
	assert.Equal(t, "64f0c2a9e1", page.ID)
	assert.Equal(t, "Launch Page", page.Title)
	assert.Equal(t, 2024, page.CreatedAt.Year())
	assert.Equal(t, time.March, page.CreatedAt.Month())
	assert.Equal(t, 16, page.UpdatedAt.Day())

	// Missing arrays default to empty, never nil.
	assert.NotNil(t, page.Tags)
	assert.NotNil(t, page.Sections)
	assert.Empty(t, page.Tags)
}

func TestLandingPageUnmarshalPrefersPlainID(t *testing.T) {
	payload := `{"_id": "mongo-id", "id": "plain-id", "title": "x"}`

	var page LandingPage
	assert.NoError(t, json.Unmarshal([]byte(payload), &page))
	assert.Equal(t, "plain-id", page.ID)
}

func TestLandingPageUnmarshalBadDateIsZero(t *testing.T) {
	payload := `{"id": "lp-1", "createdAt": "not-a-date"}`

	var page LandingPage
	assert.NoError(t, json.Unmarshal([]byte(payload), &page))
	assert.True(t, page.CreatedAt.IsZero())
}

func TestSortedSections(t *testing.T) {
	page := LandingPage{Sections: []LandingPageSection{
		{ID: "c", Order: 2},
		{ID: "a", Order: 0},
		{ID: "b", Order: 1},
	}}

	sorted := page.SortedSections()
	assert.Equal(t, []string{"a", "b", "c"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})

	// Original order is preserved.
	assert.Equal(t, "c", page.Sections[0].ID)

	// Nil sections are safe.
	empty := LandingPage{}
	assert.NotNil(t, empty.SortedSections())
	assert.Empty(t, empty.SortedSections())
}

func TestPatchSectionsOnly(t *testing.T) {
	sections := []LandingPageSection{{ID: "s1", Type: "hero"}}

	patch := LandingPagePatch{Sections: sections}
	assert.True(t, patch.SectionsOnly())

	title := "New"
	patch = LandingPagePatch{Sections: sections, Title: &title}
	assert.False(t, patch.SectionsOnly())

	patch = LandingPagePatch{Title: &title}
	assert.False(t, patch.SectionsOnly())

	// Empty but non-nil sections still count as a sections update.
	patch = LandingPagePatch{Sections: []LandingPageSection{}}
	assert.True(t, patch.SectionsOnly())

	patch = LandingPagePatch{}
	assert.False(t, patch.SectionsOnly())
}

func TestPatchOmitsNilFields(t *testing.T) {
	title := "Only Title"
	data, err := json.Marshal(LandingPagePatch{Title: &title})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"title": "Only Title"}`, string(data))
}
