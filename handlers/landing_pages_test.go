package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"page_flow_app_go/config"
	"page_flow_app_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newPagesHandler(t *testing.T, backend http.HandlerFunc) *LandingPagesHandler {
	testDB := setupTestDB(t)
	client := newBackendServer(t, backend)
	service := services.NewLandingPageService(client, testDB, testSessionSecret)
	return NewLandingPagesHandler(service, testConfig())
}

func listBackend(t *testing.T, count int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pages := []map[string]any{}
		for i := 0; i < count && i < 15; i++ {
			pages = append(pages, map[string]any{"id": "lp", "title": "Page"})
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"landingPages": pages, "count": count},
		})
	}
}

func TestListComputesTotalPages(t *testing.T) {
	handler := newPagesHandler(t, listBackend(t, 30))

	_, c, rec := setupEcho(http.MethodGet, "/api/landing-pages?page=2", nil)
	assert.NoError(t, handler.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Page       int  `json:"page"`
			Count      int  `json:"count"`
			TotalPages int  `json:"totalPages"`
			Authorized bool `json:"isAuthorized"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.Page)
	assert.Equal(t, 30, resp.Data.Count)
	assert.Equal(t, 2, resp.Data.TotalPages)
	assert.False(t, resp.Data.Authorized)
}

func TestListInvalidPageDefaultsToFirst(t *testing.T) {
	handler := newPagesHandler(t, listBackend(t, 0))

	for _, query := range []string{"?page=0", "?page=-3", "?page=abc", ""} {
		_, c, rec := setupEcho(http.MethodGet, "/api/landing-pages"+query, nil)
		assert.NoError(t, handler.List(c))

		var resp struct {
			Data struct {
				Page int `json:"page"`
			} `json:"data"`
		}
		json.Unmarshal(rec.Body.Bytes(), &resp)
		assert.Equal(t, 1, resp.Data.Page)
	}
}

func TestListBackendDownEmptyState(t *testing.T) {
	testDB := setupTestDB(t)
	client := services.NewBackendClient(&config.Config{
		BackendAPIURL:     "http://127.0.0.1:1", // nothing listens here
		BackendTimeout:    time.Second,
		GenerationTimeout: time.Second,
	})
	service := services.NewLandingPageService(client, testDB, testSessionSecret)
	handler := NewLandingPagesHandler(service, testConfig())

	_, c, rec := setupEcho(http.MethodGet, "/api/landing-pages", nil)
	assert.NoError(t, handler.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Unavailable  bool             `json:"unavailable"`
			Message      string           `json:"message"`
			LandingPages []map[string]any `json:"landingPages"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.Unavailable)
	assert.Equal(t, services.BackendDownMessage, resp.Data.Message)
	assert.NotNil(t, resp.Data.LandingPages)
}

func TestCreateRequiresTitle(t *testing.T) {
	handler := newPagesHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called")
	})

	_, c, rec := setupEcho(http.MethodPost, "/api/landing-pages", strings.NewReader(`{}`))
	assert.NoError(t, handler.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, "Missing required field: title", resp["error"])
}

func TestCreateReturns201WithRefetchedList(t *testing.T) {
	var methods []string
	handler := newPagesHandler(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    map[string]any{"id": "lp-new", "title": "Fresh"},
			})
			return
		}
		listBackend(t, 1)(w, r)
	})

	_, c, rec := setupEcho(http.MethodPost, "/api/landing-pages", strings.NewReader(`{"title": "Fresh"}`))
	assert.NoError(t, handler.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{http.MethodPost, http.MethodGet}, methods)
}

func TestUpdateSectionsRequiresArray(t *testing.T) {
	handler := newPagesHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called")
	})

	_, c, rec := setupEcho(http.MethodPut, "/api/landing-pages/lp-1/sections", strings.NewReader(`{}`))
	c.SetParamNames("id")
	c.SetParamValues("lp-1")
	assert.NoError(t, handler.UpdateSections(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateSectionsRefreshesList(t *testing.T) {
	var paths []string
	handler := newPagesHandler(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPut {
			json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{}})
			return
		}
		listBackend(t, 1)(w, r)
	})

	body := `{"sections": [{"id": "s1", "type": "hero", "order": 0}]}`
	_, c, rec := setupEcho(http.MethodPut, "/api/landing-pages/lp-1/sections", strings.NewReader(body))
	c.SetParamNames("id")
	c.SetParamValues("lp-1")

	assert.NoError(t, handler.UpdateSections(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"PUT /landing-pages/lp-1/sections", "GET /landing-pages"}, paths)

	var resp struct {
		Data struct {
			Refreshed *map[string]any `json:"refreshed"`
			Page      *map[string]any `json:"page"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Data.Refreshed)
	assert.Nil(t, resp.Data.Page)
}

func TestUpdateGenericFieldsNoRefetch(t *testing.T) {
	var paths []string
	handler := newPagesHandler(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"id": "lp-1", "title": "Renamed"},
		})
	})

	_, c, rec := setupEcho(http.MethodPut, "/api/landing-pages/lp-1", strings.NewReader(`{"title": "Renamed"}`))
	c.SetParamNames("id")
	c.SetParamValues("lp-1")

	assert.NoError(t, handler.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"PUT /landing-pages/lp-1"}, paths)

	var resp struct {
		Data struct {
			Page *struct {
				Title string `json:"title"`
			} `json:"page"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Data.Page)
	assert.Equal(t, "Renamed", resp.Data.Page.Title)
}

func TestDeleteRefetchesList(t *testing.T) {
	var methods []string
	handler := newPagesHandler(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.Method == http.MethodDelete {
			json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{}})
			return
		}
		listBackend(t, 0)(w, r)
	})

	_, c, rec := setupEcho(http.MethodDelete, "/api/landing-pages/lp-1", nil)
	c.SetParamNames("id")
	c.SetParamValues("lp-1")

	assert.NoError(t, handler.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{http.MethodDelete, http.MethodGet}, methods)
}

func TestExportStreamsWorkbook(t *testing.T) {
	handler := newPagesHandler(t, listBackend(t, 2))

	_, c, rec := setupEcho(http.MethodGet, "/api/landing-pages/export", nil)
	assert.NoError(t, handler.Export(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "landing-pages.xlsx")
	assert.NotEmpty(t, rec.Body.Bytes())
}
