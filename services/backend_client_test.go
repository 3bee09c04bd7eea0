package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"page_flow_app_go/config"

	"github.com/stretchr/testify/assert"
)

func newTestClient(backendURL string) *BackendClient {
	return NewBackendClient(&config.Config{
		BackendAPIURL:     backendURL,
		BackendTimeout:    5 * time.Second,
		GenerationTimeout: 2 * time.Second,
	})
}

func TestClientDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/landing-pages", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "15", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"landingPages": []map[string]any{{"id": "lp-1", "title": "Spring Sale"}},
				"count":        16,
			},
		})
	}))
	defer srv.Close()

	list, err := newTestClient(srv.URL).GetLandingPages(context.Background(), 2, 15, "")
	assert.NoError(t, err)
	assert.Len(t, list.Pages, 1)
	assert.Equal(t, "Spring Sale", list.Pages[0].Title)
	assert.Equal(t, 16, list.Count)
}

func TestClientSurfacesBackendErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "businessInfo is malformed",
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GenerateContent(context.Background(), map[string]string{})
	assert.Error(t, err)

	var backendErr *BackendError
	assert.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusBadRequest, backendErr.StatusCode)
	assert.Equal(t, "businessInfo is malformed", backendErr.Message)
}

func TestClientFallsBackToStatusMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), map[string]string{"prompt": "hi"})

	var backendErr *BackendError
	assert.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusTooManyRequests, backendErr.StatusCode)
	assert.Equal(t, statusMessages[http.StatusTooManyRequests], backendErr.Message)
}

func TestClientRejectsFailedEnvelope(t *testing.T) {
	// success=false with a 200 status still counts as an error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "generation failed"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GenerateLandingPage(context.Background(), map[string]string{"contentPlan": "x"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "generation failed")
}

func TestForwardTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{}})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Forward(context.Background(), http.MethodPost, "/ai/generate", map[string]string{"prompt": "x"}, 50*time.Millisecond)
	assert.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	status, _ := ClassifyProxyError(err)
	assert.Equal(t, http.StatusRequestTimeout, status)
}

func TestDeleteLandingPageSendsIDInBody(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/landing-pages", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{}})
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).DeleteLandingPage(context.Background(), "lp-9")
	assert.NoError(t, err)
	assert.Equal(t, "lp-9", gotBody["id"])
}
