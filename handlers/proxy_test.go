package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProxyRejectsMissingField(t *testing.T) {
	client := newBackendServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called when validation fails")
	})
	handler := Proxy(client, ProxyRoute{
		BackendPath: "/ai/generate", Method: http.MethodPost,
		RequiredFields: []string{"prompt"},
	})

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"empty object", `{}`},
		{"null field", `{"prompt": null}`},
		{"blank string", `{"prompt": "   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c, rec := setupEcho(http.MethodPost, "/api/ai/generate", strings.NewReader(tt.body))
			assert.NoError(t, handler(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp map[string]any
			json.Unmarshal(rec.Body.Bytes(), &resp)
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, "Missing required field: prompt", resp["error"])
		})
	}
}

func TestProxyRejectsMalformedJSON(t *testing.T) {
	client := newBackendServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called")
	})
	handler := Proxy(client, ProxyRoute{
		BackendPath: "/ai/generate", Method: http.MethodPost,
	})

	_, c, rec := setupEcho(http.MethodPost, "/api/ai/generate", strings.NewReader(`{"broken`))
	assert.NoError(t, handler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProxyForwardsAndWrapsResponse(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any
	client := newBackendServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotPayload)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"content": "generated copy"},
		})
	})
	handler := Proxy(client, ProxyRoute{
		BackendPath: "/ai/generate-content", Method: http.MethodPost,
		RequiredFields: []string{"businessInfo"},
	})

	_, c, rec := setupEcho(http.MethodPost, "/api/ai/generate-content",
		strings.NewReader(`{"businessInfo": {"name": "Acme"}, "extra": 7}`))
	assert.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/ai/generate-content", gotPath)

	// The payload passes through untouched, extra fields included.
	assert.Equal(t, float64(7), gotPayload["extra"])

	var resp map[string]any
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, true, resp["success"])
	data := resp["data"].(map[string]any)
	assert.Equal(t, "generated copy", data["content"])
}

func TestProxySurfacesBackendError(t *testing.T) {
	client := newBackendServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "prompt too long"})
	})
	handler := Proxy(client, ProxyRoute{
		BackendPath: "/ai/generate", Method: http.MethodPost,
		RequiredFields: []string{"prompt"},
	})

	_, c, rec := setupEcho(http.MethodPost, "/api/ai/generate", strings.NewReader(`{"prompt": "x"}`))
	assert.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp map[string]any
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, "prompt too long", resp["error"])
}

func TestProxyTimesOut(t *testing.T) {
	client := newBackendServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	})
	handler := Proxy(client, ProxyRoute{
		BackendPath: "/ai/generate", Method: http.MethodPost,
		Timeout: 50 * time.Millisecond, RequiredFields: []string{"prompt"},
	})

	_, c, rec := setupEcho(http.MethodPost, "/api/ai/generate", strings.NewReader(`{"prompt": "x"}`))
	assert.NoError(t, handler(c))
	assert.Equal(t, http.StatusRequestTimeout, rec.Code)
}

func TestProxyGetSkipsBody(t *testing.T) {
	client := newBackendServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{"ok": true}})
	})
	handler := Proxy(client, ProxyRoute{BackendPath: "/health", Method: http.MethodGet})

	_, c, rec := setupEcho(http.MethodGet, "/api/health", nil)
	assert.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMissingField(t *testing.T) {
	assert.Equal(t, "", missingField(map[string]any{"a": 1}, []string{"a"}))
	assert.Equal(t, "a", missingField(map[string]any{}, []string{"a"}))
	assert.Equal(t, "a", missingField(map[string]any{"a": nil}, []string{"a"}))
	assert.Equal(t, "b", missingField(map[string]any{"a": 1, "b": ""}, []string{"a", "b"}))
	// Non-string zero values still count as present.
	assert.Equal(t, "", missingField(map[string]any{"a": 0}, []string{"a"}))
	assert.Equal(t, "", missingField(nil, nil))
}
