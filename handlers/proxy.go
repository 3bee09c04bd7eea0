package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"page_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// ProxyRoute describes one backend endpoint exposed through the app:
// where to forward, how long to wait, and which fields must be present.
type ProxyRoute struct {
	BackendPath    string
	Method         string
	Timeout        time.Duration
	RequiredFields []string
}

// readJSONBody decodes the request body into a generic map. An empty
// body yields an empty map rather than an error.
func readJSONBody(c echo.Context) (map[string]any, error) {
	payload := map[string]any{}
	if c.Request().Body == nil {
		return payload, nil
	}
	err := json.NewDecoder(c.Request().Body).Decode(&payload)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("invalid JSON body")
	}
	return payload, nil
}

// missingField returns the first required field that is absent or
// empty in the payload.
func missingField(payload map[string]any, required []string) string {
	for _, field := range required {
		value, ok := payload[field]
		if !ok || value == nil {
			return field
		}
		if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
			return field
		}
	}
	return ""
}

// Proxy builds the forwarding handler for a backend route. All proxy
// endpoints share this behavior: validate required fields, forward with
// a bounded timeout, classify failures, and always answer with the
// JSON envelope.
func Proxy(client *services.BackendClient, route ProxyRoute) echo.HandlerFunc {
	return func(c echo.Context) error {
		var payload map[string]any

		if route.Method != http.MethodGet {
			body, err := readJSONBody(c)
			if err != nil {
				return jsonError(c, http.StatusBadRequest, err.Error())
			}
			payload = body
		}

		if field := missingField(payload, route.RequiredFields); field != "" {
			return jsonError(c, http.StatusBadRequest, fmt.Sprintf("Missing required field: %s", field))
		}

		var body any
		if payload != nil {
			body = payload
		}

		data, err := client.Forward(c.Request().Context(), route.Method, route.BackendPath, body, route.Timeout)
		if err != nil {
			status, message := services.ClassifyProxyError(err)
			return jsonError(c, status, message)
		}

		return jsonSuccess(c, http.StatusOK, json.RawMessage(data))
	}
}
