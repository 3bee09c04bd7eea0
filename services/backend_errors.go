package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// BackendError is a failure reported by the backend service itself
// (a non-2xx response with, usually, an error message in the body).
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return e.Message
}

// statusMessages are the fixed human-readable errors surfaced for
// backend responses that carry no error message of their own.
var statusMessages = map[int]string{
	http.StatusTooManyRequests:     "Too many requests. Please wait a moment and try again.",
	http.StatusUnauthorized:        "Authentication required. Please log in again.",
	http.StatusForbidden:           "Access denied.",
	http.StatusNotFound:            "The requested resource was not found.",
	http.StatusInternalServerError: "The server encountered an error. Please try again later.",
}

func newBackendError(statusCode int, backendMessage string) *BackendError {
	if backendMessage != "" {
		return &BackendError{StatusCode: statusCode, Message: backendMessage}
	}
	if msg, ok := statusMessages[statusCode]; ok {
		return &BackendError{StatusCode: statusCode, Message: msg}
	}
	if statusCode >= 500 {
		return &BackendError{StatusCode: statusCode, Message: statusMessages[http.StatusInternalServerError]}
	}
	return &BackendError{StatusCode: statusCode, Message: fmt.Sprintf("Request failed with status %d", statusCode)}
}

// proxyClassification maps failure-text substrings to the HTTP status
// surfaced to the client. Checked in order; first match wins.
var proxyClassification = []struct {
	Substrings []string
	Status     int
}{
	{[]string{"403", "forbidden", "blocked", "captcha", "cloudflare", "access denied"}, http.StatusForbidden},
	{[]string{"timeout", "timed out", "deadline exceeded"}, http.StatusRequestTimeout},
	{[]string{"connection refused", "econnrefused", "no such host", "network", "dial tcp", "broken pipe", "connection reset"}, http.StatusServiceUnavailable},
}

// ClassifyProxyError maps an error from a forwarded backend call to the
// HTTP status and message the route should return.
func ClassifyProxyError(err error) (int, string) {
	if err == nil {
		return http.StatusOK, ""
	}

	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		// The backend often reports upstream blocks as a generic 500
		// with the real cause in the message. Reclassify from the text
		// before trusting the status.
		if status, ok := classifyMessage(backendErr.Message); ok {
			return status, backendErr.Message
		}
		return backendErr.StatusCode, backendErr.Message
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusRequestTimeout, "The request timed out. Please try again."
	}

	if status, ok := classifyMessage(err.Error()); ok {
		switch status {
		case http.StatusForbidden:
			return status, "The source website blocked the request. Try uploading the design instead."
		case http.StatusRequestTimeout:
			return status, "The request timed out. Please try again."
		default:
			return status, "Unable to reach the content service. Please try again later."
		}
	}

	return http.StatusInternalServerError, err.Error()
}

// classifyMessage matches an error message against the substring table.
func classifyMessage(message string) (int, bool) {
	msg := strings.ToLower(message)
	for _, class := range proxyClassification {
		for _, sub := range class.Substrings {
			if strings.Contains(msg, sub) {
				return class.Status, true
			}
		}
	}
	return 0, false
}

// IsConnectivityError reports whether the error means the backend is
// unreachable rather than rejecting the request.
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, sub := range []string{"fetch", "network", "econnrefused", "connection refused", "timeout", "no such host", "dial tcp"} {
		if strings.Contains(msg, sub) {
			return true
		}
	}
	return false
}
