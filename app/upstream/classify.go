package upstream

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// bodyPreviewLimit bounds how much of a raw upstream body ever reaches the
// logs. Raw bodies are never returned to clients.
const bodyPreviewLimit = 500

// errorMessageKeys are probed in priority order when extracting a
// human-readable message from an upstream error body. Upstream APIs are not
// contractually consistent about their error schema, so this is a heuristic
// over an untyped JSON object.
var errorMessageKeys = []string{"error", "error_description", "message"}

// Error is a classified upstream failure carrying a user-safe message.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// Classify interprets a raw upstream HTTP response. On a success status whose
// body decodes into out (the expected post-list schema) it returns nil.
// Every other combination yields a *Error with a message safe to show to the
// caller: either one extracted from the upstream error body, or a generic one
// embedding the status code. A success status with an undecodable body is a
// failure too - it is never coerced into an empty result.
func Classify(status int, body []byte, out any) error {
	if status < 200 || status >= 300 {
		return &Error{
			StatusCode: status,
			Message:    extractErrorMessage(status, body),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		slog.Debug("Unexpected upstream response body",
			"status", status,
			"decode_error", err,
			"body_preview", preview(body))
		return Unexpected(status, body)
	}

	return nil
}

// Unexpected classifies a response whose body did not match the expected
// schema even though decoding itself may have succeeded. Clients call this
// when a structurally valid body is still missing its payload (e.g. a JSON
// object without the timeline field). The body is probed for an error message
// first; an upstream that errors with a 200 still gets its message through.
func Unexpected(status int, body []byte) *Error {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range errorMessageKeys {
			if msg, ok := payload[key].(string); ok && msg != "" {
				return &Error{StatusCode: status, Message: msg}
			}
		}
	}

	return &Error{
		StatusCode: status,
		Message:    fmt.Sprintf("unexpected response from upstream (HTTP %d)", status),
	}
}

func extractErrorMessage(status int, body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range errorMessageKeys {
			if msg, ok := payload[key].(string); ok && msg != "" {
				return msg
			}
		}
	}

	slog.Debug("Upstream error without recognizable message",
		"status", status,
		"body_preview", preview(body))

	return fmt.Sprintf("upstream request failed (HTTP %d)", status)
}

func preview(body []byte) string {
	if len(body) > bodyPreviewLimit {
		return string(body[:bodyPreviewLimit]) + "..."
	}
	return string(body)
}
