package quote

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// StatusError captures a non-2xx answer from the quote endpoint.
type StatusError struct {
	StatusCode int
	// Message is the server's {"error": "..."} text when present, else the
	// trimmed body.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("quote endpoint returned %d", e.StatusCode)
	}
	return fmt.Sprintf("quote endpoint returned %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err means no quote matched (unknown id or no
// quote passing the filters).
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// IsRateLimited reports whether the endpoint rejected the request with 429.
func IsRateLimited(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusTooManyRequests
}

func buildStatusError(status int, body []byte) *StatusError {
	trimmed := strings.TrimSpace(string(body))
	se := &StatusError{StatusCode: status, Message: trimmed}
	if strings.HasPrefix(trimmed, "{") {
		var obj struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &obj); err == nil {
			switch {
			case obj.Error != "":
				se.Message = obj.Error
			case obj.Message != "":
				se.Message = obj.Message
			}
		}
	}
	return se
}
