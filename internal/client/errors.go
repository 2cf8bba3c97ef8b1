package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrReadResponse   = errors.New("read response")
	ErrDecodeResponse = errors.New("decode response")
	ErrIncomplete     = errors.New("incomplete recommendation")
)

// StatusError reports a non-2xx answer from the recommendation service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "<nil>"
	}

	statusText := http.StatusText(e.StatusCode)
	if statusText == "" {
		statusText = "unknown status"
	}
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("recommend http %d (%s)", e.StatusCode, statusText)
	}
	return fmt.Sprintf("recommend http %d (%s): %s", e.StatusCode, statusText, body)
}
