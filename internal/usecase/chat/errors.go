package chat

import (
	"errors"
	"net/http"
	"strings"

	pkghttp "github.com/futig/ragchat-backend/pkg/http"
)

// IsRateLimited reports whether a provider failure was caused by throttling.
// The status code is checked first; the text match covers errors that only
// carry the provider message.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "Rate limit")
}
