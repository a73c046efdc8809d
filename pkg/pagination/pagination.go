package pagination

import (
	"net/http"
	"strconv"

	apperrors "github.com/Kolanot/catalog-service/pkg/errors"
)

const (
	// DefaultLimit is applied when no limit parameter is present.
	DefaultLimit = 20
	// MaxLimit caps the page size a caller may request.
	MaxLimit = 100
)

// Window holds a limit/offset page window extracted from query strings.
// A limit of 0 is a valid request meaning "metadata only, no rows".
type Window struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// DefaultWindow returns the default page window.
func DefaultWindow() Window {
	return Window{Limit: DefaultLimit, Offset: 0}
}

// FromRequest extracts limit/offset parameters from an HTTP request.
// Missing parameters fall back to defaults; malformed, negative, or
// out-of-range values return an InvalidInput error.
func FromRequest(r *http.Request) (Window, error) {
	w := DefaultWindow()

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return Window{}, apperrors.InvalidInput("limit must be a non-negative integer")
		}
		if limit > MaxLimit {
			return Window{}, apperrors.InvalidInput("limit must not exceed " + strconv.Itoa(MaxLimit))
		}
		w.Limit = limit
	}

	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return Window{}, apperrors.InvalidInput("offset must be a non-negative integer")
		}
		w.Offset = offset
	}

	return w, nil
}
