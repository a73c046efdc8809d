package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Kolanot/catalog-service/pkg/errors"
)

func TestFromRequestDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/lines", nil)

	w, err := FromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, w.Limit)
	assert.Equal(t, 0, w.Offset)
}

func TestFromRequestExplicitValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/lines?limit=50&offset=100", nil)

	w, err := FromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, 50, w.Limit)
	assert.Equal(t, 100, w.Offset)
}

func TestFromRequestZeroLimitIsValid(t *testing.T) {
	r := httptest.NewRequest("GET", "/lines?limit=0", nil)

	w, err := FromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, 0, w.Limit)
}

func TestFromRequestRejectsBadValues(t *testing.T) {
	for _, query := range []string{
		"limit=abc",
		"limit=-1",
		"limit=101",
		"offset=-5",
		"offset=xyz",
	} {
		r := httptest.NewRequest("GET", "/lines?"+query, nil)
		_, err := FromRequest(r)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, query)
	}
}
