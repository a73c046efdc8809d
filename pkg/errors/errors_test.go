package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorSentinels(t *testing.T) {
	assert.ErrorIs(t, NotFound("catalogue", "C1"), ErrNotFound)
	assert.ErrorIs(t, AlreadyExists("catalogue", "id", "C1"), ErrAlreadyExists)
	assert.ErrorIs(t, InvalidInput("bad"), ErrInvalidInput)
	assert.ErrorIs(t, QueryExecution(errors.New("boom")), ErrQueryExecution)
}

func TestQueryExecutionPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := QueryExecution(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "QUERY_EXECUTION_ERROR")
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("catalogue", "C1")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(AlreadyExists("line", "id", "L1")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidInput("bad")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(QueryExecution(errors.New("boom"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestWrapKeepsChain(t *testing.T) {
	err := Wrap(ErrNotFound, "load catalogue")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "load catalogue")
}
