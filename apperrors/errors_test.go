package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validationf("bad")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFoundf("missing")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflictf("taken")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(Authf("who")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Forbiddenf("no")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Internalf(errors.New("boom"), "oops")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestGormNotFoundMapsToNotFound(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(gorm.ErrRecordNotFound))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(gorm.ErrRecordNotFound))

	wrapped := fmt.Errorf("loading row: %w", gorm.ErrRecordNotFound)
	assert.Equal(t, http.StatusNotFound, HTTPStatus(wrapped))
}

func TestClientMessageNeverLeaksCause(t *testing.T) {
	err := Internalf(errors.New("dial tcp 10.0.0.1: connection refused"), "failed to save branch")
	assert.Equal(t, "failed to save branch", ClientMessage(err))
	assert.NotContains(t, ClientMessage(err), "10.0.0.1")

	assert.Equal(t, "internal server error", ClientMessage(errors.New("raw driver error")))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Internalf(cause, "failed to store file")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}
