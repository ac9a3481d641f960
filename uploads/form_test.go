package uploads

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/media"
)

func TestParseFormScalarValues(t *testing.T) {
	store, err := media.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("title", "Shifo"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/branch", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	form, err := ParseForm(req, "branch", store)
	require.NoError(t, err)
	assert.Equal(t, "Shifo", form.Value("title"))
	assert.Nil(t, form.OptionalValue("missing"))
}

func TestParseFormRejectsOversizedValue(t *testing.T) {
	store, err := media.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("services", strings.Repeat("a", maxValuePartSize+1)))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/branch", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	_, err = ParseForm(req, "branch", store)
	require.Error(t, err)
	assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), `form field "services" exceeds`)
}
