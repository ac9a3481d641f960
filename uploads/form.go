package uploads

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/media"
)

// value parts are form scalars (titles, JSON arrays); cap them well below
// the file limit
const maxValuePartSize = 10 << 20

// ParsedForm is the outcome of streaming one multipart request: scalar
// fields plus the stored files in arrival order.
type ParsedForm struct {
	Values url.Values
	Files  []File
}

// Value returns the first value for a key, or "".
func (pf *ParsedForm) Value(key string) string {
	return pf.Values.Get(key)
}

// OptionalValue distinguishes "key absent" (nil) from "key present", so
// handlers can build leave-unchanged edit inputs.
func (pf *ParsedForm) OptionalValue(key string) *string {
	vs, ok := pf.Values[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	return &vs[0]
}

type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}

// ParseForm streams the request's multipart body in arrival order, enforces
// the entity's upload policy, writes every file through the store, and
// returns the scalar values plus stored-file descriptors. On any failure
// the files already written are removed best-effort before the error is
// returned.
func ParseForm(r *http.Request, entity string, store media.Store) (*ParsedForm, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, apperrors.Validationf("expected multipart/form-data body")
	}

	policy := media.PolicyFor(entity)
	classifier := media.NewClassifier()
	ctx := r.Context()

	form := &ParsedForm{Values: url.Values{}}
	fileCount := 0

	cleanup := func() {
		for _, f := range form.Files {
			if delErr := store.Delete(ctx, f.URL); delErr != nil {
				log.Printf("uploads: cleanup failed for %s: %v", f.URL, delErr)
			}
		}
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			cleanup()
			return nil, apperrors.Validationf("malformed multipart body")
		}

		fieldName := part.FormName()
		if part.FileName() == "" {
			data, err := io.ReadAll(io.LimitReader(part, maxValuePartSize+1))
			part.Close()
			if err != nil {
				cleanup()
				return nil, apperrors.Validationf("failed to read form field %q", fieldName)
			}
			if len(data) > maxValuePartSize {
				cleanup()
				return nil, apperrors.Validationf("form field %q exceeds the %d byte limit", fieldName, maxValuePartSize)
			}
			form.Values.Add(fieldName, string(data))
			continue
		}

		fileCount++
		if fileCount > policy.MaxFiles {
			part.Close()
			cleanup()
			return nil, apperrors.Validationf("too many files: at most %d allowed", policy.MaxFiles)
		}

		mimeType := part.Header.Get("Content-Type")
		if !policy.Allows(mimeType) {
			part.Close()
			cleanup()
			return nil, apperrors.Validationf("file type %q is not allowed for %s uploads", mimeType, entity)
		}

		bucket := classifier.Bucket(fieldName)
		storedName := storedFilename(part.FileName())

		counter := &countingReader{r: io.LimitReader(part, policy.MaxFileSize+1)}
		storedPath, err := store.Save(ctx, bucket, storedName, counter, -1, mimeType)
		part.Close()
		if err != nil {
			cleanup()
			return nil, apperrors.Internalf(err, "failed to store uploaded file")
		}

		publicURL := media.PublicURL(storedPath)
		if counter.n > policy.MaxFileSize {
			if delErr := store.Delete(ctx, publicURL); delErr != nil {
				log.Printf("uploads: cleanup failed for %s: %v", publicURL, delErr)
			}
			cleanup()
			return nil, apperrors.Validationf("file %q exceeds the %d byte limit", part.FileName(), policy.MaxFileSize)
		}

		form.Files = append(form.Files, File{
			Field:        fieldName,
			OriginalName: part.FileName(),
			MimeType:     mimeType,
			Size:         counter.n,
			StoredPath:   storedPath,
			URL:          publicURL,
			Kind:         media.KindOf(mimeType),
		})
	}

	return form, nil
}

// storedFilename builds a collision-resistant name: timestamp, random
// suffix, then a sanitized slice of the original base name.
func storedFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	safeBase := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if len(safeBase) > 40 {
		safeBase = safeBase[:40]
	}
	return fmt.Sprintf("%d_%s_%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], safeBase, ext)
}
