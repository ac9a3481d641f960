package handlers

import (
	"context"
	"encoding/json"
	"log"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/media"
	"github.com/shifo-uz/clinicbackend/uploads"
)

// decodeJSONValue unmarshals a form value into dst when the field is
// present. An absent or empty field leaves dst untouched.
func decodeJSONValue(pf *uploads.ParsedForm, key string, dst interface{}) error {
	raw := pf.Value(key)
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return apperrors.Validationf("field %q must be valid JSON", key)
	}
	return nil
}

// idListValue parses a form value holding a JSON array of ids.
func idListValue(pf *uploads.ParsedForm, key string) ([]uint, error) {
	var ids []uint
	if err := decodeJSONValue(pf, key, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// discardUploads removes the files of a failed request from storage. The
// transaction already rolled back; this is best-effort cleanup.
func discardUploads(ctx context.Context, store media.Store, files []uploads.File) {
	for _, f := range files {
		if err := store.Delete(ctx, f.URL); err != nil {
			log.Printf("handlers: failed to discard upload %s: %v", f.URL, err)
		}
	}
}

// removeStoredFiles deletes the files behind media rows that a committed
// transaction removed.
func removeStoredFiles(ctx context.Context, store media.Store, urls []string) {
	for _, url := range urls {
		if err := store.Delete(ctx, url); err != nil {
			log.Printf("handlers: failed to remove stored file %s: %v", url, err)
		}
	}
}
