package media

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.EnsureBuckets(ctx, AllBuckets()))

	storedPath, err := store.Save(ctx, BucketBranches, "photo.jpg", strings.NewReader("image bytes"), -1, "image/jpeg")
	require.NoError(t, err)

	url := PublicURL(storedPath)
	assert.Equal(t, "/uploads/branches/photo.jpg", url)

	asset, err := store.Open(ctx, url)
	require.NoError(t, err)
	data, err := io.ReadAll(asset)
	require.NoError(t, asset.Close())
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))

	require.NoError(t, store.Delete(ctx, url))
	_, err = store.Open(ctx, url)
	assert.Error(t, err)

	// deleting a missing asset is not an error
	assert.NoError(t, store.Delete(ctx, url))
}

func TestLocalStorageRejectsEscape(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "/uploads/../../etc/passwd")
	assert.Error(t, err)
}
