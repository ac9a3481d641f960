package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shifo-uz/clinicbackend/uploads"
)

func TestGalleryMediaNaturalOrder(t *testing.T) {
	repo := NewGalleryRepository(newTestDB(t))

	gallery, err := repo.Create(GalleryCreateInput{
		TitleUz: "Ochilish",
		Files: uploads.GroupByField([]uploads.File{
			file("gallery_media", "shot_10.jpg"),
			file("gallery_media", "shot_2.jpg"),
			file("gallery_media", "shot_1.jpg"),
		}, uploads.MediaOnlyScheme("gallery_media")),
	})
	require.NoError(t, err)
	require.Len(t, gallery.Media, 3)

	assert.Equal(t, "/uploads/test/shot_1.jpg", gallery.Media[0].URL)
	assert.Equal(t, "/uploads/test/shot_2.jpg", gallery.Media[1].URL)
	assert.Equal(t, "/uploads/test/shot_10.jpg", gallery.Media[2].URL)
}

func TestGalleryEditTitlesAndMedia(t *testing.T) {
	repo := NewGalleryRepository(newTestDB(t))

	gallery, err := repo.Create(GalleryCreateInput{
		TitleUz: "Eski",
		Files: uploads.GroupByField([]uploads.File{
			file("gallery_media", "old.jpg"),
		}, uploads.MediaOnlyScheme("gallery_media")),
	})
	require.NoError(t, err)

	edited, err := repo.Edit(gallery.ID, GalleryEditInput{
		TitleRu:        strPtr("Новый"),
		DeleteMediaIDs: []uint{gallery.Media[0].ID},
		Files: uploads.GroupByField([]uploads.File{
			file("gallery_media", "new.jpg"),
		}, uploads.MediaOnlyScheme("gallery_media")),
	})
	require.NoError(t, err)

	assert.Equal(t, "Eski", edited.TitleUz)
	assert.Equal(t, "Новый", edited.TitleRu)
	require.Len(t, edited.Media, 1)
	assert.Equal(t, "/uploads/test/new.jpg", edited.Media[0].URL)
}
