package repository

import (
	"errors"
	"sort"

	"github.com/facette/natsort"
	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/models"
	"github.com/shifo-uz/clinicbackend/uploads"
	"gorm.io/gorm"
)

// GalleryCreateInput is the decoded create form for a gallery.
type GalleryCreateInput struct {
	TitleUz string
	TitleRu string
	TitleEn string
	Files   uploads.Grouping
}

// GalleryEditInput is the decoded edit form for a gallery. Nil titles stay
// unchanged.
type GalleryEditInput struct {
	TitleUz        *string
	TitleRu        *string
	TitleEn        *string
	DeleteMediaIDs []uint
	Files          uploads.Grouping
}

// GalleryRepository handles database operations for galleries.
type GalleryRepository struct {
	DB *gorm.DB
}

// NewGalleryRepository creates a new instance of GalleryRepository
func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{DB: db}
}

// sortGalleryMedia orders a gallery's media naturally by URL, so shot_2
// comes before shot_10 regardless of insert order.
func sortGalleryMedia(gallery *models.Gallery) {
	sort.SliceStable(gallery.Media, func(i, j int) bool {
		return natsort.Compare(gallery.Media[i].URL, gallery.Media[j].URL)
	})
}

// ListAll retrieves all galleries with naturally ordered media.
func (r *GalleryRepository) ListAll() ([]models.Gallery, error) {
	var galleries []models.Gallery
	err := r.DB.Preload("Media").Order("id DESC").Find(&galleries).Error
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to list galleries")
	}
	for i := range galleries {
		sortGalleryMedia(&galleries[i])
	}
	return galleries, nil
}

// GetByID retrieves one gallery with naturally ordered media.
func (r *GalleryRepository) GetByID(id uint) (*models.Gallery, error) {
	var gallery models.Gallery
	err := r.DB.Preload("Media").First(&gallery, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("gallery %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to get gallery %d", id)
	}
	sortGalleryMedia(&gallery)
	return &gallery, nil
}

// Create inserts a gallery and its media in one transaction.
func (r *GalleryRepository) Create(in GalleryCreateInput) (*models.Gallery, error) {
	if in.TitleUz == "" && in.TitleRu == "" && in.TitleEn == "" {
		return nil, apperrors.Validationf("at least one title is required")
	}

	var created models.Gallery
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		gallery := models.Gallery{TitleUz: in.TitleUz, TitleRu: in.TitleRu, TitleEn: in.TitleEn}
		if err := tx.Create(&gallery).Error; err != nil {
			return apperrors.Internalf(err, "failed to create gallery")
		}
		if err := createMediaRows(tx, models.MediaOwnerGallery, gallery.ID, in.Files.ForParent()); err != nil {
			return err
		}
		return tx.Preload("Media").First(&created, gallery.ID).Error
	})
	if err != nil {
		return nil, err
	}
	sortGalleryMedia(&created)
	return &created, nil
}

// Edit applies a partial update: strict media deletes first, then title
// updates, then new media, all in one transaction.
func (r *GalleryRepository) Edit(id uint, in GalleryEditInput) (*models.Gallery, error) {
	var out models.Gallery
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var gallery models.Gallery
		if err := tx.First(&gallery, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("gallery %d not found", id)
			}
			return apperrors.Internalf(err, "failed to load gallery %d", id)
		}

		if err := deleteParentMedia(tx, models.MediaOwnerGallery, id, in.DeleteMediaIDs); err != nil {
			return err
		}

		updates := map[string]any{}
		if in.TitleUz != nil {
			updates["title_uz"] = *in.TitleUz
		}
		if in.TitleRu != nil {
			updates["title_ru"] = *in.TitleRu
		}
		if in.TitleEn != nil {
			updates["title_en"] = *in.TitleEn
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Gallery{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return apperrors.Internalf(err, "failed to update gallery %d", id)
			}
		}

		if err := createMediaRows(tx, models.MediaOwnerGallery, id, in.Files.ForParent()); err != nil {
			return err
		}

		return tx.Preload("Media").First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	sortGalleryMedia(&out)
	return &out, nil
}

// Delete removes the gallery and its media rows, returning the removed media
// URLs for post-commit file cleanup.
func (r *GalleryRepository) Delete(id uint) ([]string, error) {
	var urls []string
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var gallery models.Gallery
		if err := tx.First(&gallery, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("gallery %d not found", id)
			}
			return apperrors.Internalf(err, "failed to load gallery %d", id)
		}

		deleted, err := deleteOwnedMedia(tx, models.MediaOwnerGallery, []uint{id})
		if err != nil {
			return err
		}
		urls = deleted

		if err := tx.Delete(&models.Gallery{}, id).Error; err != nil {
			return apperrors.Internalf(err, "failed to delete gallery %d", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}
