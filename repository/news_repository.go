package repository

import (
	"errors"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/models"
	"github.com/shifo-uz/clinicbackend/uploads"
	"gorm.io/gorm"
)

// NewsCreateInput is the decoded create form for a news post.
type NewsCreateInput struct {
	TitleUz       string
	TitleRu       string
	TitleEn       string
	DescriptionUz string
	DescriptionRu string
	DescriptionEn string
	Files         uploads.Grouping
}

// NewsEditInput is the decoded edit form for a news post. Nil fields stay
// unchanged.
type NewsEditInput struct {
	TitleUz        *string
	TitleRu        *string
	TitleEn        *string
	DescriptionUz  *string
	DescriptionRu  *string
	DescriptionEn  *string
	DeleteMediaIDs []uint
	Files          uploads.Grouping
}

// NewsRepository handles database operations for news posts.
type NewsRepository struct {
	DB *gorm.DB
}

// NewNewsRepository creates a new instance of NewsRepository
func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{DB: db}
}

// ListAll retrieves all news posts, newest first.
func (r *NewsRepository) ListAll() ([]models.News, error) {
	var posts []models.News
	err := r.DB.Preload("Media").Order("id DESC").Find(&posts).Error
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to list news")
	}
	return posts, nil
}

// GetByID retrieves one news post with its media.
func (r *NewsRepository) GetByID(id uint) (*models.News, error) {
	var post models.News
	err := r.DB.Preload("Media").First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("news %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to get news %d", id)
	}
	return &post, nil
}

// Create inserts a news post and its media in one transaction.
func (r *NewsRepository) Create(in NewsCreateInput) (*models.News, error) {
	if in.TitleUz == "" && in.TitleRu == "" && in.TitleEn == "" {
		return nil, apperrors.Validationf("at least one title is required")
	}

	var created models.News
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		post := models.News{
			TitleUz:       in.TitleUz,
			TitleRu:       in.TitleRu,
			TitleEn:       in.TitleEn,
			DescriptionUz: in.DescriptionUz,
			DescriptionRu: in.DescriptionRu,
			DescriptionEn: in.DescriptionEn,
		}
		if err := tx.Create(&post).Error; err != nil {
			return apperrors.Internalf(err, "failed to create news")
		}
		if err := createMediaRows(tx, models.MediaOwnerNews, post.ID, in.Files.ForParent()); err != nil {
			return err
		}
		return tx.Preload("Media").First(&created, post.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Edit applies a partial update: strict media deletes first, then scalar
// updates, then new media, all in one transaction.
func (r *NewsRepository) Edit(id uint, in NewsEditInput) (*models.News, error) {
	var out models.News
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var post models.News
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("news %d not found", id)
			}
			return apperrors.Internalf(err, "failed to load news %d", id)
		}

		if err := deleteParentMedia(tx, models.MediaOwnerNews, id, in.DeleteMediaIDs); err != nil {
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
		if in.DescriptionUz != nil {
			updates["description_uz"] = *in.DescriptionUz
		}
		if in.DescriptionRu != nil {
			updates["description_ru"] = *in.DescriptionRu
		}
		if in.DescriptionEn != nil {
			updates["description_en"] = *in.DescriptionEn
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.News{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return apperrors.Internalf(err, "failed to update news %d", id)
			}
		}

		if err := createMediaRows(tx, models.MediaOwnerNews, id, in.Files.ForParent()); err != nil {
			return err
		}

		return tx.Preload("Media").First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the news post and its media rows, returning the removed
// media URLs for post-commit file cleanup.
func (r *NewsRepository) Delete(id uint) ([]string, error) {
	var urls []string
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var post models.News
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("news %d not found", id)
			}
			return apperrors.Internalf(err, "failed to load news %d", id)
		}

		deleted, err := deleteOwnedMedia(tx, models.MediaOwnerNews, []uint{id})
		if err != nil {
			return err
		}
		urls = deleted

		if err := tx.Delete(&models.News{}, id).Error; err != nil {
			return apperrors.Internalf(err, "failed to delete news %d", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}
