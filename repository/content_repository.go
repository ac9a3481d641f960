package repository

import (
	"errors"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/models"
	"gorm.io/gorm"
)

// ContentRepository handles the plain content tables the admin panel edits:
// contacts, statistics, about-us and additional-info blocks.
type ContentRepository struct {
	DB *gorm.DB
}

// NewContentRepository creates a new instance of ContentRepository
func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

// ListContacts retrieves all contact rows.
func (r *ContentRepository) ListContacts() ([]models.Contact, error) {
	var contacts []models.Contact
	if err := r.DB.Order("id ASC").Find(&contacts).Error; err != nil {
		return nil, apperrors.Internalf(err, "failed to list contacts")
	}
	return contacts, nil
}

// CreateContact inserts a new contact row.
func (r *ContentRepository) CreateContact(contact *models.Contact) error {
	if contact.Type == "" || contact.Contact == "" {
		return apperrors.Validationf("type and contact are required")
	}
	if err := r.DB.Create(contact).Error; err != nil {
		return apperrors.Internalf(err, "failed to create contact")
	}
	return nil
}

// UpdateContact applies a partial update to one contact row.
func (r *ContentRepository) UpdateContact(id uint, contactType, contact *string) (*models.Contact, error) {
	var row models.Contact
	err := r.DB.First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("contact %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to get contact %d", id)
	}
	updates := map[string]any{}
	if contactType != nil {
		updates["type"] = *contactType
	}
	if contact != nil {
		updates["contact"] = *contact
	}
	if len(updates) > 0 {
		if err := r.DB.Model(&row).Updates(updates).Error; err != nil {
			return nil, apperrors.Internalf(err, "failed to update contact %d", id)
		}
	}
	return &row, nil
}

// DeleteContact removes one contact row.
func (r *ContentRepository) DeleteContact(id uint) error {
	res := r.DB.Delete(&models.Contact{}, id)
	if res.Error != nil {
		return apperrors.Internalf(res.Error, "failed to delete contact %d", id)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("contact %d not found", id)
	}
	return nil
}

// ListStatistics retrieves all statistic rows.
func (r *ContentRepository) ListStatistics() ([]models.Statistic, error) {
	var stats []models.Statistic
	if err := r.DB.Order("id ASC").Find(&stats).Error; err != nil {
		return nil, apperrors.Internalf(err, "failed to list statistics")
	}
	return stats, nil
}

// CreateStatistic inserts a new statistic row.
func (r *ContentRepository) CreateStatistic(stat *models.Statistic) error {
	if stat.TitleUz == "" || stat.TitleRu == "" || stat.TitleEn == "" {
		return apperrors.Validationf("all three titles are required")
	}
	if err := r.DB.Create(stat).Error; err != nil {
		return apperrors.Internalf(err, "failed to create statistic")
	}
	return nil
}

// StatisticUpdate carries the optional fields of a statistic edit.
type StatisticUpdate struct {
	TitleUz *string `json:"title_uz"`
	TitleRu *string `json:"title_ru"`
	TitleEn *string `json:"title_en"`
	Number  *int64  `json:"number"`
}

// UpdateStatistic applies a partial update to one statistic row.
func (r *ContentRepository) UpdateStatistic(id uint, in StatisticUpdate) (*models.Statistic, error) {
	var row models.Statistic
	err := r.DB.First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("statistic %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to get statistic %d", id)
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
	if in.Number != nil {
		updates["number"] = *in.Number
	}
	if len(updates) > 0 {
		if err := r.DB.Model(&row).Updates(updates).Error; err != nil {
			return nil, apperrors.Internalf(err, "failed to update statistic %d", id)
		}
	}
	return &row, nil
}

// DeleteStatistic removes one statistic row.
func (r *ContentRepository) DeleteStatistic(id uint) error {
	res := r.DB.Delete(&models.Statistic{}, id)
	if res.Error != nil {
		return apperrors.Internalf(res.Error, "failed to delete statistic %d", id)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("statistic %d not found", id)
	}
	return nil
}

// TextBlockUpdate carries the optional fields of an about-us or
// additional-info edit.
type TextBlockUpdate struct {
	TitleUz   *string `json:"title_uz"`
	TitleRu   *string `json:"title_ru"`
	TitleEn   *string `json:"title_en"`
	ContentUz *string `json:"content_uz"`
	ContentRu *string `json:"content_ru"`
	ContentEn *string `json:"content_en"`
}

func (u TextBlockUpdate) changes() map[string]any {
	updates := map[string]any{}
	if u.TitleUz != nil {
		updates["title_uz"] = *u.TitleUz
	}
	if u.TitleRu != nil {
		updates["title_ru"] = *u.TitleRu
	}
	if u.TitleEn != nil {
		updates["title_en"] = *u.TitleEn
	}
	if u.ContentUz != nil {
		updates["content_uz"] = *u.ContentUz
	}
	if u.ContentRu != nil {
		updates["content_ru"] = *u.ContentRu
	}
	if u.ContentEn != nil {
		updates["content_en"] = *u.ContentEn
	}
	return updates
}

// GetAboutUs retrieves the singleton about-us block, creating an empty one
// on first access.
func (r *ContentRepository) GetAboutUs() (*models.AboutUs, error) {
	var about models.AboutUs
	err := r.DB.First(&about).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.DB.Create(&about).Error; err != nil {
			return nil, apperrors.Internalf(err, "failed to seed about-us")
		}
		return &about, nil
	}
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to get about-us")
	}
	return &about, nil
}

// UpdateAboutUs applies a partial update to the singleton about-us block.
func (r *ContentRepository) UpdateAboutUs(in TextBlockUpdate) (*models.AboutUs, error) {
	about, err := r.GetAboutUs()
	if err != nil {
		return nil, err
	}
	if updates := in.changes(); len(updates) > 0 {
		if err := r.DB.Model(about).Updates(updates).Error; err != nil {
			return nil, apperrors.Internalf(err, "failed to update about-us")
		}
	}
	return about, nil
}

// GetAdditionalInfo retrieves the singleton additional-info block, creating
// an empty one on first access.
func (r *ContentRepository) GetAdditionalInfo() (*models.AdditionalInfo, error) {
	var info models.AdditionalInfo
	err := r.DB.First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.DB.Create(&info).Error; err != nil {
			return nil, apperrors.Internalf(err, "failed to seed additional-info")
		}
		return &info, nil
	}
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to get additional-info")
	}
	return &info, nil
}

// UpdateAdditionalInfo applies a partial update to the singleton
// additional-info block.
func (r *ContentRepository) UpdateAdditionalInfo(in TextBlockUpdate) (*models.AdditionalInfo, error) {
	info, err := r.GetAdditionalInfo()
	if err != nil {
		return nil, err
	}
	if updates := in.changes(); len(updates) > 0 {
		if err := r.DB.Model(info).Updates(updates).Error; err != nil {
			return nil, apperrors.Internalf(err, "failed to update additional-info")
		}
	}
	return info, nil
}
