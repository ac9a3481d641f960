package repository

import (
	"errors"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/models"
	"gorm.io/gorm"
)

// FeedbackRepository handles database operations for visitor feedback.
type FeedbackRepository struct {
	DB *gorm.DB
}

// NewFeedbackRepository creates a new instance of FeedbackRepository
func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

// Create inserts a new feedback entry; it starts unapproved.
func (r *FeedbackRepository) Create(feedback *models.Feedback) error {
	if feedback.FullName == "" {
		return apperrors.Validationf("full_name is required")
	}
	if feedback.Content == "" {
		return apperrors.Validationf("content is required")
	}
	feedback.IsApproved = false
	if err := r.DB.Create(feedback).Error; err != nil {
		return apperrors.Internalf(err, "failed to create feedback")
	}
	return nil
}

// ListApproved retrieves the publicly visible feedback, newest first.
func (r *FeedbackRepository) ListApproved() ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.DB.Where("is_approved = ?", true).Order("id DESC").Find(&feedbacks).Error
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to list feedback")
	}
	return feedbacks, nil
}

// ListAll retrieves every feedback entry for the admin panel, newest first.
func (r *FeedbackRepository) ListAll() ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.DB.Order("id DESC").Find(&feedbacks).Error
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to list feedback")
	}
	return feedbacks, nil
}

// SetApproval flips the approval flag on one feedback entry.
func (r *FeedbackRepository) SetApproval(id uint, approved bool) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.DB.First(&feedback, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("feedback %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to get feedback %d", id)
	}
	err = r.DB.Model(&feedback).Update("is_approved", approved).Error
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to update feedback %d", id)
	}
	return &feedback, nil
}

// Delete removes one feedback entry.
func (r *FeedbackRepository) Delete(id uint) error {
	res := r.DB.Delete(&models.Feedback{}, id)
	if res.Error != nil {
		return apperrors.Internalf(res.Error, "failed to delete feedback %d", id)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("feedback %d not found", id)
	}
	return nil
}
