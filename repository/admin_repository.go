package repository

import (
	"errors"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/models"
	"gorm.io/gorm"
)

// AdminRepository handles database operations for administrator accounts.
type AdminRepository struct {
	DB *gorm.DB
}

// NewAdminRepository creates a new instance of AdminRepository
func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

// GetByID retrieves one admin account.
func (r *AdminRepository) GetByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	err := r.DB.First(&admin, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("admin %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to get admin %d", id)
	}
	return &admin, nil
}

// GetByUsername retrieves one admin account for login.
func (r *AdminRepository) GetByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.DB.Where("username = ?", username).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Authf("invalid username or password")
	}
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to get admin by username")
	}
	return &admin, nil
}

// Create inserts a new admin account with a hashed password.
func (r *AdminRepository) Create(username, password string) (*models.Admin, error) {
	if username == "" {
		return nil, apperrors.Validationf("username is required")
	}
	if len(password) < 6 {
		return nil, apperrors.Validationf("password must be at least 6 characters")
	}

	var count int64
	if err := r.DB.Model(&models.Admin{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, apperrors.Internalf(err, "failed to check username")
	}
	if count > 0 {
		return nil, apperrors.Conflictf("username %q is already taken", username)
	}

	admin := models.Admin{Username: username}
	if err := admin.SetPassword(password); err != nil {
		return nil, apperrors.Internalf(err, "failed to hash password")
	}
	if err := r.DB.Create(&admin).Error; err != nil {
		return nil, apperrors.Internalf(err, "failed to create admin")
	}
	return &admin, nil
}

// UpdateUsername changes an admin's username, enforcing uniqueness.
func (r *AdminRepository) UpdateUsername(id uint, username string) (*models.Admin, error) {
	if username == "" {
		return nil, apperrors.Validationf("username is required")
	}

	var count int64
	err := r.DB.Model(&models.Admin{}).Where("username = ? AND id <> ?", username, id).Count(&count).Error
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to check username")
	}
	if count > 0 {
		return nil, apperrors.Conflictf("username %q is already taken", username)
	}

	admin, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	admin.Username = username
	if err := r.DB.Save(admin).Error; err != nil {
		return nil, apperrors.Internalf(err, "failed to update admin %d", id)
	}
	return admin, nil
}

// UpdatePassword changes an admin's password after verifying the old one.
func (r *AdminRepository) UpdatePassword(id uint, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return apperrors.Validationf("password must be at least 6 characters")
	}

	admin, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if !admin.CheckPassword(oldPassword) {
		return apperrors.Authf("old password is incorrect")
	}
	if err := admin.SetPassword(newPassword); err != nil {
		return apperrors.Internalf(err, "failed to hash password")
	}
	if err := r.DB.Save(admin).Error; err != nil {
		return apperrors.Internalf(err, "failed to update admin %d", id)
	}
	return nil
}

// Count returns the number of admin accounts, used to decide whether the
// bootstrap account must be seeded.
func (r *AdminRepository) Count() (int64, error) {
	var count int64
	if err := r.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return 0, apperrors.Internalf(err, "failed to count admins")
	}
	return count, nil
}
