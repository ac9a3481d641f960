package repository

import (
	"errors"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/models"
	"github.com/shifo-uz/clinicbackend/uploads"
	"gorm.io/gorm"
)

// ReceptionCreateInput is the decoded create form for a reception account.
type ReceptionCreateInput struct {
	Username   string
	Password   string
	FirstName  string
	SecondName string
	Files      uploads.Grouping
}

// ReceptionEditInput is the decoded edit form for a reception account. Nil
// fields stay unchanged; a set Password is re-hashed.
type ReceptionEditInput struct {
	Username       *string
	Password       *string
	FirstName      *string
	SecondName     *string
	DeleteMediaIDs []uint
	Files          uploads.Grouping
}

// ReceptionRepository handles database operations for reception accounts.
type ReceptionRepository struct {
	DB *gorm.DB
}

// NewReceptionRepository creates a new instance of ReceptionRepository
func NewReceptionRepository(db *gorm.DB) *ReceptionRepository {
	return &ReceptionRepository{DB: db}
}

// ListAll retrieves all reception accounts with their media.
func (r *ReceptionRepository) ListAll() ([]models.Reception, error) {
	var receptions []models.Reception
	err := r.DB.Preload("Media").Order("id ASC").Find(&receptions).Error
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to list receptions")
	}
	return receptions, nil
}

// GetByID retrieves one reception account with its media.
func (r *ReceptionRepository) GetByID(id uint) (*models.Reception, error) {
	var reception models.Reception
	err := r.DB.Preload("Media").First(&reception, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("reception %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to get reception %d", id)
	}
	return &reception, nil
}

// GetByUsername retrieves one reception account for login.
func (r *ReceptionRepository) GetByUsername(username string) (*models.Reception, error) {
	var reception models.Reception
	err := r.DB.Where("username = ?", username).First(&reception).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Authf("invalid username or password")
	}
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to get reception by username")
	}
	return &reception, nil
}

// Create inserts a reception account and its media in one transaction.
func (r *ReceptionRepository) Create(in ReceptionCreateInput) (*models.Reception, error) {
	if in.Username == "" {
		return nil, apperrors.Validationf("username is required")
	}
	if len(in.Password) < 6 {
		return nil, apperrors.Validationf("password must be at least 6 characters")
	}

	var created models.Reception
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Reception{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
			return apperrors.Internalf(err, "failed to check username")
		}
		if count > 0 {
			return apperrors.Conflictf("username %q is already taken", in.Username)
		}

		reception := models.Reception{
			Username:   in.Username,
			FirstName:  in.FirstName,
			SecondName: in.SecondName,
		}
		if err := reception.SetPassword(in.Password); err != nil {
			return apperrors.Internalf(err, "failed to hash password")
		}
		if err := tx.Create(&reception).Error; err != nil {
			return apperrors.Internalf(err, "failed to create reception")
		}
		if err := createMediaRows(tx, models.MediaOwnerReception, reception.ID, in.Files.ForParent()); err != nil {
			return err
		}
		return tx.Preload("Media").First(&created, reception.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Edit applies a partial update: strict media deletes first, then scalar and
// credential updates, then new media, all in one transaction.
func (r *ReceptionRepository) Edit(id uint, in ReceptionEditInput) (*models.Reception, error) {
	var out models.Reception
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var reception models.Reception
		if err := tx.First(&reception, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("reception %d not found", id)
			}
			return apperrors.Internalf(err, "failed to load reception %d", id)
		}

		if err := deleteParentMedia(tx, models.MediaOwnerReception, id, in.DeleteMediaIDs); err != nil {
			return err
		}

		updates := map[string]any{}
		if in.Username != nil {
			var count int64
			err := tx.Model(&models.Reception{}).
				Where("username = ? AND id <> ?", *in.Username, id).Count(&count).Error
			if err != nil {
				return apperrors.Internalf(err, "failed to check username")
			}
			if count > 0 {
				return apperrors.Conflictf("username %q is already taken", *in.Username)
			}
			updates["username"] = *in.Username
		}
		if in.Password != nil {
			if len(*in.Password) < 6 {
				return apperrors.Validationf("password must be at least 6 characters")
			}
			hashed := models.Reception{}
			if err := hashed.SetPassword(*in.Password); err != nil {
				return apperrors.Internalf(err, "failed to hash password")
			}
			updates["password_hash"] = hashed.PasswordHash
		}
		if in.FirstName != nil {
			updates["first_name"] = *in.FirstName
		}
		if in.SecondName != nil {
			updates["second_name"] = *in.SecondName
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Reception{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return apperrors.Internalf(err, "failed to update reception %d", id)
			}
		}

		if err := createMediaRows(tx, models.MediaOwnerReception, id, in.Files.ForParent()); err != nil {
			return err
		}

		return tx.Preload("Media").First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the reception account and its media rows, returning the
// removed media URLs for post-commit file cleanup.
func (r *ReceptionRepository) Delete(id uint) ([]string, error) {
	var urls []string
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var reception models.Reception
		if err := tx.First(&reception, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("reception %d not found", id)
			}
			return apperrors.Internalf(err, "failed to load reception %d", id)
		}

		deleted, err := deleteOwnedMedia(tx, models.MediaOwnerReception, []uint{id})
		if err != nil {
			return err
		}
		urls = deleted

		if err := tx.Delete(&models.Reception{}, id).Error; err != nil {
			return apperrors.Internalf(err, "failed to delete reception %d", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}
