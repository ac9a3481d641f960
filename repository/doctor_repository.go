package repository

import (
	"errors"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/models"
	"github.com/shifo-uz/clinicbackend/uploads"
	"gorm.io/gorm"
)

// AwardInput is one award entry from a doctor form. Key binds the
// award_media__<key> file field on create; on edit an id selects an existing
// row and id-less entries bind files under award_media__new__<n>.
type AwardInput struct {
	ID    *uint   `json:"id"`
	Key   string  `json:"key"`
	Title *string `json:"title"`
	Level *string `json:"level"`
}

// DoctorCreateInput is the decoded create form for a doctor aggregate.
type DoctorCreateInput struct {
	FirstName   string
	SecondName  string
	ThirdName   string
	Description string
	BranchID    uint
	Awards      []AwardInput
	Files       uploads.Grouping
}

// DoctorEditInput is the decoded edit form for a doctor aggregate. Nil
// scalars stay unchanged.
type DoctorEditInput struct {
	FirstName           *string
	SecondName          *string
	ThirdName           *string
	Description         *string
	BranchID            *uint
	DeleteMediaIDs      []uint
	DeleteAwardMediaIDs []uint
	DeleteAwardIDs      []uint
	Awards              []AwardInput
	Files               uploads.Grouping
}

// DoctorRepository handles database operations for doctors and their awards.
type DoctorRepository struct {
	DB *gorm.DB
}

// NewDoctorRepository creates a new instance of DoctorRepository
func NewDoctorRepository(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{DB: db}
}

func preloadDoctor(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Media").
		Preload("Awards", func(db *gorm.DB) *gorm.DB { return db.Order("doctor_awards.id ASC") }).
		Preload("Awards.Media").
		Preload("Branch")
}

// ListAll retrieves all doctors with media, awards and their branch.
func (r *DoctorRepository) ListAll() ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := preloadDoctor(r.DB).Order("id ASC").Find(&doctors).Error
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to list doctors")
	}
	return doctors, nil
}

// ListByBranch retrieves the doctors attached to one branch.
func (r *DoctorRepository) ListByBranch(branchID uint) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := preloadDoctor(r.DB).Where("branch_id = ?", branchID).Order("id ASC").Find(&doctors).Error
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to list doctors for branch %d", branchID)
	}
	return doctors, nil
}

// GetByID retrieves one doctor with media, awards and branch.
func (r *DoctorRepository) GetByID(id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := preloadDoctor(r.DB).First(&doctor, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("doctor %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to get doctor %d", id)
	}
	return &doctor, nil
}

func validateDoctorCreate(in DoctorCreateInput) error {
	if in.FirstName == "" {
		return apperrors.Validationf("first_name is required")
	}
	if in.SecondName == "" {
		return apperrors.Validationf("second_name is required")
	}
	if in.BranchID == 0 {
		return apperrors.Validationf("branch_id is required")
	}
	for i, award := range in.Awards {
		if award.Key == "" {
			return apperrors.Validationf("awards[%d]: key is required", i)
		}
		if award.Title == nil || *award.Title == "" {
			return apperrors.Validationf("awards[%d]: title is required", i)
		}
		if award.Level == nil || *award.Level == "" {
			return apperrors.Validationf("awards[%d]: level is required", i)
		}
	}
	return nil
}

func branchExists(tx *gorm.DB, branchID uint) error {
	var count int64
	if err := tx.Model(&models.Branch{}).Where("id = ?", branchID).Count(&count).Error; err != nil {
		return apperrors.Internalf(err, "failed to check branch %d", branchID)
	}
	if count == 0 {
		return apperrors.NotFoundf("branch %d not found", branchID)
	}
	return nil
}

// Create inserts a doctor with its awards and all attached media in one
// transaction. Award files bind by the client-chosen key of each entry.
func (r *DoctorRepository) Create(in DoctorCreateInput) (*models.Doctor, error) {
	if err := validateDoctorCreate(in); err != nil {
		return nil, err
	}

	var created models.Doctor
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := branchExists(tx, in.BranchID); err != nil {
			return err
		}

		doctor := models.Doctor{
			FirstName:   in.FirstName,
			SecondName:  in.SecondName,
			ThirdName:   in.ThirdName,
			Description: in.Description,
			BranchID:    in.BranchID,
		}
		if err := tx.Create(&doctor).Error; err != nil {
			return apperrors.Internalf(err, "failed to create doctor")
		}
		if err := createMediaRows(tx, models.MediaOwnerDoctor, doctor.ID, in.Files.ForParent()); err != nil {
			return err
		}

		for _, award := range in.Awards {
			row := models.DoctorAward{
				DoctorID: doctor.ID,
				Title:    *award.Title,
				Level:    *award.Level,
			}
			if err := tx.Create(&row).Error; err != nil {
				return apperrors.Internalf(err, "failed to create award %q", award.Key)
			}
			if err := createMediaRows(tx, models.MediaOwnerDoctorAward, row.ID, in.Files.ForKey("awards", award.Key)); err != nil {
				return err
			}
		}

		return preloadDoctor(tx).First(&created, doctor.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Edit applies a partial update to the doctor aggregate in one transaction,
// in the same fixed order the branch engine uses: parent media deletes,
// scalar updates, new parent media, award media deletes, whole-award
// deletes, then award upserts with their media.
func (r *DoctorRepository) Edit(id uint, in DoctorEditInput) (*models.Doctor, error) {
	var out models.Doctor
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var doctor models.Doctor
		if err := tx.First(&doctor, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("doctor %d not found", id)
			}
			return apperrors.Internalf(err, "failed to load doctor %d", id)
		}

		if err := deleteParentMedia(tx, models.MediaOwnerDoctor, id, in.DeleteMediaIDs); err != nil {
			return err
		}

		updates := map[string]any{}
		if in.FirstName != nil {
			updates["first_name"] = *in.FirstName
		}
		if in.SecondName != nil {
			updates["second_name"] = *in.SecondName
		}
		if in.ThirdName != nil {
			updates["third_name"] = *in.ThirdName
		}
		if in.Description != nil {
			updates["description"] = *in.Description
		}
		if in.BranchID != nil {
			if err := branchExists(tx, *in.BranchID); err != nil {
				return err
			}
			updates["branch_id"] = *in.BranchID
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Doctor{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return apperrors.Internalf(err, "failed to update doctor %d", id)
			}
		}

		if err := createMediaRows(tx, models.MediaOwnerDoctor, id, in.Files.ForParent()); err != nil {
			return err
		}

		awardScope := tx.Model(&models.DoctorAward{}).Select("id").Where("doctor_id = ?", id)
		if err := deleteChildMedia(tx, models.MediaOwnerDoctorAward, awardScope, in.DeleteAwardMediaIDs); err != nil {
			return err
		}

		if err := deleteDoctorAwards(tx, id, in.DeleteAwardIDs); err != nil {
			return err
		}

		if err := upsertAwards(tx, id, in.Awards, in.Files); err != nil {
			return err
		}

		return preloadDoctor(tx).First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// deleteDoctorAwards removes whole award rows and their media. Every listed
// id must belong to the doctor.
func deleteDoctorAwards(tx *gorm.DB, doctorID uint, ids []uint) error {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	var count int64
	err := tx.Model(&models.DoctorAward{}).
		Where("id IN ? AND doctor_id = ?", ids, doctorID).Count(&count).Error
	if err != nil {
		return apperrors.Internalf(err, "failed to check awards")
	}
	if count != int64(len(ids)) {
		return apperrors.NotFoundf("some award ids do not belong to doctor %d", doctorID)
	}
	if _, err := deleteOwnedMedia(tx, models.MediaOwnerDoctorAward, ids); err != nil {
		return err
	}
	if err := tx.Where("id IN ?", ids).Delete(&models.DoctorAward{}).Error; err != nil {
		return apperrors.Internalf(err, "failed to delete awards")
	}
	return nil
}

// upsertAwards updates entries carrying an id and creates the rest. New rows
// bind their files positionally, counting only the id-less entries.
func upsertAwards(tx *gorm.DB, doctorID uint, inputs []AwardInput, files uploads.Grouping) error {
	newIdx := 0
	for i, award := range inputs {
		if award.ID != nil {
			var row models.DoctorAward
			err := tx.Where("id = ? AND doctor_id = ?", *award.ID, doctorID).First(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("award %d does not belong to doctor %d", *award.ID, doctorID)
			}
			if err != nil {
				return apperrors.Internalf(err, "failed to load award %d", *award.ID)
			}
			updates := map[string]any{}
			if award.Title != nil {
				updates["title"] = *award.Title
			}
			if award.Level != nil {
				updates["level"] = *award.Level
			}
			if len(updates) > 0 {
				if err := tx.Model(&row).Updates(updates).Error; err != nil {
					return apperrors.Internalf(err, "failed to update award %d", row.ID)
				}
			}
			if err := createMediaRows(tx, models.MediaOwnerDoctorAward, row.ID, files.ForExistingChild("awards", row.ID)); err != nil {
				return err
			}
			continue
		}

		if award.Title == nil || award.Level == nil {
			return apperrors.Validationf("awards[%d]: new entries need a title and level", i)
		}
		row := models.DoctorAward{
			DoctorID: doctorID,
			Title:    *award.Title,
			Level:    *award.Level,
		}
		if err := tx.Create(&row).Error; err != nil {
			return apperrors.Internalf(err, "failed to create award")
		}
		if err := createMediaRows(tx, models.MediaOwnerDoctorAward, row.ID, files.ForNewChild("awards", newIdx)); err != nil {
			return err
		}
		newIdx++
	}
	return nil
}

// Delete removes the doctor, its awards and every media row under them,
// returning the removed media URLs for post-commit file cleanup.
func (r *DoctorRepository) Delete(id uint) ([]string, error) {
	var urls []string
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var doctor models.Doctor
		if err := tx.First(&doctor, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("doctor %d not found", id)
			}
			return apperrors.Internalf(err, "failed to load doctor %d", id)
		}

		var awardIDs []uint
		if err := tx.Model(&models.DoctorAward{}).Where("doctor_id = ?", id).Pluck("id", &awardIDs).Error; err != nil {
			return apperrors.Internalf(err, "failed to list awards for doctor %d", id)
		}

		awardURLs, err := deleteOwnedMedia(tx, models.MediaOwnerDoctorAward, awardIDs)
		if err != nil {
			return err
		}
		doctorURLs, err := deleteOwnedMedia(tx, models.MediaOwnerDoctor, []uint{id})
		if err != nil {
			return err
		}
		urls = append(urls, awardURLs...)
		urls = append(urls, doctorURLs...)

		if err := tx.Where("doctor_id = ?", id).Delete(&models.DoctorAward{}).Error; err != nil {
			return apperrors.Internalf(err, "failed to delete awards for doctor %d", id)
		}
		if err := tx.Delete(&models.Doctor{}, id).Error; err != nil {
			return apperrors.Internalf(err, "failed to delete doctor %d", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}
