package repository

import (
	"errors"
	"strings"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/models"
	"github.com/shifo-uz/clinicbackend/uploads"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PatientCreateInput is the decoded intake form for a patient.
type PatientCreateInput struct {
	FirstName   string
	SecondName  string
	ThirdName   string
	PhoneNumber string
	Problem     string
	Files       uploads.Grouping
}

// PatientEditInput is the decoded edit form for a patient. Nil fields stay
// unchanged.
type PatientEditInput struct {
	FirstName      *string
	SecondName     *string
	ThirdName      *string
	PhoneNumber    *string
	Problem        *string
	DeleteMediaIDs []uint
	Files          uploads.Grouping
}

// PatientRepository handles database operations for patient intake records
// and their history snapshots.
type PatientRepository struct {
	DB *gorm.DB
}

// NewPatientRepository creates a new instance of PatientRepository
func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{DB: db}
}

// ListAll retrieves all patients, newest first.
func (r *PatientRepository) ListAll() ([]models.Patient, error) {
	var patients []models.Patient
	err := r.DB.Preload("Media").Order("id DESC").Find(&patients).Error
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to list patients")
	}
	return patients, nil
}

// GetByID retrieves one patient with its media.
func (r *PatientRepository) GetByID(id uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.DB.Preload("Media").First(&patient, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("patient %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to get patient %d", id)
	}
	return &patient, nil
}

// ListHistory retrieves the history snapshots of deleted patients.
func (r *PatientRepository) ListHistory() ([]models.PatientHistory, error) {
	var history []models.PatientHistory
	err := r.DB.Order("updated_at DESC").Find(&history).Error
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to list patient history")
	}
	return history, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}

// Create inserts a patient and its media in one transaction. Phone numbers
// are unique; a duplicate submission is a conflict, not an internal error.
func (r *PatientRepository) Create(in PatientCreateInput) (*models.Patient, error) {
	if in.FirstName == "" {
		return nil, apperrors.Validationf("first_name is required")
	}
	if in.SecondName == "" {
		return nil, apperrors.Validationf("second_name is required")
	}
	if in.PhoneNumber == "" {
		return nil, apperrors.Validationf("phone_number is required")
	}

	var created models.Patient
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		patient := models.Patient{
			FirstName:   in.FirstName,
			SecondName:  in.SecondName,
			ThirdName:   in.ThirdName,
			PhoneNumber: in.PhoneNumber,
			Problem:     in.Problem,
		}
		if err := tx.Create(&patient).Error; err != nil {
			if isUniqueViolation(err) {
				return apperrors.Conflictf("a patient with phone number %s already exists", in.PhoneNumber)
			}
			return apperrors.Internalf(err, "failed to create patient")
		}
		if err := createMediaRows(tx, models.MediaOwnerPatient, patient.ID, in.Files.ForParent()); err != nil {
			return err
		}
		return tx.Preload("Media").First(&created, patient.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Edit applies a partial update: strict media deletes first, then scalar
// updates, then new media, all in one transaction.
func (r *PatientRepository) Edit(id uint, in PatientEditInput) (*models.Patient, error) {
	var out models.Patient
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var patient models.Patient
		if err := tx.First(&patient, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("patient %d not found", id)
			}
			return apperrors.Internalf(err, "failed to load patient %d", id)
		}

		if err := deleteParentMedia(tx, models.MediaOwnerPatient, id, in.DeleteMediaIDs); err != nil {
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
		if in.PhoneNumber != nil {
			updates["phone_number"] = *in.PhoneNumber
		}
		if in.Problem != nil {
			updates["problem"] = *in.Problem
		}
		if len(updates) > 0 {
			err := tx.Model(&models.Patient{}).Where("id = ?", id).Updates(updates).Error
			if err != nil {
				if isUniqueViolation(err) {
					return apperrors.Conflictf("a patient with that phone number already exists")
				}
				return apperrors.Internalf(err, "failed to update patient %d", id)
			}
		}

		if err := createMediaRows(tx, models.MediaOwnerPatient, id, in.Files.ForParent()); err != nil {
			return err
		}

		return tx.Preload("Media").First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the patient and its media, writing a history snapshot in
// the same transaction. Snapshots are keyed by phone number: a repeat visit
// overwrites the previous one. Returns the removed media URLs.
func (r *PatientRepository) Delete(id uint) ([]string, error) {
	var urls []string
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var patient models.Patient
		if err := tx.First(&patient, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("patient %d not found", id)
			}
			return apperrors.Internalf(err, "failed to load patient %d", id)
		}

		snapshot := models.PatientHistory{
			FirstName:   patient.FirstName,
			SecondName:  patient.SecondName,
			ThirdName:   patient.ThirdName,
			PhoneNumber: patient.PhoneNumber,
			Problem:     patient.Problem,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "phone_number"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"first_name", "second_name", "third_name", "problem", "updated_at",
			}),
		}).Create(&snapshot).Error
		if err != nil {
			return apperrors.Internalf(err, "failed to snapshot patient %d", id)
		}

		deleted, err := deleteOwnedMedia(tx, models.MediaOwnerPatient, []uint{id})
		if err != nil {
			return err
		}
		urls = deleted

		if err := tx.Delete(&models.Patient{}, id).Error; err != nil {
			return apperrors.Internalf(err, "failed to delete patient %d", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}
