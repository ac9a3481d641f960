package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/models"
	"github.com/shifo-uz/clinicbackend/uploads"
)

func TestPatientCreateDuplicatePhoneConflicts(t *testing.T) {
	repo := NewPatientRepository(newTestDB(t))

	_, err := repo.Create(PatientCreateInput{
		FirstName:   "Olim",
		SecondName:  "Rahimov",
		PhoneNumber: "+998901234567",
	})
	require.NoError(t, err)

	_, err = repo.Create(PatientCreateInput{
		FirstName:   "Other",
		SecondName:  "Person",
		PhoneNumber: "+998901234567",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.Conflict, apperrors.KindOf(err))
}

func TestPatientDeleteSnapshotsHistory(t *testing.T) {
	db := newTestDB(t)
	repo := NewPatientRepository(db)

	patient, err := repo.Create(PatientCreateInput{
		FirstName:   "Olim",
		SecondName:  "Rahimov",
		PhoneNumber: "+998901234567",
		Problem:     "back pain",
		Files: uploads.GroupByField([]uploads.File{
			file("patient_media", "scan.jpg"),
		}, uploads.MediaOnlyScheme("patient_media")),
	})
	require.NoError(t, err)

	urls, err := repo.Delete(patient.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/test/scan.jpg"}, urls)

	history, err := repo.ListHistory()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "back pain", history[0].Problem)

	// a repeat visit with the same phone number overwrites the snapshot
	patient, err = repo.Create(PatientCreateInput{
		FirstName:   "Olim",
		SecondName:  "Rahimov",
		PhoneNumber: "+998901234567",
		Problem:     "knee pain",
	})
	require.NoError(t, err)
	_, err = repo.Delete(patient.ID)
	require.NoError(t, err)

	history, err = repo.ListHistory()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "knee pain", history[0].Problem)
}

func TestPatientEditPartialUpdate(t *testing.T) {
	repo := NewPatientRepository(newTestDB(t))

	patient, err := repo.Create(PatientCreateInput{
		FirstName:   "Olim",
		SecondName:  "Rahimov",
		PhoneNumber: "+998901234567",
		Problem:     "back pain",
	})
	require.NoError(t, err)

	edited, err := repo.Edit(patient.ID, PatientEditInput{Problem: strPtr("recovered")})
	require.NoError(t, err)
	assert.Equal(t, "recovered", edited.Problem)
	assert.Equal(t, "Olim", edited.FirstName)
}

func TestPatientMediaOwnershipOnDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewPatientRepository(db)

	first, err := repo.Create(PatientCreateInput{
		FirstName: "A", SecondName: "B", PhoneNumber: "+1",
		Files: uploads.GroupByField([]uploads.File{
			file("patient_media", "mine.jpg"),
		}, uploads.MediaOnlyScheme("patient_media")),
	})
	require.NoError(t, err)

	second, err := repo.Create(PatientCreateInput{
		FirstName: "C", SecondName: "D", PhoneNumber: "+2",
	})
	require.NoError(t, err)

	_, err = repo.Edit(second.ID, PatientEditInput{
		DeleteMediaIDs: []uint{first.Media[0].ID},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	var count int64
	require.NoError(t, db.Model(&models.Media{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
