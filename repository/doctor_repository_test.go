package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/models"
	"github.com/shifo-uz/clinicbackend/uploads"
)

func seedDoctor(t *testing.T, db interface {
	Create(in DoctorCreateInput) (*models.Doctor, error)
}, branchID uint) *models.Doctor {
	t.Helper()
	doctor, err := db.Create(DoctorCreateInput{
		FirstName:   "Aziza",
		SecondName:  "Tosheva",
		Description: "Cardiologist",
		BranchID:    branchID,
		Awards: []AwardInput{
			{Key: "phd", Title: strPtr("PhD"), Level: strPtr("international")},
		},
		Files: uploads.GroupByField([]uploads.File{
			file("doctor_media", "d1.jpg"),
			file("award_media__phd", "a1.jpg"),
		}, uploads.DoctorScheme()),
	})
	require.NoError(t, err)
	return doctor
}

func TestDoctorCreateRequiresExistingBranch(t *testing.T) {
	repo := NewDoctorRepository(newTestDB(t))

	_, err := repo.Create(DoctorCreateInput{
		FirstName:  "A",
		SecondName: "B",
		BranchID:   999,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestDoctorCreateBindsAwardMediaByKey(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, NewBranchRepository(db))
	doctor := seedDoctor(t, NewDoctorRepository(db), branch.ID)

	require.Len(t, doctor.Media, 1)
	assert.Equal(t, "/uploads/test/d1.jpg", doctor.Media[0].URL)
	require.Len(t, doctor.Awards, 1)
	require.Len(t, doctor.Awards[0].Media, 1)
	assert.Equal(t, "/uploads/test/a1.jpg", doctor.Awards[0].Media[0].URL)
	require.NotNil(t, doctor.Branch)
	assert.Equal(t, branch.ID, doctor.Branch.ID)
}

func TestDoctorEditUpsertsAwards(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, NewBranchRepository(db))
	repo := NewDoctorRepository(db)
	doctor := seedDoctor(t, repo, branch.ID)
	awardID := doctor.Awards[0].ID

	edited, err := repo.Edit(doctor.ID, DoctorEditInput{
		Awards: []AwardInput{
			{ID: &awardID, Level: strPtr("national")},
			{Key: "cert", Title: strPtr("Best Doctor"), Level: strPtr("regional")},
		},
		Files: uploads.GroupByField([]uploads.File{
			file("award_media__"+itoa(awardID), "more.jpg"),
			file("award_media__new__0", "new0.jpg"),
		}, uploads.DoctorScheme()),
	})
	require.NoError(t, err)
	require.Len(t, edited.Awards, 2)

	assert.Equal(t, "national", edited.Awards[0].Level)
	assert.Equal(t, "PhD", edited.Awards[0].Title)
	assert.Len(t, edited.Awards[0].Media, 2)

	assert.Equal(t, "Best Doctor", edited.Awards[1].Title)
	require.Len(t, edited.Awards[1].Media, 1)
	assert.Equal(t, "/uploads/test/new0.jpg", edited.Awards[1].Media[0].URL)
}

func TestDoctorEditRejectsForeignAward(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, NewBranchRepository(db))
	repo := NewDoctorRepository(db)
	first := seedDoctor(t, repo, branch.ID)

	second, err := repo.Create(DoctorCreateInput{
		FirstName:  "Bobur",
		SecondName: "Aliev",
		BranchID:   branch.ID,
	})
	require.NoError(t, err)

	foreignID := first.Awards[0].ID
	_, err = repo.Edit(second.ID, DoctorEditInput{
		Awards: []AwardInput{{ID: &foreignID, Level: strPtr("stolen")}},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestDoctorEditBranchMove(t *testing.T) {
	db := newTestDB(t)
	branchRepo := NewBranchRepository(db)
	first := seedBranch(t, branchRepo)
	second, err := branchRepo.Create(BranchCreateInput{Title: "Second", Description: "Other"})
	require.NoError(t, err)

	repo := NewDoctorRepository(db)
	doctor := seedDoctor(t, repo, first.ID)

	edited, err := repo.Edit(doctor.ID, DoctorEditInput{BranchID: uintPtr(second.ID)})
	require.NoError(t, err)
	assert.Equal(t, second.ID, edited.BranchID)

	_, err = repo.Edit(doctor.ID, DoctorEditInput{BranchID: uintPtr(12345)})
	require.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestDoctorDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, NewBranchRepository(db))
	repo := NewDoctorRepository(db)
	doctor := seedDoctor(t, repo, branch.ID)

	urls, err := repo.Delete(doctor.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/uploads/test/d1.jpg", "/uploads/test/a1.jpg"}, urls)

	var awards int64
	require.NoError(t, db.Model(&models.DoctorAward{}).Count(&awards).Error)
	assert.Zero(t, awards)

	var orphans int64
	require.NoError(t, db.Model(&models.Media{}).
		Where("owner_type IN ?", []string{models.MediaOwnerDoctor, models.MediaOwnerDoctorAward}).
		Count(&orphans).Error)
	assert.Zero(t, orphans)
}
