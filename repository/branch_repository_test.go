package repository

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/models"
	"github.com/shifo-uz/clinicbackend/uploads"
)

func seedBranch(t *testing.T, repo *BranchRepository) *models.Branch {
	t.Helper()
	branch, err := repo.Create(BranchCreateInput{
		Title:       "Main",
		Description: "Central branch",
		Services: []ServiceInput{
			{Key: "xray", TitleUz: strPtr("Rentgen"), TitleRu: strPtr("Рентген"), TitleEn: strPtr("X-Ray"), Price: floatPtr(120000)},
		},
		Techs: []TechInput{
			{Key: "mri", Title: strPtr("MRI"), Description: strPtr("3T scanner")},
		},
		Files: uploads.GroupByField([]uploads.File{
			file("branch_media", "b1.jpg"),
			file("branch_media", "b2.jpg"),
			file("service_media__xray", "s1.jpg"),
			file("tech_media__mri", "t1.jpg"),
		}, uploads.BranchScheme()),
	})
	require.NoError(t, err)
	return branch
}

func TestBranchCreateBindsMediaByKey(t *testing.T) {
	repo := NewBranchRepository(newTestDB(t))
	branch := seedBranch(t, repo)

	require.Len(t, branch.Media, 2)
	assert.Equal(t, "/uploads/test/b1.jpg", branch.Media[0].URL)

	require.Len(t, branch.Services, 1)
	require.Len(t, branch.Services[0].Media, 1)
	assert.Equal(t, "/uploads/test/s1.jpg", branch.Services[0].Media[0].URL)
	assert.Equal(t, 120000.0, branch.Services[0].Price)

	require.Len(t, branch.Techs, 1)
	require.Len(t, branch.Techs[0].Media, 1)
	assert.Equal(t, "/uploads/test/t1.jpg", branch.Techs[0].Media[0].URL)
}

func TestBranchCreateValidationWritesNothing(t *testing.T) {
	db := newTestDB(t)
	repo := NewBranchRepository(db)

	_, err := repo.Create(BranchCreateInput{Description: "no title"})
	require.Error(t, err)
	assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))

	// service without a key is rejected before any insert
	_, err = repo.Create(BranchCreateInput{
		Title:       "T",
		Description: "D",
		Services:    []ServiceInput{{TitleUz: strPtr("a"), TitleRu: strPtr("b"), TitleEn: strPtr("c"), Price: floatPtr(1)}},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))

	var count int64
	require.NoError(t, db.Model(&models.Branch{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBranchEditPartialUpdate(t *testing.T) {
	repo := NewBranchRepository(newTestDB(t))
	branch := seedBranch(t, repo)

	// nil means leave unchanged, empty string means overwrite
	edited, err := repo.Edit(branch.ID, BranchEditInput{Title: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", edited.Title)
	assert.Equal(t, "Central branch", edited.Description)

	edited, err = repo.Edit(branch.ID, BranchEditInput{Description: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", edited.Title)
	assert.Equal(t, "", edited.Description)
}

func TestBranchEditUpsertsChildren(t *testing.T) {
	repo := NewBranchRepository(newTestDB(t))
	branch := seedBranch(t, repo)
	existingID := branch.Services[0].ID

	files := uploads.GroupByField([]uploads.File{
		file("service_media__"+itoa(existingID), "extra.jpg"),
		file("service_media__new__0", "n0.jpg"),
		file("service_media__new__1", "n1.jpg"),
	}, uploads.BranchScheme())

	edited, err := repo.Edit(branch.ID, BranchEditInput{
		Services: []ServiceInput{
			{ID: &existingID, Price: floatPtr(99000)},
			{Key: "eco", TitleUz: strPtr("Exo"), TitleRu: strPtr("Эхо"), TitleEn: strPtr("Echo"), Price: floatPtr(50000)},
			{Key: "lab", TitleUz: strPtr("Labo"), TitleRu: strPtr("Лаб"), TitleEn: strPtr("Lab"), Price: floatPtr(30000)},
		},
		Files: files,
	})
	require.NoError(t, err)
	require.Len(t, edited.Services, 3)

	// existing row updated in place, other fields untouched
	assert.Equal(t, existingID, edited.Services[0].ID)
	assert.Equal(t, 99000.0, edited.Services[0].Price)
	assert.Equal(t, "X-Ray", edited.Services[0].TitleEn)
	require.Len(t, edited.Services[0].Media, 2)

	// id-less entries bind files positionally, in order of appearance
	require.Len(t, edited.Services[1].Media, 1)
	assert.Equal(t, "/uploads/test/n0.jpg", edited.Services[1].Media[0].URL)
	require.Len(t, edited.Services[2].Media, 1)
	assert.Equal(t, "/uploads/test/n1.jpg", edited.Services[2].Media[0].URL)
}

func TestBranchEditRejectsForeignChild(t *testing.T) {
	db := newTestDB(t)
	repo := NewBranchRepository(db)
	first := seedBranch(t, repo)

	second, err := repo.Create(BranchCreateInput{Title: "Second", Description: "Other"})
	require.NoError(t, err)

	foreignID := first.Services[0].ID
	_, err = repo.Edit(second.ID, BranchEditInput{
		Title:    strPtr("should not apply"),
		Services: []ServiceInput{{ID: &foreignID, Price: floatPtr(1)}},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	// whole transaction rolled back, including the title update
	reloaded, err := repo.GetByID(second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Second", reloaded.Title)
}

func TestBranchEditRejectsForeignMediaDelete(t *testing.T) {
	repo := NewBranchRepository(newTestDB(t))
	first := seedBranch(t, repo)
	second, err := repo.Create(BranchCreateInput{
		Title:       "Second",
		Description: "Other",
		Files: uploads.GroupByField([]uploads.File{
			file("branch_media", "other.jpg"),
		}, uploads.BranchScheme()),
	})
	require.NoError(t, err)

	_, err = repo.Edit(first.ID, BranchEditInput{
		DeleteMediaIDs: []uint{second.Media[0].ID},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	// the other branch's media survived
	reloaded, err := repo.GetByID(second.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Media, 1)
}

func TestBranchEditDeleteThenReferenceSameService(t *testing.T) {
	db := newTestDB(t)
	repo := NewBranchRepository(db)
	branch := seedBranch(t, repo)
	serviceID := branch.Services[0].ID

	// the delete list runs before the upsert, so an edit that deletes a
	// service and references it in the same request must fail whole
	_, err := repo.Edit(branch.ID, BranchEditInput{
		Title:            strPtr("should not apply"),
		DeleteServiceIDs: []uint{serviceID},
		Services:         []ServiceInput{{ID: &serviceID, Price: floatPtr(1)}},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	// nothing persisted: the title, the service and its media all survive
	reloaded, err := repo.GetByID(branch.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main", reloaded.Title)
	require.Len(t, reloaded.Services, 1)
	assert.Equal(t, serviceID, reloaded.Services[0].ID)
	assert.Equal(t, 120000.0, reloaded.Services[0].Price)

	var svcCount int64
	require.NoError(t, db.Model(&models.BranchService{}).Count(&svcCount).Error)
	assert.EqualValues(t, 1, svcCount)
}

func TestBranchEditDeletesChildWithMedia(t *testing.T) {
	db := newTestDB(t)
	repo := NewBranchRepository(db)
	branch := seedBranch(t, repo)
	serviceID := branch.Services[0].ID

	edited, err := repo.Edit(branch.ID, BranchEditInput{DeleteServiceIDs: []uint{serviceID}})
	require.NoError(t, err)
	assert.Empty(t, edited.Services)

	var orphans int64
	require.NoError(t, db.Model(&models.Media{}).
		Where("owner_type = ? AND owner_id = ?", models.MediaOwnerBranchService, serviceID).
		Count(&orphans).Error)
	assert.Zero(t, orphans)
}

func TestBranchEditNewServiceNeedsAllFields(t *testing.T) {
	repo := NewBranchRepository(newTestDB(t))
	branch := seedBranch(t, repo)

	_, err := repo.Edit(branch.ID, BranchEditInput{
		Services: []ServiceInput{{Key: "eco", TitleUz: strPtr("only one title")}},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
}

func TestBranchDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewBranchRepository(db)
	branch := seedBranch(t, repo)

	urls, err := repo.Delete(branch.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"/uploads/test/b1.jpg", "/uploads/test/b2.jpg",
		"/uploads/test/s1.jpg", "/uploads/test/t1.jpg",
	}, urls)

	var mediaCount, svcCount, techCount int64
	require.NoError(t, db.Model(&models.Media{}).Count(&mediaCount).Error)
	require.NoError(t, db.Model(&models.BranchService{}).Count(&svcCount).Error)
	require.NoError(t, db.Model(&models.BranchTech{}).Count(&techCount).Error)
	assert.Zero(t, mediaCount)
	assert.Zero(t, svcCount)
	assert.Zero(t, techCount)

	_, err = repo.GetByID(branch.ID)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestBranchDeleteRefusedWithDoctors(t *testing.T) {
	db := newTestDB(t)
	repo := NewBranchRepository(db)
	branch := seedBranch(t, repo)

	doctorRepo := NewDoctorRepository(db)
	_, err := doctorRepo.Create(DoctorCreateInput{
		FirstName:  "Aziz",
		SecondName: "Karimov",
		BranchID:   branch.ID,
	})
	require.NoError(t, err)

	_, err = repo.Delete(branch.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.Conflict, apperrors.KindOf(err))

	// nothing was removed
	reloaded, err := repo.GetByID(branch.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Media, 2)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
