package repository

import (
	"errors"

	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/models"
	"github.com/shifo-uz/clinicbackend/uploads"
	"gorm.io/gorm"
)

// ServiceInput is one service entry from a branch form. On create every
// field is required and Key names the service_media__<key> file field that
// carries its files. On edit a set ID selects an existing row (nil fields
// stay unchanged), while an id-less entry creates a new row whose files
// arrive under service_media__new__<n>.
type ServiceInput struct {
	ID      *uint    `json:"id"`
	Key     string   `json:"key"`
	TitleUz *string  `json:"title_uz"`
	TitleRu *string  `json:"title_ru"`
	TitleEn *string  `json:"title_en"`
	Price   *float64 `json:"price"`
}

// TechInput is one equipment entry from a branch form; same id/key rules as
// ServiceInput, with tech_media__ file fields.
type TechInput struct {
	ID          *uint   `json:"id"`
	Key         string  `json:"key"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// BranchCreateInput is the decoded create form for a branch aggregate.
type BranchCreateInput struct {
	Title       string
	Description string
	Services    []ServiceInput
	Techs       []TechInput
	Files       uploads.Grouping
}

// BranchEditInput is the decoded edit form for a branch aggregate. Nil
// scalars stay unchanged; delete lists and child upserts apply in a fixed
// order inside one transaction.
type BranchEditInput struct {
	Title                 *string
	Description           *string
	DeleteMediaIDs        []uint
	DeleteServiceMediaIDs []uint
	DeleteTechMediaIDs    []uint
	DeleteServiceIDs      []uint
	DeleteTechIDs         []uint
	Services              []ServiceInput
	Techs                 []TechInput
	Files                 uploads.Grouping
}

// BranchRepository handles database operations for the branch aggregate:
// branches, their services and techs, and the media attached to all three.
type BranchRepository struct {
	DB *gorm.DB
}

// NewBranchRepository creates a new instance of BranchRepository
func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{DB: db}
}

func preloadBranch(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Media").
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("branch_services.id ASC") }).
		Preload("Services.Media").
		Preload("Techs", func(db *gorm.DB) *gorm.DB { return db.Order("branch_techs.id ASC") }).
		Preload("Techs.Media")
}

// ListAll retrieves all branches with their media and child collections.
func (r *BranchRepository) ListAll() ([]models.Branch, error) {
	var branches []models.Branch
	err := preloadBranch(r.DB).Order("id ASC").Find(&branches).Error
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to list branches")
	}
	return branches, nil
}

// GetByID retrieves one branch with its media and child collections.
func (r *BranchRepository) GetByID(id uint) (*models.Branch, error) {
	var branch models.Branch
	err := preloadBranch(r.DB).First(&branch, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("branch %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to get branch %d", id)
	}
	return &branch, nil
}

func validateBranchCreate(in BranchCreateInput) error {
	if in.Title == "" {
		return apperrors.Validationf("title is required")
	}
	if in.Description == "" {
		return apperrors.Validationf("description is required")
	}
	for i, svc := range in.Services {
		if svc.Key == "" {
			return apperrors.Validationf("services[%d]: key is required", i)
		}
		if svc.TitleUz == nil || *svc.TitleUz == "" ||
			svc.TitleRu == nil || *svc.TitleRu == "" ||
			svc.TitleEn == nil || *svc.TitleEn == "" {
			return apperrors.Validationf("services[%d]: all three titles are required", i)
		}
		if svc.Price == nil {
			return apperrors.Validationf("services[%d]: price is required", i)
		}
	}
	for i, tech := range in.Techs {
		if tech.Key == "" {
			return apperrors.Validationf("techs[%d]: key is required", i)
		}
		if tech.Title == nil || *tech.Title == "" {
			return apperrors.Validationf("techs[%d]: title is required", i)
		}
		if tech.Description == nil || *tech.Description == "" {
			return apperrors.Validationf("techs[%d]: description is required", i)
		}
	}
	return nil
}

// Create inserts a branch with its services, techs and all attached media in
// one transaction. Service and tech files bind by the client-chosen key of
// each entry; nothing is written if any part fails.
func (r *BranchRepository) Create(in BranchCreateInput) (*models.Branch, error) {
	if err := validateBranchCreate(in); err != nil {
		return nil, err
	}

	var created models.Branch
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		branch := models.Branch{Title: in.Title, Description: in.Description}
		if err := tx.Create(&branch).Error; err != nil {
			return apperrors.Internalf(err, "failed to create branch")
		}
		if err := createMediaRows(tx, models.MediaOwnerBranch, branch.ID, in.Files.ForParent()); err != nil {
			return err
		}

		for _, svc := range in.Services {
			row := models.BranchService{
				BranchID: branch.ID,
				TitleUz:  *svc.TitleUz,
				TitleRu:  *svc.TitleRu,
				TitleEn:  *svc.TitleEn,
				Price:    *svc.Price,
			}
			if err := tx.Create(&row).Error; err != nil {
				return apperrors.Internalf(err, "failed to create service %q", svc.Key)
			}
			if err := createMediaRows(tx, models.MediaOwnerBranchService, row.ID, in.Files.ForKey("services", svc.Key)); err != nil {
				return err
			}
		}

		for _, tech := range in.Techs {
			row := models.BranchTech{
				BranchID:    branch.ID,
				Title:       *tech.Title,
				Description: *tech.Description,
			}
			if err := tx.Create(&row).Error; err != nil {
				return apperrors.Internalf(err, "failed to create tech %q", tech.Key)
			}
			if err := createMediaRows(tx, models.MediaOwnerBranchTech, row.ID, in.Files.ForKey("techs", tech.Key)); err != nil {
				return err
			}
		}

		return preloadBranch(tx).First(&created, branch.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Edit applies a partial update to the branch aggregate in one transaction,
// always in the same order: parent media deletes, parent scalar updates, new
// parent media, child media deletes, whole-child deletes, then child upserts
// with their media. Any ownership mismatch in a delete list or upsert aborts
// the whole transaction.
func (r *BranchRepository) Edit(id uint, in BranchEditInput) (*models.Branch, error) {
	var out models.Branch
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var branch models.Branch
		if err := tx.First(&branch, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("branch %d not found", id)
			}
			return apperrors.Internalf(err, "failed to load branch %d", id)
		}

		if err := deleteParentMedia(tx, models.MediaOwnerBranch, id, in.DeleteMediaIDs); err != nil {
			return err
		}

		updates := map[string]any{}
		if in.Title != nil {
			updates["title"] = *in.Title
		}
		if in.Description != nil {
			updates["description"] = *in.Description
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Branch{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return apperrors.Internalf(err, "failed to update branch %d", id)
			}
		}

		if err := createMediaRows(tx, models.MediaOwnerBranch, id, in.Files.ForParent()); err != nil {
			return err
		}

		serviceScope := tx.Model(&models.BranchService{}).Select("id").Where("branch_id = ?", id)
		if err := deleteChildMedia(tx, models.MediaOwnerBranchService, serviceScope, in.DeleteServiceMediaIDs); err != nil {
			return err
		}
		techScope := tx.Model(&models.BranchTech{}).Select("id").Where("branch_id = ?", id)
		if err := deleteChildMedia(tx, models.MediaOwnerBranchTech, techScope, in.DeleteTechMediaIDs); err != nil {
			return err
		}

		if err := deleteBranchServices(tx, id, in.DeleteServiceIDs); err != nil {
			return err
		}
		if err := deleteBranchTechs(tx, id, in.DeleteTechIDs); err != nil {
			return err
		}

		if err := upsertServices(tx, id, in.Services, in.Files); err != nil {
			return err
		}
		if err := upsertTechs(tx, id, in.Techs, in.Files); err != nil {
			return err
		}

		return preloadBranch(tx).First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// deleteBranchServices removes whole service rows and their media. Every
// listed id must belong to the branch.
func deleteBranchServices(tx *gorm.DB, branchID uint, ids []uint) error {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	var count int64
	err := tx.Model(&models.BranchService{}).
		Where("id IN ? AND branch_id = ?", ids, branchID).Count(&count).Error
	if err != nil {
		return apperrors.Internalf(err, "failed to check services")
	}
	if count != int64(len(ids)) {
		return apperrors.NotFoundf("some service ids do not belong to branch %d", branchID)
	}
	if _, err := deleteOwnedMedia(tx, models.MediaOwnerBranchService, ids); err != nil {
		return err
	}
	if err := tx.Where("id IN ?", ids).Delete(&models.BranchService{}).Error; err != nil {
		return apperrors.Internalf(err, "failed to delete services")
	}
	return nil
}

// deleteBranchTechs removes whole tech rows and their media. Every listed id
// must belong to the branch.
func deleteBranchTechs(tx *gorm.DB, branchID uint, ids []uint) error {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	var count int64
	err := tx.Model(&models.BranchTech{}).
		Where("id IN ? AND branch_id = ?", ids, branchID).Count(&count).Error
	if err != nil {
		return apperrors.Internalf(err, "failed to check techs")
	}
	if count != int64(len(ids)) {
		return apperrors.NotFoundf("some tech ids do not belong to branch %d", branchID)
	}
	if _, err := deleteOwnedMedia(tx, models.MediaOwnerBranchTech, ids); err != nil {
		return err
	}
	if err := tx.Where("id IN ?", ids).Delete(&models.BranchTech{}).Error; err != nil {
		return apperrors.Internalf(err, "failed to delete techs")
	}
	return nil
}

// upsertServices updates entries carrying an id and creates the rest.
// Existing rows are re-checked against the branch before any write; new rows
// bind their files positionally, counting only the id-less entries.
func upsertServices(tx *gorm.DB, branchID uint, inputs []ServiceInput, files uploads.Grouping) error {
	newIdx := 0
	for i, svc := range inputs {
		if svc.ID != nil {
			var row models.BranchService
			err := tx.Where("id = ? AND branch_id = ?", *svc.ID, branchID).First(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("service %d does not belong to branch %d", *svc.ID, branchID)
			}
			if err != nil {
				return apperrors.Internalf(err, "failed to load service %d", *svc.ID)
			}
			updates := map[string]any{}
			if svc.TitleUz != nil {
				updates["title_uz"] = *svc.TitleUz
			}
			if svc.TitleRu != nil {
				updates["title_ru"] = *svc.TitleRu
			}
			if svc.TitleEn != nil {
				updates["title_en"] = *svc.TitleEn
			}
			if svc.Price != nil {
				updates["price"] = *svc.Price
			}
			if len(updates) > 0 {
				if err := tx.Model(&row).Updates(updates).Error; err != nil {
					return apperrors.Internalf(err, "failed to update service %d", row.ID)
				}
			}
			if err := createMediaRows(tx, models.MediaOwnerBranchService, row.ID, files.ForExistingChild("services", row.ID)); err != nil {
				return err
			}
			continue
		}

		if svc.TitleUz == nil || svc.TitleRu == nil || svc.TitleEn == nil || svc.Price == nil {
			return apperrors.Validationf("services[%d]: new entries need all three titles and a price", i)
		}
		row := models.BranchService{
			BranchID: branchID,
			TitleUz:  *svc.TitleUz,
			TitleRu:  *svc.TitleRu,
			TitleEn:  *svc.TitleEn,
			Price:    *svc.Price,
		}
		if err := tx.Create(&row).Error; err != nil {
			return apperrors.Internalf(err, "failed to create service")
		}
		if err := createMediaRows(tx, models.MediaOwnerBranchService, row.ID, files.ForNewChild("services", newIdx)); err != nil {
			return err
		}
		newIdx++
	}
	return nil
}

// upsertTechs mirrors upsertServices for the tech collection.
func upsertTechs(tx *gorm.DB, branchID uint, inputs []TechInput, files uploads.Grouping) error {
	newIdx := 0
	for i, tech := range inputs {
		if tech.ID != nil {
			var row models.BranchTech
			err := tx.Where("id = ? AND branch_id = ?", *tech.ID, branchID).First(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("tech %d does not belong to branch %d", *tech.ID, branchID)
			}
			if err != nil {
				return apperrors.Internalf(err, "failed to load tech %d", *tech.ID)
			}
			updates := map[string]any{}
			if tech.Title != nil {
				updates["title"] = *tech.Title
			}
			if tech.Description != nil {
				updates["description"] = *tech.Description
			}
			if len(updates) > 0 {
				if err := tx.Model(&row).Updates(updates).Error; err != nil {
					return apperrors.Internalf(err, "failed to update tech %d", row.ID)
				}
			}
			if err := createMediaRows(tx, models.MediaOwnerBranchTech, row.ID, files.ForExistingChild("techs", row.ID)); err != nil {
				return err
			}
			continue
		}

		if tech.Title == nil || tech.Description == nil {
			return apperrors.Validationf("techs[%d]: new entries need a title and description", i)
		}
		row := models.BranchTech{
			BranchID:    branchID,
			Title:       *tech.Title,
			Description: *tech.Description,
		}
		if err := tx.Create(&row).Error; err != nil {
			return apperrors.Internalf(err, "failed to create tech")
		}
		if err := createMediaRows(tx, models.MediaOwnerBranchTech, row.ID, files.ForNewChild("techs", newIdx)); err != nil {
			return err
		}
		newIdx++
	}
	return nil
}

// Delete removes the branch, its services, techs and every media row under
// them, returning the removed media URLs so the caller can delete the files
// after the transaction commits. A branch with doctors attached is refused.
func (r *BranchRepository) Delete(id uint) ([]string, error) {
	var urls []string
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var branch models.Branch
		if err := tx.First(&branch, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("branch %d not found", id)
			}
			return apperrors.Internalf(err, "failed to load branch %d", id)
		}

		var doctorCount int64
		if err := tx.Model(&models.Doctor{}).Where("branch_id = ?", id).Count(&doctorCount).Error; err != nil {
			return apperrors.Internalf(err, "failed to count doctors for branch %d", id)
		}
		if doctorCount > 0 {
			return apperrors.Conflictf("branch %d still has %d doctors attached", id, doctorCount)
		}

		var serviceIDs, techIDs []uint
		if err := tx.Model(&models.BranchService{}).Where("branch_id = ?", id).Pluck("id", &serviceIDs).Error; err != nil {
			return apperrors.Internalf(err, "failed to list services for branch %d", id)
		}
		if err := tx.Model(&models.BranchTech{}).Where("branch_id = ?", id).Pluck("id", &techIDs).Error; err != nil {
			return apperrors.Internalf(err, "failed to list techs for branch %d", id)
		}

		svcURLs, err := deleteOwnedMedia(tx, models.MediaOwnerBranchService, serviceIDs)
		if err != nil {
			return err
		}
		techURLs, err := deleteOwnedMedia(tx, models.MediaOwnerBranchTech, techIDs)
		if err != nil {
			return err
		}
		branchURLs, err := deleteOwnedMedia(tx, models.MediaOwnerBranch, []uint{id})
		if err != nil {
			return err
		}
		urls = append(urls, svcURLs...)
		urls = append(urls, techURLs...)
		urls = append(urls, branchURLs...)

		if err := tx.Where("branch_id = ?", id).Delete(&models.BranchService{}).Error; err != nil {
			return apperrors.Internalf(err, "failed to delete services for branch %d", id)
		}
		if err := tx.Where("branch_id = ?", id).Delete(&models.BranchTech{}).Error; err != nil {
			return apperrors.Internalf(err, "failed to delete techs for branch %d", id)
		}
		if err := tx.Delete(&models.Branch{}, id).Error; err != nil {
			return apperrors.Internalf(err, "failed to delete branch %d", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}
