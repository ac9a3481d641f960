package repository

import (
	"github.com/shifo-uz/clinicbackend/apperrors"
	"github.com/shifo-uz/clinicbackend/models"
	"github.com/shifo-uz/clinicbackend/uploads"
	"gorm.io/gorm"
)

// createMediaRows inserts one media row per uploaded file, in arrival order,
// owned by the given row.
func createMediaRows(tx *gorm.DB, ownerType string, ownerID uint, files []uploads.File) error {
	for _, f := range files {
		row := models.Media{
			OwnerType: ownerType,
			OwnerID:   ownerID,
			URL:       f.URL,
			Type:      string(f.Kind),
		}
		if err := tx.Create(&row).Error; err != nil {
			return apperrors.Internalf(err, "failed to create media record for %s", f.URL)
		}
	}
	return nil
}

// deleteParentMedia removes the listed media rows belonging directly to one
// owner row. Every listed id must belong to that owner; a mismatch aborts
// the transaction so an edit never silently skips part of its delete list.
func deleteParentMedia(tx *gorm.DB, ownerType string, ownerID uint, ids []uint) error {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	res := tx.Where("id IN ? AND owner_type = ? AND owner_id = ?", ids, ownerType, ownerID).
		Delete(&models.Media{})
	if res.Error != nil {
		return apperrors.Internalf(res.Error, "failed to delete media")
	}
	if res.RowsAffected != int64(len(ids)) {
		return apperrors.NotFoundf("some media ids were not found on this record")
	}
	return nil
}

// deleteChildMedia removes the listed media rows belonging to child rows of
// one parent. Ownership is verified through the child table: the media row
// must carry the child owner type and its owner must sit under the parent.
func deleteChildMedia(tx *gorm.DB, ownerType string, ownerScope *gorm.DB, ids []uint) error {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	res := tx.Where("id IN ? AND owner_type = ? AND owner_id IN (?)", ids, ownerType, ownerScope).
		Delete(&models.Media{})
	if res.Error != nil {
		return apperrors.Internalf(res.Error, "failed to delete media")
	}
	if res.RowsAffected != int64(len(ids)) {
		return apperrors.NotFoundf("some media ids were not found on this record")
	}
	return nil
}

// deleteOwnedMedia removes every media row owned by the given rows,
// returning the URLs of the removed files so the caller can clean storage
// after commit.
func deleteOwnedMedia(tx *gorm.DB, ownerType string, ownerIDs []uint) ([]string, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}
	var urls []string
	err := tx.Model(&models.Media{}).
		Where("owner_type = ? AND owner_id IN ?", ownerType, ownerIDs).
		Pluck("url", &urls).Error
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to collect media urls")
	}
	err = tx.Where("owner_type = ? AND owner_id IN ?", ownerType, ownerIDs).
		Delete(&models.Media{}).Error
	if err != nil {
		return nil, apperrors.Internalf(err, "failed to delete media")
	}
	return urls, nil
}

func dedupeIDs(ids []uint) []uint {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
