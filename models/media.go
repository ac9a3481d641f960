package models

import "time"

// Owner table names used as the polymorphic discriminator on media rows.
const (
	MediaOwnerBranch        = "branches"
	MediaOwnerBranchService = "branch_services"
	MediaOwnerBranchTech    = "branch_techs"
	MediaOwnerDoctor        = "doctors"
	MediaOwnerDoctorAward   = "doctor_awards"
	MediaOwnerGallery       = "galleries"
	MediaOwnerNews          = "news"
	MediaOwnerPatient       = "patients"
	MediaOwnerReception     = "receptions"
)

// Media is a single uploaded-file record owned by exactly one parent or
// child row. Width/Height and ThumbPath are filled in asynchronously by the
// thumbnail worker for image media.
type Media struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerType string    `gorm:"not null;index:idx_media_owner,priority:1" json:"-"`
	OwnerID   uint      `gorm:"not null;index:idx_media_owner,priority:2" json:"-"`
	URL       string    `gorm:"not null" json:"url"`
	Type      string    `gorm:"not null" json:"type"` // image | video | file
	ThumbPath *string   `json:"thumb_path,omitempty"`
	Width     *int      `json:"width,omitempty"`
	Height    *int      `json:"height,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName explicitly sets the table name for GORM.
func (Media) TableName() string {
	return "media"
}
