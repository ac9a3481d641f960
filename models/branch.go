package models

import "time"

// Branch is a clinic branch. It owns its media plus two child collections:
// offered services and installed equipment ("techs"). Doctors reference a
// branch but live outside the aggregate; a branch with doctors attached
// cannot be deleted.
type Branch struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `gorm:"not null" json:"description"`
	Media       []Media         `gorm:"polymorphic:Owner;polymorphicValue:branches" json:"media"`
	Services    []BranchService `gorm:"foreignKey:BranchID" json:"services"`
	Techs       []BranchTech    `gorm:"foreignKey:BranchID" json:"techs"`
	Doctors     []Doctor        `gorm:"foreignKey:BranchID" json:"doctors,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Branch) TableName() string {
	return "branches"
}

// BranchService is a priced service offered at one branch.
type BranchService struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BranchID  uint      `gorm:"not null;index" json:"branch_id"`
	TitleUz   string    `gorm:"not null" json:"title_uz"`
	TitleRu   string    `gorm:"not null" json:"title_ru"`
	TitleEn   string    `gorm:"not null" json:"title_en"`
	Price     float64   `gorm:"not null" json:"price"`
	Media     []Media   `gorm:"polymorphic:Owner;polymorphicValue:branch_services" json:"media"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BranchService) TableName() string {
	return "branch_services"
}

// BranchTech is a piece of medical equipment installed at one branch.
type BranchTech struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BranchID    uint      `gorm:"not null;index" json:"branch_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Media       []Media   `gorm:"polymorphic:Owner;polymorphicValue:branch_techs" json:"media"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (BranchTech) TableName() string {
	return "branch_techs"
}
