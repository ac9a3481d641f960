package models

import "time"

// Doctor belongs to a branch and owns its media and awards.
type Doctor struct {
	ID          uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName   string        `gorm:"not null" json:"first_name"`
	SecondName  string        `gorm:"not null" json:"second_name"`
	ThirdName   string        `json:"third_name"`
	Description string        `json:"description"`
	BranchID    uint          `gorm:"not null;index" json:"branch_id"`
	Branch      *Branch       `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Media       []Media       `gorm:"polymorphic:Owner;polymorphicValue:doctors" json:"media"`
	Awards      []DoctorAward `gorm:"foreignKey:DoctorID" json:"awards"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// DoctorAward is a certificate or award held by one doctor.
type DoctorAward struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uint      `gorm:"not null;index" json:"doctor_id"`
	Title     string    `gorm:"not null" json:"title"`
	Level     string    `gorm:"not null" json:"level"`
	Media     []Media   `gorm:"polymorphic:Owner;polymorphicValue:doctor_awards" json:"media"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DoctorAward) TableName() string {
	return "doctor_awards"
}
