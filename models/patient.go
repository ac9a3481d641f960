package models

import "time"

// Patient is an intake record created from the public site. Phone numbers
// are unique; a second submission with the same number is rejected.
type Patient struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName   string    `gorm:"not null" json:"first_name"`
	SecondName  string    `gorm:"not null" json:"second_name"`
	ThirdName   string    `json:"third_name"`
	PhoneNumber string    `gorm:"not null;uniqueIndex" json:"phone_number"`
	Problem     string    `json:"problem"`
	Media       []Media   `gorm:"polymorphic:Owner;polymorphicValue:patients" json:"media"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

// PatientHistory keeps a snapshot of a patient after their intake record is
// deleted, keyed by phone number so repeat visits overwrite the snapshot.
type PatientHistory struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName   string    `json:"first_name"`
	SecondName  string    `json:"second_name"`
	ThirdName   string    `json:"third_name"`
	PhoneNumber string    `gorm:"not null;uniqueIndex" json:"phone_number"`
	Problem     string    `json:"problem"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (PatientHistory) TableName() string {
	return "patient_history"
}
