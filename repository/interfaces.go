package repository

import (
	"github.com/shifo-uz/clinicbackend/models"
)

// BranchRepositoryInterface defines the methods for branch data operations
type BranchRepositoryInterface interface {
	ListAll() ([]models.Branch, error)
	GetByID(id uint) (*models.Branch, error)
	Create(in BranchCreateInput) (*models.Branch, error)
	Edit(id uint, in BranchEditInput) (*models.Branch, error)
	Delete(id uint) ([]string, error)
}

// DoctorRepositoryInterface defines the methods for doctor data operations
type DoctorRepositoryInterface interface {
	ListAll() ([]models.Doctor, error)
	ListByBranch(branchID uint) ([]models.Doctor, error)
	GetByID(id uint) (*models.Doctor, error)
	Create(in DoctorCreateInput) (*models.Doctor, error)
	Edit(id uint, in DoctorEditInput) (*models.Doctor, error)
	Delete(id uint) ([]string, error)
}

// GalleryRepositoryInterface defines the methods for gallery data operations
type GalleryRepositoryInterface interface {
	ListAll() ([]models.Gallery, error)
	GetByID(id uint) (*models.Gallery, error)
	Create(in GalleryCreateInput) (*models.Gallery, error)
	Edit(id uint, in GalleryEditInput) (*models.Gallery, error)
	Delete(id uint) ([]string, error)
}

// NewsRepositoryInterface defines the methods for news data operations
type NewsRepositoryInterface interface {
	ListAll() ([]models.News, error)
	GetByID(id uint) (*models.News, error)
	Create(in NewsCreateInput) (*models.News, error)
	Edit(id uint, in NewsEditInput) (*models.News, error)
	Delete(id uint) ([]string, error)
}

// PatientRepositoryInterface defines the methods for patient data operations
type PatientRepositoryInterface interface {
	ListAll() ([]models.Patient, error)
	GetByID(id uint) (*models.Patient, error)
	ListHistory() ([]models.PatientHistory, error)
	Create(in PatientCreateInput) (*models.Patient, error)
	Edit(id uint, in PatientEditInput) (*models.Patient, error)
	Delete(id uint) ([]string, error)
}

// ReceptionRepositoryInterface defines the methods for reception data operations
type ReceptionRepositoryInterface interface {
	ListAll() ([]models.Reception, error)
	GetByID(id uint) (*models.Reception, error)
	GetByUsername(username string) (*models.Reception, error)
	Create(in ReceptionCreateInput) (*models.Reception, error)
	Edit(id uint, in ReceptionEditInput) (*models.Reception, error)
	Delete(id uint) ([]string, error)
}

// AdminRepositoryInterface defines the methods for admin data operations
type AdminRepositoryInterface interface {
	GetByID(id uint) (*models.Admin, error)
	GetByUsername(username string) (*models.Admin, error)
	Create(username, password string) (*models.Admin, error)
	UpdateUsername(id uint, username string) (*models.Admin, error)
	UpdatePassword(id uint, oldPassword, newPassword string) error
	Count() (int64, error)
}

// FeedbackRepositoryInterface defines the methods for feedback data operations
type FeedbackRepositoryInterface interface {
	Create(feedback *models.Feedback) error
	ListApproved() ([]models.Feedback, error)
	ListAll() ([]models.Feedback, error)
	SetApproval(id uint, approved bool) (*models.Feedback, error)
	Delete(id uint) error
}

// ContentRepositoryInterface defines the methods for plain content operations
type ContentRepositoryInterface interface {
	ListContacts() ([]models.Contact, error)
	CreateContact(contact *models.Contact) error
	UpdateContact(id uint, contactType, contact *string) (*models.Contact, error)
	DeleteContact(id uint) error
	ListStatistics() ([]models.Statistic, error)
	CreateStatistic(stat *models.Statistic) error
	UpdateStatistic(id uint, in StatisticUpdate) (*models.Statistic, error)
	DeleteStatistic(id uint) error
	GetAboutUs() (*models.AboutUs, error)
	UpdateAboutUs(in TextBlockUpdate) (*models.AboutUs, error)
	GetAdditionalInfo() (*models.AdditionalInfo, error)
	UpdateAdditionalInfo(in TextBlockUpdate) (*models.AdditionalInfo, error)
}
