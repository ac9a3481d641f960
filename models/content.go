package models

import "time"

// Plain content rows edited from the admin panel. No media, no children.

type Contact struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Type      string    `gorm:"not null" json:"type"` // phone, email, address, telegram, ...
	Contact   string    `gorm:"not null" json:"contact"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Contact) TableName() string {
	return "contacts"
}

type Statistic struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TitleUz   string    `gorm:"not null" json:"title_uz"`
	TitleRu   string    `gorm:"not null" json:"title_ru"`
	TitleEn   string    `gorm:"not null" json:"title_en"`
	Number    int64     `gorm:"not null" json:"number"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Statistic) TableName() string {
	return "statistics"
}

type AboutUs struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TitleUz   string    `json:"title_uz"`
	TitleRu   string    `json:"title_ru"`
	TitleEn   string    `json:"title_en"`
	ContentUz string    `json:"content_uz"`
	ContentRu string    `json:"content_ru"`
	ContentEn string    `json:"content_en"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AboutUs) TableName() string {
	return "about_us"
}

type AdditionalInfo struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TitleUz   string    `json:"title_uz"`
	TitleRu   string    `json:"title_ru"`
	TitleEn   string    `json:"title_en"`
	ContentUz string    `json:"content_uz"`
	ContentRu string    `json:"content_ru"`
	ContentEn string    `json:"content_en"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AdditionalInfo) TableName() string {
	return "additional_info"
}
