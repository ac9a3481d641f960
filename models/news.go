package models

import "time"

// News is a trilingual news post with attached media.
type News struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TitleUz       string    `json:"title_uz"`
	TitleRu       string    `json:"title_ru"`
	TitleEn       string    `json:"title_en"`
	DescriptionUz string    `json:"description_uz"`
	DescriptionRu string    `json:"description_ru"`
	DescriptionEn string    `json:"description_en"`
	Media         []Media   `gorm:"polymorphic:Owner;polymorphicValue:news" json:"media"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (News) TableName() string {
	return "news"
}
