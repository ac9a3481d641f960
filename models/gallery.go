package models

import "time"

// Gallery is a titled set of uploaded photos/videos.
type Gallery struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TitleUz   string    `json:"title_uz"`
	TitleRu   string    `json:"title_ru"`
	TitleEn   string    `json:"title_en"`
	Media     []Media   `gorm:"polymorphic:Owner;polymorphicValue:galleries" json:"media"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Gallery) TableName() string {
	return "galleries"
}
