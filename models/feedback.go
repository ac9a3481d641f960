package models

import "time"

// Feedback is a visitor-submitted review; only approved entries are shown
// publicly.
type Feedback struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	FullName    string    `gorm:"not null" json:"full_name"`
	Content     string    `gorm:"not null" json:"content"`
	IsApproved  bool      `gorm:"not null;default:false" json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
