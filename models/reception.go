package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Reception is a front-desk staff account. Receptions log in with the
// RECEPTION role and own profile media.
type Reception struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FirstName    string    `json:"first_name"`
	SecondName   string    `json:"second_name"`
	Media        []Media   `gorm:"polymorphic:Owner;polymorphicValue:receptions" json:"media"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Reception) TableName() string {
	return "receptions"
}

// SetPassword hashes the given password and sets it on the reception model.
func (r *Reception) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	r.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the given password matches the stored hash.
func (r *Reception) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(r.PasswordHash), []byte(password))
	return err == nil
}
