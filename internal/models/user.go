package models

import "time"

type Role string

const (
	RolePatient Role = "Patient"
	RoleDoctor  Role = "Doctor"
	RoleAdmin   Role = "Admin"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`

	// Empty until the account sets a password; always a bcrypt hash.
	PasswordHash string `gorm:"size:255" json:"-"`

	Role   Role   `gorm:"size:20;default:'Patient'" json:"role"`
	Phone  string `gorm:"size:20;uniqueIndex:idx_users_phone,where:phone <> ''" json:"phone"`
	Gender string `gorm:"size:10" json:"gender"`

	Address string `gorm:"size:255" json:"address"`
	City    string `gorm:"size:100" json:"city"`
	State   string `gorm:"size:100" json:"state"`

	ProfilePhoto string `gorm:"size:255" json:"profile_photo"`

	Verified bool `gorm:"default:false" json:"verified"`

	// Registration slot.
	OTP        string     `gorm:"size:10" json:"-"`
	OTPExpires *time.Time `json:"-"`

	// Password-reset slot.
	ResetOTP        string     `gorm:"size:10" json:"-"`
	ResetOTPExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
