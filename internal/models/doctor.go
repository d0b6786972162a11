package models

import "time"

type Doctor struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Specialization string `gorm:"size:100;not null" json:"specialization"`
	Experience     int    `json:"experience"`

	LicenseNumber string `gorm:"size:50;uniqueIndex;not null" json:"license_number"`

	ClinicAddress string `gorm:"size:255" json:"clinic_address"`
	ClinicCity    string `gorm:"size:100" json:"clinic_city"`

	// Weekday names the doctor consults on.
	Availability []string `gorm:"serializer:json" json:"availability"`

	ConsultationFee float64 `gorm:"default:500" json:"consultation_fee"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Rating float64 `gorm:"default:0" json:"rating"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
