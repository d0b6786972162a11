package dto

import "github.com/healthify-app/healthify-api/internal/models"

type UserSummary struct {
	ID           uint        `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         models.Role `json:"role"`
	Phone        string      `json:"phone"`
	Gender       string      `json:"gender"`
	Address      string      `json:"address"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	ProfilePhoto string      `json:"profile_photo"`
	Verified     bool        `json:"verified"`
}

func NewUserSummary(u *models.User) UserSummary {
	return UserSummary{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Phone:        u.Phone,
		Gender:       u.Gender,
		Address:      u.Address,
		City:         u.City,
		State:        u.State,
		ProfilePhoto: u.ProfilePhoto,
		Verified:     u.Verified,
	}
}

type PendingDoctor struct {
	ID              uint        `json:"id"`
	Specialization  string      `json:"specialization"`
	Experience      int         `json:"experience"`
	LicenseNumber   string      `json:"license_number"`
	ClinicAddress   string      `json:"clinic_address"`
	ClinicCity      string      `json:"clinic_city"`
	Availability    []string    `json:"availability"`
	ConsultationFee float64     `json:"consultation_fee"`
	Status          string      `json:"status"`
	Rating          float64     `json:"rating"`
	User            UserSummary `json:"user"`
}

func NewPendingDoctor(d *models.Doctor) PendingDoctor {
	return PendingDoctor{
		ID:              d.ID,
		Specialization:  d.Specialization,
		Experience:      d.Experience,
		LicenseNumber:   d.LicenseNumber,
		ClinicAddress:   d.ClinicAddress,
		ClinicCity:      d.ClinicCity,
		Availability:    d.Availability,
		ConsultationFee: d.ConsultationFee,
		Status:          d.Status,
		Rating:          d.Rating,
		User:            NewUserSummary(&d.User),
	}
}
