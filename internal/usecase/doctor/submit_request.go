package doctor

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/healthify-app/healthify-api/internal/audit"
	"github.com/healthify-app/healthify-api/internal/db"
	domain "github.com/healthify-app/healthify-api/internal/domain/doctor"
	"github.com/healthify-app/healthify-api/internal/httperr"
	"github.com/healthify-app/healthify-api/internal/models"
	"github.com/healthify-app/healthify-api/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type SubmitRequestInput struct {
	UserID uint

	Specialization  string
	Experience      int
	LicenseNumber   string
	ClinicAddress   string
	ClinicCity      string
	Availability    []string
	ConsultationFee float64
}

// ======================================================
// USE CASE
// ======================================================

type SubmitRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSubmitRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SubmitRequest {
	return &SubmitRequest{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SubmitRequest) Execute(
	ctx context.Context,
	in SubmitRequestInput,
) (*models.Doctor, error) {

	// One active request per user; a rejected record frees the slot.
	_, err := uc.repo.FindActiveByUser(ctx, in.UserID)
	if err == nil {
		return nil, httperr.ErrBusiness("doctor_request_active")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	license := strings.TrimSpace(in.LicenseNumber)

	// License numbers never come back, whatever the record's status.
	exists, err := uc.repo.LicenseExists(ctx, license)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, httperr.ErrBusiness("license_in_use")
	}

	fee := in.ConsultationFee
	if fee == 0 {
		fee = 500
	}

	d := &models.Doctor{
		UserID:          in.UserID,
		Specialization:  strings.TrimSpace(in.Specialization),
		Experience:      in.Experience,
		LicenseNumber:   license,
		ClinicAddress:   strings.TrimSpace(in.ClinicAddress),
		ClinicCity:      strings.TrimSpace(in.ClinicCity),
		Availability:    in.Availability,
		ConsultationFee: fee,
		Status:          string(domain.InitialStatus()),
	}

	if err := validators.Apply(validators.DoctorRules(d)); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateDoctor(ctx, d); err != nil {
		// Losing the insert race maps to the same rejections as the
		// pre-checks above.
		if db.ConflictField(err) != "" {
			return nil, httperr.ErrBusiness("license_in_use")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "doctor_request_submitted",
		Entity:   "doctor",
		EntityID: &d.ID,
	})

	return d, nil
}
