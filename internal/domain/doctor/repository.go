package doctor

import (
	"context"

	"github.com/healthify-app/healthify-api/internal/models"
)

type Repository interface {
	// -------- Doctor (create / lookup) --------
	CreateDoctor(
		ctx context.Context,
		d *models.Doctor,
	) error

	GetDoctorByID(
		ctx context.Context,
		id uint,
	) (*models.Doctor, error)

	// FindActiveByUser returns the user's pending or approved record,
	// gorm.ErrRecordNotFound when the slot is free.
	FindActiveByUser(
		ctx context.Context,
		userID uint,
	) (*models.Doctor, error)

	// LicenseExists matches records of every status.
	LicenseExists(
		ctx context.Context,
		licenseNumber string,
	) (bool, error)

	ListByStatus(
		ctx context.Context,
		status Status,
	) ([]models.Doctor, error)

	// -------- Decision (transactional) --------

	// ApproveAndPromote persists the approved status and the linked
	// user's role change as one transaction.
	ApproveAndPromote(
		ctx context.Context,
		d *models.Doctor,
	) error

	UpdateDoctor(
		ctx context.Context,
		d *models.Doctor,
	) error
}
