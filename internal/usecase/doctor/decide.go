package doctor

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/healthify-app/healthify-api/internal/audit"
	domain "github.com/healthify-app/healthify-api/internal/domain/doctor"
	"github.com/healthify-app/healthify-api/internal/httperr"
	"github.com/healthify-app/healthify-api/internal/models"
)

type Decide struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDecide(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *Decide {
	return &Decide{
		repo:  repo,
		audit: audit,
	}
}

func (uc *Decide) Execute(
	ctx context.Context,
	adminID uint,
	doctorID uint,
	rawStatus string,
) (*models.Doctor, error) {

	decision, err := domain.ParseDecision(rawStatus)
	if err != nil {
		return nil, err
	}

	d, err := uc.repo.GetDoctorByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("doctor_not_found")
		}
		return nil, err
	}

	switch decision {
	case domain.StatusApproved:
		if err := domain.Approve(d); err != nil {
			return nil, err
		}
		// Status and role promotion commit or fail together.
		if err := uc.repo.ApproveAndPromote(ctx, d); err != nil {
			return nil, err
		}

	case domain.StatusRejected:
		if err := domain.Reject(d); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateDoctor(ctx, d); err != nil {
			return nil, err
		}
	}

	action := "doctor_" + string(decision)
	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   action,
		Entity:   "doctor",
		EntityID: &d.ID,
	})

	return d, nil
}
