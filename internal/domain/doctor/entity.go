package doctor

import "github.com/healthify-app/healthify-api/internal/models"

// ===============================
// Domain Actions
// ===============================

func Approve(d *models.Doctor) error {
	if err := CanDecide(Status(d.Status)); err != nil {
		return err
	}

	d.Status = string(StatusApproved)
	return nil
}

func Reject(d *models.Doctor) error {
	if err := CanDecide(Status(d.Status)); err != nil {
		return err
	}

	d.Status = string(StatusRejected)
	return nil
}
