package doctor

import "github.com/healthify-app/healthify-api/internal/httperr"

// ===============================
// Doctor Request Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// A record still occupying the user's single doctor slot.
func IsActive(current Status) bool {
	return current == StatusPending || current == StatusApproved
}

// ===============================
// Validations
// ===============================

// ParseDecision accepts only the two terminal admin decisions.
func ParseDecision(raw string) (Status, error) {
	switch Status(raw) {
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// CanDecide defines whether an admin may still rule on a request.
func CanDecide(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
