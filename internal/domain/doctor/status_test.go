package doctor

import (
	"testing"

	"github.com/healthify-app/healthify-api/internal/httperr"
	"github.com/healthify-app/healthify-api/internal/models"
)

func TestParseDecision(t *testing.T) {
	if s, err := ParseDecision("approved"); err != nil || s != StatusApproved {
		t.Errorf("approved: %v %v", s, err)
	}
	if s, err := ParseDecision("rejected"); err != nil || s != StatusRejected {
		t.Errorf("rejected: %v %v", s, err)
	}

	for _, raw := range []string{"pending", "Approved", "", "accepted"} {
		if _, err := ParseDecision(raw); !httperr.IsBusiness(err, "invalid_status") {
			t.Errorf("%q: expected invalid_status, got %v", raw, err)
		}
	}
}

func TestIsActive(t *testing.T) {
	if !IsActive(StatusPending) || !IsActive(StatusApproved) {
		t.Error("pending and approved are active")
	}
	if IsActive(StatusRejected) {
		t.Error("rejected frees the slot")
	}
}

func TestApproveFromPendingOnly(t *testing.T) {
	d := &models.Doctor{Status: string(StatusPending)}
	if err := Approve(d); err != nil {
		t.Fatalf("approve pending: %v", err)
	}
	if d.Status != string(StatusApproved) {
		t.Errorf("status = %q", d.Status)
	}

	// terminal states do not transition again
	if err := Approve(d); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("re-approve: expected invalid_state, got %v", err)
	}

	rejected := &models.Doctor{Status: string(StatusRejected)}
	if err := Reject(rejected); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("re-reject: expected invalid_state, got %v", err)
	}
}
