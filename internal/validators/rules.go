package validators

import (
	"regexp"

	"github.com/healthify-app/healthify-api/internal/httperr"
	"github.com/healthify-app/healthify-api/internal/models"
)

// Rule is one field constraint. Entity rule lists are evaluated in
// order and the first failure is surfaced with its message.
type Rule struct {
	Field   string
	Message string
	Ok      func() bool
}

func Apply(rules []Rule) error {
	for _, r := range rules {
		if !r.Ok() {
			return httperr.ErrValidation(r.Field, r.Message)
		}
	}
	return nil
}

var (
	emailRe   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe   = regexp.MustCompile(`^\d{10}$`)
	licenseRe = regexp.MustCompile(`^[A-Z0-9]+$`)
)

var weekdays = map[string]bool{
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
}

func UserRules(u *models.User) []Rule {
	return []Rule{
		{
			Field:   "email",
			Message: "A valid email address is required",
			Ok:      func() bool { return emailRe.MatchString(u.Email) },
		},
		{
			Field:   "role",
			Message: "Invalid role",
			Ok:      func() bool { return u.Role.Valid() },
		},
		{
			Field:   "phone",
			Message: "Phone number must be exactly 10 digits",
			Ok:      func() bool { return u.Phone == "" || phoneRe.MatchString(u.Phone) },
		},
		{
			Field:   "gender",
			Message: "Gender must be Male, Female or Other",
			Ok: func() bool {
				switch u.Gender {
				case "", "Male", "Female", "Other":
					return true
				}
				return false
			},
		},
	}
}

func DoctorRules(d *models.Doctor) []Rule {
	return []Rule{
		{
			Field:   "specialization",
			Message: "Specialization is required",
			Ok:      func() bool { return d.Specialization != "" },
		},
		{
			Field:   "experience",
			Message: "Experience cannot be negative",
			Ok:      func() bool { return d.Experience >= 0 },
		},
		{
			Field:   "license_number",
			Message: "License number should contain only uppercase letters and numbers",
			Ok:      func() bool { return licenseRe.MatchString(d.LicenseNumber) },
		},
		{
			Field:   "clinic_address",
			Message: "Clinic address is required",
			Ok:      func() bool { return d.ClinicAddress != "" },
		},
		{
			Field:   "clinic_city",
			Message: "Clinic city is required",
			Ok:      func() bool { return d.ClinicCity != "" },
		},
		{
			Field:   "availability",
			Message: "Invalid day in availability",
			Ok: func() bool {
				seen := make(map[string]bool, len(d.Availability))
				for _, day := range d.Availability {
					if !weekdays[day] || seen[day] {
						return false
					}
					seen[day] = true
				}
				return true
			},
		},
		{
			Field:   "consultation_fee",
			Message: "Consultation fee cannot be negative",
			Ok:      func() bool { return d.ConsultationFee >= 0 },
		},
		{
			Field:   "rating",
			Message: "Rating must be between 0 and 5",
			Ok:      func() bool { return d.Rating >= 0 && d.Rating <= 5 },
		},
	}
}
