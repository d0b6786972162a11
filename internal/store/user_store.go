package store

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/healthify-app/healthify-api/internal/db"
	"github.com/healthify-app/healthify-api/internal/httperr"
	"github.com/healthify-app/healthify-api/internal/models"
	"github.com/healthify-app/healthify-api/internal/otp"
	"github.com/healthify-app/healthify-api/internal/validators"
)

// UserStore owns every write to the users table: field rules are
// applied before persistence, passwords are hashed exactly here and
// nowhere else, unique violations come back naming the field.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(gdb *gorm.DB) *UserStore {
	return &UserStore{db: gdb}
}

// NormalizeEmail applies the canonical form used for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserStore) Create(ctx context.Context, u *models.User, password string) error {
	u.Email = NormalizeEmail(u.Email)

	if err := validators.Apply(validators.UserRules(u)); err != nil {
		return err
	}
	if err := SetPassword(u, password); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Update saves the full record after re-validating it. Password
// changes must go through SetPassword before calling this.
func (s *UserStore) Update(ctx context.Context, u *models.User) error {
	u.Email = NormalizeEmail(u.Email)

	if err := validators.Apply(validators.UserRules(u)); err != nil {
		return err
	}

	if u.Phone != "" {
		var count int64
		s.db.WithContext(ctx).Model(&models.User{}).
			Where("phone = ? AND id <> ?", u.Phone, u.ID).
			Count(&count)
		if count > 0 {
			return httperr.ErrConflict("phone")
		}
	}

	if err := s.db.WithContext(ctx).Save(u).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).
		Where("email = ?", NormalizeEmail(email)).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// SetPassword hashes the plaintext into the record, or clears the
// hash when the plaintext is blank. This is the only place a
// password is ever hashed, so a hash can never be re-hashed.
func SetPassword(u *models.User, plain string) error {
	if strings.TrimSpace(plain) == "" {
		u.PasswordHash = ""
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

func CheckPassword(u *models.User, plain string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// SetOTP stores a code in the purpose's slot and persists it.
func (s *UserStore) SetOTP(ctx context.Context, u *models.User, purpose otp.Purpose, code string, expires time.Time) error {
	switch purpose {
	case otp.PurposeReset:
		u.ResetOTP = code
		u.ResetOTPExpires = &expires
	default:
		u.OTP = code
		u.OTPExpires = &expires
	}
	return s.Update(ctx, u)
}

// ConsumeOTP checks the submitted code against the purpose's slot
// and clears the slot in memory on success. The caller persists the
// cleared slot together with its own changes in one Update.
func (s *UserStore) ConsumeOTP(u *models.User, purpose otp.Purpose, code string) error {
	var slotCode string
	var slotExpires *time.Time

	switch purpose {
	case otp.PurposeReset:
		slotCode, slotExpires = u.ResetOTP, u.ResetOTPExpires
	default:
		slotCode, slotExpires = u.OTP, u.OTPExpires
	}

	if slotCode == "" || slotExpires == nil || time.Now().After(*slotExpires) {
		return httperr.ErrBusiness("otp_expired")
	}
	if slotCode != code {
		return httperr.ErrBusiness("otp_mismatch")
	}

	switch purpose {
	case otp.PurposeReset:
		u.ResetOTP = ""
		u.ResetOTPExpires = nil
	default:
		u.OTP = ""
		u.OTPExpires = nil
	}
	return nil
}

func translate(err error) error {
	if field := db.ConflictField(err); field != "" {
		return httperr.ErrConflict(field)
	}
	return err
}
