package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/healthify-app/healthify-api/internal/domain/doctor"
	"github.com/healthify-app/healthify-api/internal/models"
)

type DoctorGormRepository struct {
	db *gorm.DB
}

func NewDoctorGormRepository(db *gorm.DB) *DoctorGormRepository {
	return &DoctorGormRepository{db: db}
}

// --------------------------------------------------
// Create / lookup
// --------------------------------------------------

func (r *DoctorGormRepository) CreateDoctor(
	ctx context.Context,
	d *models.Doctor,
) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DoctorGormRepository) GetDoctorByID(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {

	var d models.Doctor
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorGormRepository) FindActiveByUser(
	ctx context.Context,
	userID uint,
) (*models.Doctor, error) {

	var d models.Doctor
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID,
			[]string{string(domain.StatusPending), string(domain.StatusApproved)}).
		First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorGormRepository) LicenseExists(
	ctx context.Context,
	licenseNumber string,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Where("license_number = ?", licenseNumber).
		Count(&count).Error
	return count > 0, err
}

func (r *DoctorGormRepository) ListByStatus(
	ctx context.Context,
	status domain.Status,
) ([]models.Doctor, error) {

	var list []models.Doctor
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

// --------------------------------------------------
// Decision
// --------------------------------------------------

// ApproveAndPromote commits the status change and the role
// promotion together; a failed promotion rolls both back.
func (r *DoctorGormRepository) ApproveAndPromote(
	ctx context.Context,
	d *models.Doctor,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Doctor{}).
			Where("id = ?", d.ID).
			Update("status", d.Status).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", d.UserID).
			Update("role", models.RoleDoctor).Error
	})
}

func (r *DoctorGormRepository) UpdateDoctor(
	ctx context.Context,
	d *models.Doctor,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(d).Error
}
