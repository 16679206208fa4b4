package repository

import (
	"context"
	"errors"

	"motofix/internal/domain"

	"gorm.io/gorm"
)

type MechanicRepository struct {
	db *gorm.DB
}

func NewMechanicRepository(db *gorm.DB) *MechanicRepository {
	return &MechanicRepository{db: db}
}

func (r *MechanicRepository) CreateProfile(ctx context.Context, p *domain.MechanicProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *MechanicRepository) GetByUserID(ctx context.Context, userID int64) (*domain.MechanicProfile, error) {
	var p domain.MechanicProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *MechanicRepository) UpdateProfile(ctx context.Context, p *domain.MechanicProfile) error {
	res := r.db.WithContext(ctx).
		Model(&domain.MechanicProfile{}).
		Where("user_id = ?", p.UserID).
		Updates(map[string]interface{}{
			"specialization":      p.Specialization,
			"years_of_experience": p.YearsOfExperience,
			"certification":       p.Certification,
			"bio":                 p.Bio,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MechanicRepository) SetAvailability(ctx context.Context, userID int64, available bool) error {
	res := r.db.WithContext(ctx).
		Model(&domain.MechanicProfile{}).
		Where("user_id = ?", userID).
		Update("is_available", available)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AvailableMechanicIDs returns the user ids of every mechanic currently
// flagged available. The dispatcher treats the result as a point-in-time
// snapshot: mechanics who flip the flag afterwards are not re-offered.
func (r *MechanicRepository) AvailableMechanicIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.MechanicProfile{}).
		Where("is_available = ?", true).
		Order("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}
