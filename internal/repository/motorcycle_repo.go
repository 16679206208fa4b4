package repository

import (
	"context"
	"errors"

	"motofix/internal/domain"

	"gorm.io/gorm"
)

type MotorcycleRepository struct {
	db *gorm.DB
}

func NewMotorcycleRepository(db *gorm.DB) *MotorcycleRepository {
	return &MotorcycleRepository{db: db}
}

func (r *MotorcycleRepository) Create(ctx context.Context, m *domain.Motorcycle) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *MotorcycleRepository) GetByID(ctx context.Context, id int64) (*domain.Motorcycle, error) {
	var m domain.Motorcycle
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MotorcycleRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Motorcycle, error) {
	var out []domain.Motorcycle
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

func (r *MotorcycleRepository) Update(ctx context.Context, m *domain.Motorcycle) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Motorcycle{}).
		Where("id = ? AND owner_id = ?", m.ID, m.OwnerID).
		Updates(map[string]interface{}{
			"brand":         m.Brand,
			"model":         m.Model,
			"year":          m.Year,
			"cc":            m.CC,
			"bike_type":     m.BikeType,
			"license_plate": m.LicensePlate,
			"color":         m.Color,
			"mileage":       m.Mileage,
			"notes":         m.Notes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MotorcycleRepository) Delete(ctx context.Context, id, ownerID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&domain.Motorcycle{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
