package repository

import (
	"context"
	"errors"
	"time"

	"motofix/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	CustomerID         int64      `gorm:"column:customer_id;index"`
	MotorcycleID       int64      `gorm:"column:motorcycle_id"`
	MechanicID         *int64     `gorm:"column:mechanic_id;index"`
	ProblemDescription string     `gorm:"column:problem_description"`
	AppointmentDate    time.Time  `gorm:"column:appointment_date"`
	Status             string     `gorm:"column:status"`
	EstimatedCost      *float64   `gorm:"column:estimated_cost"`
	ActualCost         *float64   `gorm:"column:actual_cost"`
	RepairNotes        *string    `gorm:"column:repair_notes"`
	CompletionDate     *time.Time `gorm:"column:completion_date"`
	PickupDate         *time.Time `gorm:"column:pickup_date"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes string
	if m.RepairNotes != nil {
		notes = *m.RepairNotes
	}

	return &domain.Booking{
		ID:                 m.ID,
		CustomerID:         m.CustomerID,
		MotorcycleID:       m.MotorcycleID,
		MechanicID:         m.MechanicID,
		ProblemDescription: m.ProblemDescription,
		AppointmentDate:    m.AppointmentDate,
		Status:             domain.BookingStatus(m.Status),
		EstimatedCost:      m.EstimatedCost,
		ActualCost:         m.ActualCost,
		RepairNotes:        notes,
		CompletionDate:     m.CompletionDate,
		PickupDate:         m.PickupDate,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes *string
	if b.RepairNotes != "" {
		v := b.RepairNotes
		notes = &v
	}

	return bookingModel{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		MotorcycleID:       b.MotorcycleID,
		MechanicID:         b.MechanicID,
		ProblemDescription: b.ProblemDescription,
		AppointmentDate:    b.AppointmentDate,
		Status:             string(b.Status),
		EstimatedCost:      b.EstimatedCost,
		ActualCost:         b.ActualCost,
		RepairNotes:        notes,
		CompletionDate:     b.CompletionDate,
		PickupDate:         b.PickupDate,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("appointment_date desc").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) ListByMechanic(ctx context.Context, mechanicID int64, limit, offset int) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("mechanic_id = ?", mechanicID).
		Order("appointment_date desc").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) CountByMechanicAndStatus(ctx context.Context, mechanicID int64, status domain.BookingStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("mechanic_id = ? AND status = ?", mechanicID, status).
		Count(&count).Error
	return count, err
}

// Start moves confirmed → in_progress for the assigned mechanic. The guard
// lives in the UPDATE's WHERE clause, so a concurrent transition cannot
// slip between a read and a write.
func (r *BookingRepository) Start(ctx context.Context, bookingID, mechanicID int64) (*domain.Booking, error) {
	var out *domain.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&bookingModel{}).
			Where("id = ? AND mechanic_id = ? AND status = ?", bookingID, mechanicID, domain.BookingConfirmed).
			Update("status", domain.BookingInProgress)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return r.classifyGuardFailure(tx, bookingID, mechanicID)
		}

		var m bookingModel
		if err := tx.First(&m, bookingID).Error; err != nil {
			return err
		}
		out = toDomainBooking(m)
		return nil
	})
	return out, err
}

// Complete moves in_progress → completed and records the repair outcome.
func (r *BookingRepository) Complete(ctx context.Context, bookingID, mechanicID int64, actualCost *float64, repairNotes string, now time.Time) (*domain.Booking, error) {
	var out *domain.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":          domain.BookingCompleted,
			"completion_date": now,
		}
		if actualCost != nil {
			updates["actual_cost"] = *actualCost
		}
		if repairNotes != "" {
			updates["repair_notes"] = repairNotes
		}

		res := tx.Model(&bookingModel{}).
			Where("id = ? AND mechanic_id = ? AND status = ?", bookingID, mechanicID, domain.BookingInProgress).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return r.classifyGuardFailure(tx, bookingID, mechanicID)
		}

		var m bookingModel
		if err := tx.First(&m, bookingID).Error; err != nil {
			return err
		}
		out = toDomainBooking(m)
		return nil
	})
	return out, err
}

// Cancel moves pending/confirmed → cancelled and supersedes every still
// pending offer of the booking inside the same transaction, so an accept
// that commits after the cancel always loses. Returns the cancelled
// booking and the mechanic ids whose offers were invalidated.
func (r *BookingRepository) Cancel(ctx context.Context, bookingID int64) (*domain.Booking, []int64, error) {
	var (
		out    *domain.Booking
		losers []int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&bookingModel{}).
			Where("id = ? AND status IN ?", bookingID, []string{
				string(domain.BookingPending),
				string(domain.BookingConfirmed),
			}).
			Update("status", domain.BookingCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var m bookingModel
			if err := tx.First(&m, bookingID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			return ErrInvalidStatus
		}

		if err := tx.Model(&domain.WorkOffer{}).
			Where("booking_id = ? AND status = ?", bookingID, domain.OfferPending).
			Pluck("mechanic_id", &losers).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.WorkOffer{}).
			Where("booking_id = ? AND status = ?", bookingID, domain.OfferPending).
			Update("status", domain.OfferSuperseded).Error; err != nil {
			return err
		}

		var m bookingModel
		if err := tx.First(&m, bookingID).Error; err != nil {
			return err
		}
		out = toDomainBooking(m)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return out, losers, nil
}

func (r *BookingRepository) classifyGuardFailure(tx *gorm.DB, bookingID, mechanicID int64) error {
	var m bookingModel
	if err := tx.First(&m, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if m.MechanicID == nil || *m.MechanicID != mechanicID {
		return ErrNotAssigned
	}
	return ErrInvalidStatus
}
