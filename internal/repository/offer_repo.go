package repository

import (
	"context"
	"errors"
	"time"

	"motofix/internal/domain"

	"gorm.io/gorm"
)

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// CreateBatch inserts one pending offer per mechanic in the snapshot, all
// sharing the same assigned_at.
func (r *OfferRepository) CreateBatch(ctx context.Context, bookingID int64, mechanicIDs []int64, assignedAt time.Time) ([]domain.WorkOffer, error) {
	if len(mechanicIDs) == 0 {
		return nil, nil
	}

	offers := make([]domain.WorkOffer, 0, len(mechanicIDs))
	for _, mid := range mechanicIDs {
		offers = append(offers, domain.WorkOffer{
			MechanicID: mid,
			BookingID:  bookingID,
			Status:     domain.OfferPending,
			AssignedAt: assignedAt,
		})
	}

	if err := r.db.WithContext(ctx).Create(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *OfferRepository) GetByID(ctx context.Context, id int64) (*domain.WorkOffer, error) {
	var o domain.WorkOffer
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OfferRepository) ListByMechanic(ctx context.Context, mechanicID int64) ([]domain.WorkOffer, error) {
	var out []domain.WorkOffer
	err := r.db.WithContext(ctx).
		Preload("Booking").
		Where("mechanic_id = ?", mechanicID).
		Order("assigned_at desc").
		Find(&out).Error
	return out, err
}

// Accept is the win/lose arbiter. Everything runs in one transaction and
// every guard is a conditional UPDATE checked via RowsAffected, which is
// race-free on both postgres (row locks, WHERE re-evaluated once the
// blocking writer commits) and sqlite (single writer):
//
//  1. claim the booking: pending → confirmed + bind mechanic
//  2. claim the offer: pending → accepted
//  3. supersede every other pending offer of the booking
//  4. bump the winner's total_jobs
//
// The booking row is claimed before anything else is written: it is the
// single arbitration point, so concurrent accepts for the same booking
// serialize on it immediately and the loser touches no other rows. A
// zero-row result at step 1 means another mechanic got there first (or
// the booking was cancelled); the caller lost the race. A zero-row result
// at step 2 means the offer itself already reached a terminal status; the
// rollback undoes the booking claim. Exactly one concurrent caller per
// booking can commit.
func (r *OfferRepository) Accept(ctx context.Context, offerID, mechanicID int64, now time.Time) (*domain.Booking, []int64, error) {
	var (
		booking *domain.Booking
		losers  []int64
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var offer domain.WorkOffer
		if err := tx.First(&offer, offerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		// Foreign offers are invisible, not forbidden.
		if offer.MechanicID != mechanicID {
			return ErrNotFound
		}
		if offer.Status != domain.OfferPending {
			return ErrOfferNotPending
		}

		res := tx.Model(&bookingModel{}).
			Where("id = ? AND status = ?", offer.BookingID, domain.BookingPending).
			Updates(map[string]interface{}{
				"status":      domain.BookingConfirmed,
				"mechanic_id": mechanicID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBookingTaken
		}

		res = tx.Model(&domain.WorkOffer{}).
			Where("id = ? AND status = ?", offerID, domain.OfferPending).
			Updates(map[string]interface{}{
				"status":       domain.OfferAccepted,
				"responded_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOfferNotPending
		}

		if err := tx.Model(&domain.WorkOffer{}).
			Where("booking_id = ? AND status = ? AND id <> ?", offer.BookingID, domain.OfferPending, offerID).
			Pluck("mechanic_id", &losers).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.WorkOffer{}).
			Where("booking_id = ? AND status = ? AND id <> ?", offer.BookingID, domain.OfferPending, offerID).
			Update("status", domain.OfferSuperseded).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.MechanicProfile{}).
			Where("user_id = ?", mechanicID).
			Update("total_jobs", gorm.Expr("total_jobs + 1")).Error; err != nil {
			return err
		}

		var m bookingModel
		if err := tx.First(&m, offer.BookingID).Error; err != nil {
			return err
		}
		booking = toDomainBooking(m)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return booking, losers, nil
}

// Reject moves a pending offer to rejected. No effect on the booking or
// the mechanic's other offers.
func (r *OfferRepository) Reject(ctx context.Context, offerID, mechanicID int64, now time.Time) (*domain.WorkOffer, error) {
	var out *domain.WorkOffer
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.WorkOffer{}).
			Where("id = ? AND mechanic_id = ? AND status = ?", offerID, mechanicID, domain.OfferPending).
			Updates(map[string]interface{}{
				"status":       domain.OfferRejected,
				"responded_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return classifyOfferGuardFailure(tx, offerID, mechanicID)
		}

		var o domain.WorkOffer
		if err := tx.First(&o, offerID).Error; err != nil {
			return err
		}
		out = &o
		return nil
	})
	return out, err
}

func (r *OfferRepository) CountByMechanicAndStatus(ctx context.Context, mechanicID int64, status domain.OfferStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.WorkOffer{}).
		Where("mechanic_id = ? AND status = ?", mechanicID, status).
		Count(&count).Error
	return count, err
}

func (r *OfferRepository) CountByBookingAndStatus(ctx context.Context, bookingID int64, status domain.OfferStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.WorkOffer{}).
		Where("booking_id = ? AND status = ?", bookingID, status).
		Count(&count).Error
	return count, err
}

// classifyOfferGuardFailure runs after a guarded UPDATE matched nothing.
// An offer belonging to a different mechanic is reported as not found, not
// forbidden: mechanics cannot see each other's offers.
func classifyOfferGuardFailure(tx *gorm.DB, offerID, mechanicID int64) error {
	var o domain.WorkOffer
	if err := tx.First(&o, offerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if o.MechanicID != mechanicID {
		return ErrNotFound
	}
	return ErrOfferNotPending
}
