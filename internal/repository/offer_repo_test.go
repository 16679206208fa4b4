package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"motofix/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferRepository_Accept_SingleWinnerUnderConcurrency(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	offers := NewOfferRepository(db)
	bookings := NewBookingRepository(db)
	mechanics := NewMechanicRepository(db)

	customer := seedUser(t, db, domain.RoleCustomer, "rider@example.com")
	booking := seedBooking(t, db, customer.ID, domain.BookingPending)

	const n = 8
	mechanicIDs := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		m := seedMechanic(t, db, fmt.Sprintf("mech%d@example.com", i), true)
		mechanicIDs = append(mechanicIDs, m.ID)
	}

	created, err := offers.CreateBatch(ctx, booking.ID, mechanicIDs, time.Now())
	require.NoError(t, err)
	require.Len(t, created, n)

	var wg sync.WaitGroup
	wg.Add(n)
	results := make(chan error, n)
	winners := make(chan int64, n)

	for i := 0; i < n; i++ {
		go func(offer domain.WorkOffer) {
			defer wg.Done()
			_, _, err := offers.Accept(ctx, offer.ID, offer.MechanicID, time.Now())
			results <- err
			if err == nil {
				winners <- offer.MechanicID
			}
		}(created[i])
	}

	wg.Wait()
	close(results)
	close(winners)

	successCount := 0
	conflictCount := 0
	for err := range results {
		if err == nil {
			successCount++
			continue
		}
		if errors.Is(err, ErrBookingTaken) || errors.Is(err, ErrOfferNotPending) {
			conflictCount++
			continue
		}
		t.Fatalf("unexpected error from Accept: %v", err)
	}
	assert.Equal(t, 1, successCount, "exactly one accept must win")
	assert.Equal(t, n-1, conflictCount, "every other accept must lose with a conflict")

	winnerID := <-winners

	got, err := bookings.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
	require.NotNil(t, got.MechanicID)
	assert.Equal(t, winnerID, *got.MechanicID)

	accepted, err := offers.CountByBookingAndStatus(ctx, booking.ID, domain.OfferAccepted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), accepted)

	superseded, err := offers.CountByBookingAndStatus(ctx, booking.ID, domain.OfferSuperseded)
	require.NoError(t, err)
	assert.Equal(t, int64(n-1), superseded)

	profile, err := mechanics.GetByUserID(ctx, winnerID)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.TotalJobs)
}

func TestOfferRepository_Accept_SupersedesOnlyPendingOffers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	offers := NewOfferRepository(db)

	customer := seedUser(t, db, domain.RoleCustomer, "rider@example.com")
	booking := seedBooking(t, db, customer.ID, domain.BookingPending)

	m1 := seedMechanic(t, db, "m1@example.com", true)
	m2 := seedMechanic(t, db, "m2@example.com", true)
	m3 := seedMechanic(t, db, "m3@example.com", true)

	created, err := offers.CreateBatch(ctx, booking.ID, []int64{m1.ID, m2.ID, m3.ID}, time.Now())
	require.NoError(t, err)

	// m3 rejects before anyone accepts; its offer is terminal.
	rejected, err := offers.Reject(ctx, created[2].ID, m3.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.OfferRejected, rejected.Status)
	require.NotNil(t, rejected.RespondedAt)

	_, losers, err := offers.Accept(ctx, created[0].ID, m1.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []int64{m2.ID}, losers)

	// m3's rejection is untouched by the supersede pass.
	got, err := offers.GetByID(ctx, created[2].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OfferRejected, got.Status)
}

func TestOfferRepository_Accept_Guards(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	offers := NewOfferRepository(db)

	customer := seedUser(t, db, domain.RoleCustomer, "rider@example.com")
	booking := seedBooking(t, db, customer.ID, domain.BookingPending)
	m1 := seedMechanic(t, db, "m1@example.com", true)
	m2 := seedMechanic(t, db, "m2@example.com", true)

	created, err := offers.CreateBatch(ctx, booking.ID, []int64{m1.ID, m2.ID}, time.Now())
	require.NoError(t, err)

	t.Run("unknown offer", func(t *testing.T) {
		_, _, err := offers.Accept(ctx, 99999, m1.ID, time.Now())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("someone else's offer looks absent", func(t *testing.T) {
		_, _, err := offers.Accept(ctx, created[0].ID, m2.ID, time.Now())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("accept after win conflicts", func(t *testing.T) {
		_, _, err := offers.Accept(ctx, created[0].ID, m1.ID, time.Now())
		require.NoError(t, err)

		_, _, err = offers.Accept(ctx, created[1].ID, m2.ID, time.Now())
		assert.ErrorIs(t, err, ErrOfferNotPending)
	})

	t.Run("double accept by winner conflicts", func(t *testing.T) {
		_, _, err := offers.Accept(ctx, created[0].ID, m1.ID, time.Now())
		assert.ErrorIs(t, err, ErrOfferNotPending)
	})
}

func TestOfferRepository_Reject_Guards(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	offers := NewOfferRepository(db)

	customer := seedUser(t, db, domain.RoleCustomer, "rider@example.com")
	booking := seedBooking(t, db, customer.ID, domain.BookingPending)
	m1 := seedMechanic(t, db, "m1@example.com", true)

	created, err := offers.CreateBatch(ctx, booking.ID, []int64{m1.ID}, time.Now())
	require.NoError(t, err)

	_, err = offers.Reject(ctx, created[0].ID, m1.ID, time.Now())
	require.NoError(t, err)

	// A terminal offer cannot be rejected again.
	_, err = offers.Reject(ctx, created[0].ID, m1.ID, time.Now())
	assert.ErrorIs(t, err, ErrOfferNotPending)
}

func TestOfferRepository_CreateBatch_Empty(t *testing.T) {
	db := newTestDB(t)
	offers := NewOfferRepository(db)

	created, err := offers.CreateBatch(context.Background(), 1, nil, time.Now())
	require.NoError(t, err)
	assert.Empty(t, created)
}
