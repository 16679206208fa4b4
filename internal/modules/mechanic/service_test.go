package mechanic

import (
	"context"
	"testing"

	"motofix/internal/domain"
	"motofix/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMechanicRepository struct {
	mock.Mock
}

func (m *MockMechanicRepository) GetByUserID(ctx context.Context, userID int64) (*domain.MechanicProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MechanicProfile), args.Error(1)
}

func (m *MockMechanicRepository) UpdateProfile(ctx context.Context, p *domain.MechanicProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockMechanicRepository) SetAvailability(ctx context.Context, userID int64, available bool) error {
	args := m.Called(ctx, userID, available)
	return args.Error(0)
}

type MockOfferCounter struct {
	mock.Mock
}

func (m *MockOfferCounter) CountByMechanicAndStatus(ctx context.Context, mechanicID int64, status domain.OfferStatus) (int64, error) {
	args := m.Called(ctx, mechanicID, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockBookingCounter struct {
	mock.Mock
}

func (m *MockBookingCounter) CountByMechanicAndStatus(ctx context.Context, mechanicID int64, status domain.BookingStatus) (int64, error) {
	args := m.Called(ctx, mechanicID, status)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(repo *MockMechanicRepository) (*Service, *MockOfferCounter, *MockBookingCounter) {
	offers := new(MockOfferCounter)
	bookings := new(MockBookingCounter)
	return NewService(repo, offers, bookings), offers, bookings
}

func TestSetAvailability(t *testing.T) {
	repo := new(MockMechanicRepository)
	svc, _, _ := newTestService(repo)

	repo.On("SetAvailability", mock.Anything, int64(10), false).Return(nil)
	repo.On("GetByUserID", mock.Anything, int64(10)).
		Return(&domain.MechanicProfile{UserID: 10, IsAvailable: false}, nil)

	p, err := svc.SetAvailability(context.Background(), 10, false)

	assert.NoError(t, err)
	assert.False(t, p.IsAvailable)
}

func TestSetAvailability_NoProfile(t *testing.T) {
	repo := new(MockMechanicRepository)
	svc, _, _ := newTestService(repo)

	repo.On("SetAvailability", mock.Anything, int64(10), true).Return(repository.ErrNotFound)

	_, err := svc.SetAvailability(context.Background(), 10, true)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUpdateProfile(t *testing.T) {
	repo := new(MockMechanicRepository)
	svc, _, _ := newTestService(repo)

	repo.On("UpdateProfile", mock.Anything, mock.AnythingOfType("*domain.MechanicProfile")).Return(nil)
	repo.On("GetByUserID", mock.Anything, int64(10)).
		Return(&domain.MechanicProfile{UserID: 10, Specialization: domain.SpecEngine}, nil)

	p, err := svc.UpdateProfile(context.Background(), 10, UpdateProfileRequest{
		Specialization:    "engine",
		YearsOfExperience: 6,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.SpecEngine, p.Specialization)
}

func TestGetDashboard(t *testing.T) {
	repo := new(MockMechanicRepository)
	svc, offers, bookings := newTestService(repo)

	offers.On("CountByMechanicAndStatus", mock.Anything, int64(10), domain.OfferPending).Return(int64(3), nil)
	bookings.On("CountByMechanicAndStatus", mock.Anything, int64(10), domain.BookingConfirmed).Return(int64(1), nil)
	bookings.On("CountByMechanicAndStatus", mock.Anything, int64(10), domain.BookingInProgress).Return(int64(2), nil)
	bookings.On("CountByMechanicAndStatus", mock.Anything, int64(10), domain.BookingCompleted).Return(int64(7), nil)

	d, err := svc.GetDashboard(context.Background(), 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), d.PendingOffers)
	assert.Equal(t, int64(3), d.ActiveJobs)
	assert.Equal(t, int64(7), d.CompletedJobs)
}
