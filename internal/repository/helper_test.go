package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"motofix/internal/database"
	"motofix/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a file-backed sqlite database in a temp dir. Immediate
// transactions plus a busy timeout make concurrent gorm transactions
// queue instead of failing with "database is locked".
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "motofix_test.db") +
		"?_txlock=immediate&_pragma=busy_timeout(10000)"
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role domain.UserRole, email string) *domain.User {
	t.Helper()

	users := NewUserRepository(db)
	u := &domain.User{
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		Name:         email,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func seedMechanic(t *testing.T, db *gorm.DB, email string, available bool) *domain.User {
	t.Helper()

	u := seedUser(t, db, domain.RoleMechanic, email)
	mechanics := NewMechanicRepository(db)
	require.NoError(t, mechanics.CreateProfile(context.Background(), &domain.MechanicProfile{
		UserID:         u.ID,
		Specialization: domain.SpecAll,
		IsAvailable:    available,
	}))
	return u
}

func seedBooking(t *testing.T, db *gorm.DB, customerID int64, status domain.BookingStatus) *domain.Booking {
	t.Helper()

	bookings := NewBookingRepository(db)
	b := &domain.Booking{
		CustomerID:         customerID,
		MotorcycleID:       1,
		ProblemDescription: "engine stalls at idle",
		AppointmentDate:    time.Now().Add(48 * time.Hour),
		Status:             status,
	}
	require.NoError(t, bookings.Create(context.Background(), b))
	return b
}
