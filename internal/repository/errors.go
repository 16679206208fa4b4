package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Storage-level sentinels. Services map these onto their module errors;
// handlers never see them directly.
var (
	ErrNotFound = errors.New("record not found")

	// ErrOfferNotPending: the offer already reached a terminal status
	// (accepted, rejected or superseded).
	ErrOfferNotPending = errors.New("offer is no longer pending")

	// ErrBookingTaken: the parent booking left pending before this
	// transaction could claim it — the caller lost the race.
	ErrBookingTaken = errors.New("booking already taken")

	// ErrInvalidStatus: a guarded status transition found the row in a
	// state the transition graph does not allow.
	ErrInvalidStatus = errors.New("invalid status for transition")

	// ErrNotAssigned: the booking is not assigned to the acting mechanic.
	ErrNotAssigned = errors.New("booking not assigned to this mechanic")

	// ErrDuplicate: an insert hit a unique constraint (email, license plate).
	ErrDuplicate = errors.New("record already exists")
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}

	// sqlite reports constraint violations as plain text
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate")
}
