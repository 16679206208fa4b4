package dispatch

import "errors"

var (
	// ErrOfferNotFound also covers offers addressed to a different
	// mechanic: foreign offers are invisible, not forbidden.
	ErrOfferNotFound = errors.New("offer not found")

	// ErrJobTaken: another mechanic won the booking first.
	ErrJobTaken = errors.New("job already taken by another mechanic")

	// ErrOfferResolved: this offer already reached a terminal status.
	ErrOfferResolved = errors.New("offer is no longer pending")
)
