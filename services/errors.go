package services

import "errors"

// Sentinel errors the controllers map to HTTP statuses.
var (
	ErrPropertyNotFound = errors.New("property_not_found")
	ErrBookingNotFound  = errors.New("booking_not_found")
	ErrPaymentNotFound  = errors.New("payment_not_found")
	ErrGuestNotFound    = errors.New("guest_not_found")

	ErrInvalidDateRange = errors.New("invalid_date_range")
	ErrMissingIdentity  = errors.New("missing_required_id")
	ErrRoomsUnavailable = errors.New("rooms_unavailable")
	ErrBookingCancelled = errors.New("booking_cancelled")

	ErrInvalidSignature = errors.New("invalid_signature")
	ErrMalformedPayload = errors.New("malformed_payload")
)
