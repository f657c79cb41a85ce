// internal/models/status.go
package models

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a guarded status update matches no
// row, meaning the record was not in the expected source state.
var ErrInvalidTransition = errors.New("invalid status transition")

// CourtStatus is the lifecycle state of a bookable court.
type CourtStatus string

const (
	CourtAvailable   CourtStatus = "available"
	CourtReserved    CourtStatus = "reserved"
	CourtMaintenance CourtStatus = "maintenance"
)

// ParseCourtStatus validates a raw status string from a request or the database.
func ParseCourtStatus(raw string) (CourtStatus, error) {
	switch CourtStatus(raw) {
	case CourtAvailable, CourtReserved, CourtMaintenance:
		return CourtStatus(raw), nil
	default:
		return "", fmt.Errorf("invalid court status %q", raw)
	}
}

// Bookable reports whether new reservations may be taken on a court in this state.
func (s CourtStatus) Bookable() bool {
	return s == CourtAvailable
}

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// ParseReservationStatus validates a raw status string.
func ParseReservationStatus(raw string) (ReservationStatus, error) {
	switch ReservationStatus(raw) {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return ReservationStatus(raw), nil
	default:
		return "", fmt.Errorf("invalid reservation status %q", raw)
	}
}

// CanTransitionTo reports whether the edge s -> next is a legal lifecycle
// transition. The only legal edges are pending->confirmed, pending->cancelled
// and confirmed->cancelled; cancelled is terminal.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case ReservationPending:
		return next == ReservationConfirmed || next == ReservationCancelled
	case ReservationConfirmed:
		return next == ReservationCancelled
	case ReservationCancelled:
		return false
	default:
		return false
	}
}

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// ParsePaymentStatus validates a raw status string.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch PaymentStatus(raw) {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return PaymentStatus(raw), nil
	default:
		return "", fmt.Errorf("invalid payment status %q", raw)
	}
}

// PaymentMethod is how a reservation gets paid.
type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "online"
	PaymentOnSpot PaymentMethod = "on_spot"
)

// ParsePaymentMethod validates a raw method string.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch PaymentMethod(raw) {
	case PaymentOnline, PaymentOnSpot:
		return PaymentMethod(raw), nil
	default:
		return "", fmt.Errorf("invalid payment method %q", raw)
	}
}

// Role is a user's access level.
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// ParseRole validates a raw role string.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleClient, RoleAdmin:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("invalid role %q", raw)
	}
}
