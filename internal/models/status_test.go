package models

import "testing"

func TestReservationTransitions(t *testing.T) {
	tests := []struct {
		name string
		from ReservationStatus
		to   ReservationStatus
		want bool
	}{
		{"pending to confirmed", ReservationPending, ReservationConfirmed, true},
		{"pending to cancelled", ReservationPending, ReservationCancelled, true},
		{"confirmed to cancelled", ReservationConfirmed, ReservationCancelled, true},
		{"confirmed to pending", ReservationConfirmed, ReservationPending, false},
		{"cancelled to confirmed", ReservationCancelled, ReservationConfirmed, false},
		{"cancelled to pending", ReservationCancelled, ReservationPending, false},
		{"pending to pending", ReservationPending, ReservationPending, false},
		{"cancelled to cancelled", ReservationCancelled, ReservationCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestParseReservationStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "cancelled"} {
		if _, err := ParseReservationStatus(valid); err != nil {
			t.Errorf("ParseReservationStatus(%q) unexpected error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "PENDING", "done", "canceled"} {
		if _, err := ParseReservationStatus(invalid); err == nil {
			t.Errorf("ParseReservationStatus(%q) expected error", invalid)
		}
	}
}

func TestParsePaymentMethod(t *testing.T) {
	for _, valid := range []string{"online", "on_spot"} {
		if _, err := ParsePaymentMethod(valid); err != nil {
			t.Errorf("ParsePaymentMethod(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParsePaymentMethod("cash"); err == nil {
		t.Error("ParsePaymentMethod(\"cash\") expected error")
	}
}

func TestCourtStatusBookable(t *testing.T) {
	if !CourtAvailable.Bookable() {
		t.Error("available court should be bookable")
	}
	if CourtMaintenance.Bookable() {
		t.Error("maintenance court should not be bookable")
	}
	if CourtReserved.Bookable() {
		t.Error("reserved court should not be bookable")
	}
}
