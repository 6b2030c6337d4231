package model

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{BookingStatusPending, BookingStatusApproved, true},
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusApproved, BookingStatusConfirmed, true},
		{BookingStatusApproved, BookingStatusPending, false},
		{BookingStatusConfirmed, BookingStatusApproved, false},
		{BookingStatusConfirmed, BookingStatusPending, false},
		{BookingStatusPending, BookingStatusPending, false},
		{BookingStatusConfirmed, BookingStatusConfirmed, false},
		{"bogus", BookingStatusApproved, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.allowed {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestIsBookingStatus(t *testing.T) {
	for _, status := range []string{BookingStatusPending, BookingStatusApproved, BookingStatusConfirmed} {
		if !IsBookingStatus(status) {
			t.Errorf("expected %q to be a booking status", status)
		}
	}
	if IsBookingStatus("cancelled") {
		t.Error("cancelled is not a booking status")
	}
}
