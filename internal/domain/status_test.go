package domain

import "testing"

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		got, ok := ParseStatus(string(s))
		if !ok || got != s {
			t.Fatalf("ParseStatus(%q) = %q, %v", s, got, ok)
		}
	}
	if _, ok := ParseStatus("shipped"); ok {
		t.Fatal("ParseStatus accepted unknown status")
	}
	if _, ok := ParseStatus(""); ok {
		t.Fatal("ParseStatus accepted empty status")
	}
}

func TestStatus_Terminal(t *testing.T) {
	if !StatusDelivered.Terminal() || !StatusCancelled.Terminal() {
		t.Fatal("delivered and cancelled must be terminal")
	}
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCooking, StatusReady} {
		if s.Terminal() {
			t.Fatalf("%q must not be terminal", s)
		}
	}
}

func TestStatus_CancelledFromEveryNonTerminal(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCooking, StatusReady} {
		if !s.CanTransitionTo(StatusCancelled) {
			t.Fatalf("%q -> cancelled must be legal", s)
		}
	}
	if StatusDelivered.CanTransitionTo(StatusCancelled) {
		t.Fatal("delivered -> cancelled must be rejected")
	}
	if StatusCancelled.CanTransitionTo(StatusPending) {
		t.Fatal("cancelled admits no transition")
	}
}

func TestStatus_ForwardMonotonic(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusDelivered, true}, // skipping forward is allowed
		{StatusConfirmed, StatusReady, true},
		{StatusCooking, StatusConfirmed, false}, // backward
		{StatusReady, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false}, // no self-transition
		{StatusDelivered, StatusReady, false},     // terminal
		{StatusPending, Status("shipped"), false}, // unknown target
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%q -> %q = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
