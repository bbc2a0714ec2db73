package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"customer":   RoleCustomer,
		"admin":      RoleAdmin,
		"  ADMIN  ":  RoleAdmin,
		"Customer\n": RoleCustomer,
	}
	for raw, want := range cases {
		got, err := ParseRole(raw)
		if err != nil {
			t.Fatalf("ParseRole(%q): unexpected error %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseRole(%q) = %q, want %q", raw, got, want)
		}
	}

	for _, raw := range []string{"", "root", "admins", "guest"} {
		if _, err := ParseRole(raw); !errors.Is(err, ErrInvalidRole) {
			t.Fatalf("ParseRole(%q): expected ErrInvalidRole, got %v", raw, err)
		}
	}
}

func TestRoundToCent(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{199.2118, 199.21},
		{0.125, 0.13},
		{12, 12},
		{0.004, 0},
		{49.999, 50},
	}
	for _, tc := range cases {
		if got := RoundToCent(tc.in); got != tc.want {
			t.Fatalf("RoundToCent(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestOrder_OwnedBy(t *testing.T) {
	o := &Order{CustomerID: "c1"}
	if !o.OwnedBy("c1") || o.OwnedBy("c2") {
		t.Fatal("OwnedBy must compare the customer id")
	}
}

func TestIsNotFound(t *testing.T) {
	for _, err := range []error{ErrUserNotFound, ErrProductNotFound, fmt.Errorf("wrap: %w", ErrOrderNotFound)} {
		if !IsNotFound(err) {
			t.Fatalf("expected %v to be a not-found error", err)
		}
	}
	if IsNotFound(ErrForbidden) {
		t.Fatal("ErrForbidden is not a not-found error")
	}

	var ve *ValidationError
	if !errors.As(NewValidationError("bad"), &ve) || ve.Msg != "bad" {
		t.Fatal("NewValidationError must produce a *ValidationError")
	}
}
