package domain

import (
	"errors"
	"testing"
)

func TestValidRole(t *testing.T) {
	if !ValidRole(RoleNormal) || !ValidRole(RoleAdmin) {
		t.Fatalf("expected known roles to be valid")
	}
	if ValidRole("superuser") || ValidRole("") {
		t.Fatalf("expected unknown roles to be invalid")
	}
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("'name' is required")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected InvalidInput to wrap ErrInvalidInput")
	}
	if err.Error() != "invalid input: 'name' is required" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
