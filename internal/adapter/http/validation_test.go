package http

import (
	"errors"
	"strings"
	"testing"
)

var errTest = errors.New("boom")

func TestValidator_Hex32(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		userID string
		ok     bool
	}{
		{"valid lowercase hex", strings.Repeat("ab", 16), true},
		{"too short", strings.Repeat("a", 31), false},
		{"too long", strings.Repeat("a", 33), false},
		{"uppercase rejected", strings.Repeat("A", 32), false},
		{"non-hex characters", strings.Repeat("g", 32), false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := approverEntry{UserID: tt.userID}
			err := v.Validate(&req)
			if tt.ok && err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Fatalf("expected validation error for %q", tt.userID)
			}
		})
	}
}

func TestValidator_RecordDecisionStatus(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&recordDecisionReq{Status: "APPROVED"}); err != nil {
		t.Fatalf("APPROVED should pass: %v", err)
	}
	if err := v.Validate(&recordDecisionReq{Status: "MAYBE"}); err == nil {
		t.Fatal("MAYBE should fail oneof")
	}

	err := v.Validate(&recordDecisionReq{})
	if err == nil {
		t.Fatal("missing status should fail")
	}
	fes := ToFieldErrors(err)
	if !containsFieldMsg(fes, "Status", "required") {
		t.Fatalf("field errors = %v, want required on Status", fes)
	}
}

func TestToFieldErrors_Messages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&approverEntry{UserID: "nope", DisplayName: strings.Repeat("x", 101)})
	if err == nil {
		t.Fatal("expected validation error")
	}
	fes := ToFieldErrors(err)
	if !containsFieldMsg(fes, "UserID", "hex") {
		t.Fatalf("field errors = %v, want hex32 message on UserID", fes)
	}
	if !containsFieldMsg(fes, "DisplayName", "at most") {
		t.Fatalf("field errors = %v, want max message on DisplayName", fes)
	}
}

func TestToFieldErrors_NonValidatorError(t *testing.T) {
	fes := ToFieldErrors(errTest)
	if len(fes) != 1 || fes[0].Field != "_" {
		t.Fatalf("fallback = %v, want single catch-all entry", fes)
	}
}
