package domain

import (
	"errors"
	"testing"
)

func ident(role Role) Identity { return Identity{SubjectID: "u1", Role: role} }

func TestAuthorize_Matrix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		id     Identity
		action Action
		want   error
	}{
		{"user creates loan", ident(RoleUser), ActionCreateLoan, nil},
		{"verifier creates loan", ident(RoleVerifier), ActionCreateLoan, nil},
		{"admin creates loan", ident(RoleAdmin), ActionCreateLoan, nil},
		{"user lists loans", ident(RoleUser), ActionListLoans, nil},
		{"user lists users by role", ident(RoleUser), ActionListUsersByRole, nil},
		{"verifier verifies", ident(RoleVerifier), ActionVerifyLoan, nil},
		{"user verifies", ident(RoleUser), ActionVerifyLoan, ErrForbidden},
		{"admin verifies", ident(RoleAdmin), ActionVerifyLoan, ErrForbidden},
		{"verifier rejects", ident(RoleVerifier), ActionRejectLoan, nil},
		{"user rejects", ident(RoleUser), ActionRejectLoan, ErrForbidden},
		{"verifier updates status", ident(RoleVerifier), ActionUpdateStatus, nil},
		{"admin updates status", ident(RoleAdmin), ActionUpdateStatus, nil},
		{"user updates status", ident(RoleUser), ActionUpdateStatus, ErrForbidden},
		{"admin changes role", ident(RoleAdmin), ActionChangeUserRole, nil},
		{"verifier changes role", ident(RoleVerifier), ActionChangeUserRole, ErrForbidden},
		{"admin deletes user", ident(RoleAdmin), ActionDeleteUser, nil},
		{"user deletes user", ident(RoleUser), ActionDeleteUser, ErrForbidden},
		{"anonymous", Identity{}, ActionCreateLoan, ErrUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.id, tt.action)
			if !errors.Is(got, tt.want) && got != tt.want {
				t.Fatalf("Authorize(%v, %q) = %v, want %v", tt.id.Role, tt.action, got, tt.want)
			}
		})
	}
}

func TestCheckTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		actor  Role
		target Status
		want   error
	}{
		{"verifier to verified", RoleVerifier, StatusVerified, nil},
		{"verifier to rejected", RoleVerifier, StatusRejected, nil},
		{"verifier to pending", RoleVerifier, StatusPending, nil},
		{"verifier to approved", RoleVerifier, StatusApproved, ErrForbidden},
		{"admin to approved", RoleAdmin, StatusApproved, nil},
		{"admin to pending", RoleAdmin, StatusPending, nil},
		{"user to verified", RoleUser, StatusVerified, ErrForbidden},
		{"user to approved", RoleUser, StatusApproved, ErrForbidden},
		{"admin to garbage", RoleAdmin, Status("ESCALATED"), ErrInvalidStatus},
		{"verifier to empty", RoleVerifier, Status(""), ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckTransition(tt.actor, tt.target); !errors.Is(got, tt.want) && got != tt.want {
				t.Fatalf("CheckTransition(%q, %q) = %v, want %v", tt.actor, tt.target, got, tt.want)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"PENDING", "VERIFIED", "APPROVED", "REJECTED"} {
		if _, err := ParseStatus(s); err != nil {
			t.Fatalf("ParseStatus(%q) error: %v", s, err)
		}
	}
	for _, s := range []string{"", "pending", "DONE"} {
		if _, err := ParseStatus(s); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("ParseStatus(%q) = %v, want ErrInvalidStatus", s, err)
		}
	}
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"USER", "VERIFIER", "ADMIN"} {
		if _, err := ParseRole(s); err != nil {
			t.Fatalf("ParseRole(%q) error: %v", s, err)
		}
	}
	if _, err := ParseRole("ROOT"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("ParseRole(ROOT) = %v, want ErrInvalidRole", err)
	}
}
