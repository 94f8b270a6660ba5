// internal/approval/approval_test.go
//
// Unit-tests for the approval state machine.
//
// Run: go test ./internal/approval -v

package approval

import (
	"testing"

	"github.com/yanizio/vitrine/internal/business"
	"github.com/yanizio/vitrine/internal/fault"
	"github.com/yanizio/vitrine/internal/user"
)

func TestTransitions(t *testing.T) {
	legal := []struct{ from, to business.Status }{
		{business.StatusPending, business.StatusApproved},
		{business.StatusPending, business.StatusRejected},
		{business.StatusApproved, business.StatusActive},
	}
	for _, c := range legal {
		if got, err := Transition(c.from, c.to); err != nil || got != c.to {
			t.Errorf("%s → %s should be legal, got %v", c.from, c.to, err)
		}
	}

	illegal := []struct{ from, to business.Status }{
		{business.StatusRejected, business.StatusApproved},
		{business.StatusApproved, business.StatusPending},
		{business.StatusActive, business.StatusPending},
		{business.StatusPending, business.StatusActive},
	}
	for _, c := range illegal {
		if _, err := Transition(c.from, c.to); err == nil {
			t.Errorf("%s → %s should be rejected", c.from, c.to)
		}
	}
}

func TestDecideEdit(t *testing.T) {
	cases := []struct {
		role   user.Role
		status business.Status
		want   EditDecision
	}{
		{user.RoleContentAdmin, business.StatusApproved, ParkForReview},
		// Active is publicly reachable; editing it live would bypass
		// review just the same.
		{user.RoleContentAdmin, business.StatusActive, ParkForReview},
		{user.RoleContentAdmin, business.StatusPending, ApplyNow},
		{user.RoleMainAdmin, business.StatusApproved, ApplyNow},
		{user.RoleMainAdmin, business.StatusActive, ApplyNow},
		{user.RoleNormal, business.StatusApproved, ApplyNow},
	}
	for _, c := range cases {
		if got := DecideEdit(c.role, c.status); got != c.want {
			t.Errorf("DecideEdit(%s, %s) = %v, want %v", c.role, c.status, got, c.want)
		}
	}
}

func TestCheckCreateAllowed(t *testing.T) {
	blocking := &business.Record{ID: 7, Slug: "abshop", Name: "A & B Shop",
		Status: business.StatusPending}

	err := CheckCreateAllowed(user.RoleContentAdmin, blocking)
	if !fault.IsConflict(err) {
		t.Fatalf("want Conflict, got %v", err)
	}

	// The conflict names the blocking business.
	if ferr, ok := err.(*fault.Error); !ok || ferr.Ref != "abshop" {
		t.Fatalf("conflict must reference the blocking business, got %v", err)
	}

	// Rejected businesses do not block, and admins are never blocked.
	if err := CheckCreateAllowed(user.RoleContentAdmin, nil); err != nil {
		t.Errorf("no blocking record should allow creation: %v", err)
	}
	if err := CheckCreateAllowed(user.RoleMainAdmin, blocking); err != nil {
		t.Errorf("main_admin must be unrestricted: %v", err)
	}
	if err := CheckCreateAllowed(user.RoleNormal, blocking); err != nil {
		t.Errorf("normal role is not subject to the cardinality rule: %v", err)
	}
}
