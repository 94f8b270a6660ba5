// internal/approval/approval.go
//
// The approval state machine.
//
// Context
// -------
// Two machines govern a business record.  The primary `status` machine
// controls public visibility:
//
//	pending → approved | rejected
//	approved → active
//	rejected is terminal (a resubmission is a new create)
//
// Independently, `edit_approval_status` gates edits to publicly visible
// (approved or active) listings:
//
//	none ⇄ pending → approved → none
//	                  rejected → none
//
// A content_admin's update parks as a pending edit; the approved version
// stays visible untouched.  A main_admin's (or normal owner's) update
// applies immediately.  Roles are re-resolved per request by
// internal/user, never trusted from a credential.
//
// Creation is also gated for content_admin accounts: at most one business
// whose status is approved or pending.  Rejected businesses do not count.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package approval

import (
	"github.com/yanizio/vitrine/internal/business"
	"github.com/yanizio/vitrine/internal/fault"
	"github.com/yanizio/vitrine/internal/user"
)

// transitions lists the legal moves of the primary status machine.
var transitions = map[business.Status][]business.Status{
	business.StatusPending:  {business.StatusApproved, business.StatusRejected},
	business.StatusApproved: {business.StatusActive},
	business.StatusRejected: {},
	business.StatusActive:   {},
}

// CanTransition reports whether from → to is a legal status move.
func CanTransition(from, to business.Status) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Transition validates and returns the new status, or a fault describing
// the illegal move.
func Transition(from, to business.Status) (business.Status, error) {
	if !CanTransition(from, to) {
		return from, fault.Validationf("status",
			"illegal status transition %s → %s", from, to)
	}
	return to, nil
}

// EditDecision says what a submitted update should do.
type EditDecision int

const (
	// ApplyNow writes through immediately; edit status stays none.
	ApplyNow EditDecision = iota
	// ParkForReview stores the payload aside and flips the edit
	// sub-machine to pending; the visible record is untouched.
	ParkForReview
)

// DecideEdit maps the requester's current role to an edit decision.
// Only content_admin edits to a publicly visible listing require review;
// active is a promotion of approved and stays just as visible.
func DecideEdit(role user.Role, current business.Status) EditDecision {
	if role != user.RoleContentAdmin {
		return ApplyNow
	}
	switch current {
	case business.StatusApproved, business.StatusActive:
		return ParkForReview
	default:
		return ApplyNow
	}
}

// CheckCreateAllowed enforces the content_admin cardinality rule.
// blocking is the user's existing approved-or-pending business, or nil.
// The returned conflict names the blocking business so the client can
// point the user at it.
func CheckCreateAllowed(role user.Role, blocking *business.Record) error {
	if role != user.RoleContentAdmin || blocking == nil {
		return nil
	}
	return fault.Conflictf(blocking.Slug,
		"account already holds business %q (%s); one active business allowed",
		blocking.Name, blocking.Status)
}
