// internal/user/user.go
//
// Role lookup for the approval rules.
//
// Context
// -------
// The core never trusts a role baked into a previously issued credential,
// because roles can change after the credential was minted.  Every
// request that needs a role re-reads it from the user table through
// these helpers.
//
//	user (id PK, role, ...)
//
// Roles
// -----
//	normal        – regular owner, edits apply immediately.
//	content_admin – managed account, edits park for review, one active
//	                business at most.
//	main_admin    – unrestricted.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/vitrine/internal/fault"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleNormal       Role = "normal"
	RoleContentAdmin Role = "content_admin"
	RoleMainAdmin    Role = "main_admin"
)

// Store performs role lookups against the shared pool.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

// RoleOf returns the current persisted role for userID.  Unknown users
// are a NotFound, not a default role; the caller decides how to react.
func (s *Store) RoleOf(ctx context.Context, userID int64) (Role, error) {
	const q = `SELECT role FROM user WHERE id = ? LIMIT 1`
	var r string
	if err := s.db.GetContext(ctx, &r, q, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fault.NotFoundf("user %d not found", userID)
		}
		return "", fault.Internalf(err, "load role for user %d", userID)
	}
	switch Role(r) {
	case RoleNormal, RoleContentAdmin, RoleMainAdmin:
		return Role(r), nil
	default:
		return "", fault.Internalf(nil, "user %d has unknown role %q", userID, r)
	}
}
