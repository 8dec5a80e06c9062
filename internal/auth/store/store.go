package store

import (
	"context"
	"errors"
	"time"

	"github.com/lanternsec/keygate/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, memory)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Roles() Roles

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g. register's
	// ensure-role-and-assign). The caller MUST call Commit() or Rollback()
	// on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error, the
	// transaction is rolled back; otherwise it is committed. This is the
	// recommended way to handle transactions.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backing store is still reachable.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateRefreshToken writes the single refresh slot (fingerprint and
	// expiry), overwriting whatever was there.
	UpdateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// ClearRefreshToken nulls both refresh fields. Idempotent.
	ClearRefreshToken(ctx context.Context, userID string) error

	// ClearExpiredRefreshTokens nulls refresh slots whose expiry has
	// passed. Housekeeping only.
	ClearExpiredRefreshTokens(ctx context.Context) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// DeleteUser cascades to user_roles (per schema).
	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Roles interface {
	// GetRoleByID fetches a role by its ID.
	GetRoleByID(ctx context.Context, id string) (domain.Role, error)

	// GetRoleByName fetches a role by its case-sensitive name.
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListAll returns all roles in the system.
	ListAll(ctx context.Context) ([]domain.Role, error)

	// CreateRole inserts a new role (id is ULID). Returns ErrAlreadyExists
	// when the name is taken.
	CreateRole(ctx context.Context, r domain.Role) error

	// AssignRole links a user to a role. Assigning an already-held role is
	// not an error.
	AssignRole(ctx context.Context, userID, roleID string) error

	// RolesOfUser returns the names of all roles held by the user.
	RolesOfUser(ctx context.Context, userID string) ([]string, error)

	// DeleteRole removes a role and its assignments.
	DeleteRole(ctx context.Context, roleID string) error

	// IsEmpty returns true if there are no roles.
	IsEmpty(ctx context.Context) (bool, error)
}
