// Package memory provides a mutex-guarded in-process Store. It backs unit
// tests and the dev profile; it is not meant for production use.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lanternsec/keygate/internal/auth/domain"
	"github.com/lanternsec/keygate/internal/auth/store"
)

type Store struct {
	mu sync.RWMutex

	users map[string]domain.User // by id
	roles map[string]domain.Role // by id

	// userRoles maps user id -> set of role ids.
	userRoles map[string]map[string]struct{}
}

func NewStore() *Store {
	return &Store{
		users:     make(map[string]domain.User),
		roles:     make(map[string]domain.Role),
		userRoles: make(map[string]map[string]struct{}),
	}
}

func (s *Store) Users() store.Users { return &usersRepo{s: s} }
func (s *Store) Roles() store.Roles { return &rolesRepo{s: s} }

func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) Ping(ctx context.Context) error { return nil }

// Tx returns a pass-through Tx. Mutations apply immediately; there is no
// rollback, which is fine for the tests and dev profile this driver serves.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	return &memTx{Store: s}, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, _ := s.Tx(ctx)
	return fn(tx)
}

type memTx struct {
	*Store
}

func (t *memTx) Commit() error   { return nil }
func (t *memTx) Rollback() error { return nil }

type usersRepo struct {
	s *Store
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; ok {
		return store.ErrAlreadyExists
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return store.ErrAlreadyExists
		}
	}

	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	r.s.users[u.ID] = u
	return nil
}

func (r *usersRepo) UpdateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return store.ErrNotFound
	}

	exp := expiresAt.UTC()
	u.RefreshTokenHash = &tokenHash
	u.RefreshExpiresAt = &exp
	u.UpdatedAt = time.Now().UTC()
	r.s.users[userID] = u
	return nil
}

func (r *usersRepo) ClearRefreshToken(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return store.ErrNotFound
	}

	u.RefreshTokenHash = nil
	u.RefreshExpiresAt = nil
	u.UpdatedAt = time.Now().UTC()
	r.s.users[userID] = u
	return nil
}

func (r *usersRepo) ClearExpiredRefreshTokens(ctx context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now().UTC()
	for id, u := range r.s.users {
		if u.RefreshExpiresAt != nil && !now.Before(*u.RefreshExpiresAt) {
			u.RefreshTokenHash = nil
			u.RefreshExpiresAt = nil
			r.s.users[id] = u
		}
	}
	return nil
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return store.ErrNotFound
	}

	u.PasswordHash = newHash
	u.UpdatedAt = time.Now().UTC()
	r.s.users[userID] = u
	return nil
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return store.ErrNotFound
	}
	delete(r.s.users, userID)
	delete(r.s.userRoles, userID)
	return nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.users) == 0, nil
}

type rolesRepo struct {
	s *Store
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id string) (domain.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	role, ok := r.s.roles[id]
	if !ok {
		return domain.Role{}, store.ErrNotFound
	}
	return role, nil
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, role := range r.s.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return domain.Role{}, store.ErrNotFound
}

func (r *rolesRepo) ListAll(ctx context.Context) ([]domain.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	roles := make([]domain.Role, 0, len(r.s.roles))
	for _, role := range r.s.roles {
		roles = append(roles, role)
	}
	return roles, nil
}

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.roles[role.ID]; ok {
		return store.ErrAlreadyExists
	}
	for _, existing := range r.s.roles {
		if existing.Name == role.Name {
			return store.ErrAlreadyExists
		}
	}

	now := time.Now().UTC()
	if role.CreatedAt.IsZero() {
		role.CreatedAt = now
	}
	if role.UpdatedAt.IsZero() {
		role.UpdatedAt = now
	}

	r.s.roles[role.ID] = role
	return nil
}

func (r *rolesRepo) AssignRole(ctx context.Context, userID, roleID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return store.ErrNotFound
	}
	if _, ok := r.s.roles[roleID]; !ok {
		return store.ErrNotFound
	}

	set, ok := r.s.userRoles[userID]
	if !ok {
		set = make(map[string]struct{})
		r.s.userRoles[userID] = set
	}
	set[roleID] = struct{}{}
	return nil
}

func (r *rolesRepo) RolesOfUser(ctx context.Context, userID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var names []string
	for roleID := range r.s.userRoles[userID] {
		if role, ok := r.s.roles[roleID]; ok {
			names = append(names, role.Name)
		}
	}
	return names, nil
}

func (r *rolesRepo) DeleteRole(ctx context.Context, roleID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.roles[roleID]; !ok {
		return store.ErrNotFound
	}
	delete(r.s.roles, roleID)
	for _, set := range r.s.userRoles {
		delete(set, roleID)
	}
	return nil
}

func (r *rolesRepo) IsEmpty(ctx context.Context) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.roles) == 0, nil
}
