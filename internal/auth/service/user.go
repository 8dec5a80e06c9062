package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lanternsec/keygate/internal/auth/domain"
	"github.com/lanternsec/keygate/internal/auth/store"
	"github.com/lanternsec/keygate/pkg/cryptox"
	"github.com/lanternsec/keygate/pkg/idx"
	"github.com/lanternsec/keygate/pkg/slogx"
)

// ErrEmailTaken is returned when registering with an email that already has
// an account.
var ErrEmailTaken = errors.New("email_taken")

// DefaultRole is granted when a registration names no role.
const DefaultRole = "User"

// UserService handles account creation and profile reads.
type UserService struct {
	Store store.Store
}

// Register creates a new account and grants it the named role, creating the
// role on first use. The whole operation is atomic: a failed role grant
// leaves no orphan user behind.
func (s *UserService) Register(ctx context.Context, email, password, fullName, roleName string) (*domain.UserProfile, error) {
	l := slogx.FromContext(ctx)

	if roleName == "" {
		roleName = DefaultRole
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}

		role, err := ensureRole(ctx, tx, roleName)
		if err != nil {
			return err
		}

		return tx.Roles().AssignRole(ctx, u.ID, role.ID)
	})
	if err != nil {
		return nil, err
	}

	l.Info("user registered",
		slog.String("user_id", u.ID),
		slog.String("role", roleName),
	)

	return &domain.UserProfile{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Roles:    []string{roleName},
	}, nil
}

// GetUser returns the profile projection for the given user id.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.UserProfile, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	roles, err := s.Store.Roles().RolesOfUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return &domain.UserProfile{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Roles:    roles,
	}, nil
}

// ensureRole fetches the named role, creating it if it does not exist yet.
func ensureRole(ctx context.Context, tx store.Tx, name string) (domain.Role, error) {
	role, err := tx.Roles().GetRoleByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Role{}, err
	}

	role = domain.Role{
		ID:   idx.New().String(),
		Name: name,
	}
	if err := tx.Roles().CreateRole(ctx, role); err != nil {
		// Lost a creation race: the role exists now, use it.
		if errors.Is(err, store.ErrAlreadyExists) {
			return tx.Roles().GetRoleByName(ctx, name)
		}
		return domain.Role{}, err
	}
	return role, nil
}
