package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lanternsec/keygate/internal/auth/service"
)

func TestRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates the role on first use", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		profile, err := env.users.Register(ctx, "alice@example.com", "correct horse battery", "Alice", "Admin")
		require.NoError(t, err)
		require.NotEmpty(t, profile.ID)
		require.Equal(t, "alice@example.com", profile.Email)
		require.Equal(t, "Alice", profile.FullName)
		require.Equal(t, []string{"Admin"}, profile.Roles)

		role, err := env.store.Roles().GetRoleByName(ctx, "Admin")
		require.NoError(t, err)
		require.Equal(t, "Admin", role.Name)
	})

	t.Run("reuses an existing role", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		_, err := env.users.Register(ctx, "alice@example.com", "correct horse battery", "Alice", "Admin")
		require.NoError(t, err)
		_, err = env.users.Register(ctx, "bob@example.com", "hunter2 hunter2", "Bob", "Admin")
		require.NoError(t, err)

		roles, err := env.store.Roles().ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, roles, 1)
	})

	t.Run("falls back to the default role", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		profile, err := env.users.Register(ctx, "alice@example.com", "correct horse battery", "Alice", "")
		require.NoError(t, err)
		require.Equal(t, []string{service.DefaultRole}, profile.Roles)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		_, err := env.users.Register(ctx, "alice@example.com", "correct horse battery", "Alice", "")
		require.NoError(t, err)

		_, err = env.users.Register(ctx, "alice@example.com", "another password!", "Imposter", "")
		require.ErrorIs(t, err, service.ErrEmailTaken)
	})

	t.Run("never stores the plaintext password", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		profile, err := env.users.Register(ctx, "alice@example.com", "correct horse battery", "Alice", "")
		require.NoError(t, err)

		u, err := env.store.Users().GetUserByID(ctx, profile.ID)
		require.NoError(t, err)
		require.NotEqual(t, "correct horse battery", u.PasswordHash)
		require.Contains(t, u.PasswordHash, "$argon2id$")
	})
}

func TestGetUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("returns the profile with roles", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		profile := env.register(t, "alice@example.com", "correct horse battery", "Moderator")

		got, err := env.users.GetUser(ctx, profile.ID)
		require.NoError(t, err)
		require.Equal(t, profile.ID, got.ID)
		require.Equal(t, "alice@example.com", got.Email)
		require.Equal(t, []string{"Moderator"}, got.Roles)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		_, err := env.users.GetUser(ctx, "no-such-user")
		require.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestHousekeeping(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	env := newTestEnv(t)
	stale := env.register(t, "stale@example.com", "correct horse battery", "")
	live := env.register(t, "live@example.com", "correct horse battery", "")

	require.NoError(t, env.store.Users().UpdateRefreshToken(ctx, stale.ID, "stale-fp", time.Now().Add(-time.Hour)))
	require.NoError(t, env.store.Users().UpdateRefreshToken(ctx, live.ID, "live-fp", time.Now().Add(time.Hour)))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hk := service.NewHousekeepingService(env.store, logger, time.Hour)
	hk.Start() // sweeps once immediately
	hk.Stop()

	staleUser, err := env.store.Users().GetUserByID(ctx, stale.ID)
	require.NoError(t, err)
	require.Nil(t, staleUser.RefreshTokenHash)
	require.Nil(t, staleUser.RefreshExpiresAt)

	liveUser, err := env.store.Users().GetUserByID(ctx, live.ID)
	require.NoError(t, err)
	require.NotNil(t, liveUser.RefreshTokenHash)
}
