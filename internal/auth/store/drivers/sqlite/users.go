package sqlite

import (
	"context"
	"time"

	"github.com/lanternsec/keygate/internal/auth/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, full_name, password_hash, refresh_token_hash, refresh_expires_at, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, full_name, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.FullName, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET refresh_token_hash = ?, refresh_expires_at = ?, updated_at = ?
		 WHERE id = ?`,
		tokenHash, expiresAt.UTC(), time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) ClearRefreshToken(ctx context.Context, userID string) error {
	// Idempotent: clearing an empty slot is still success as long as the
	// user exists.
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET refresh_token_hash = NULL, refresh_expires_at = NULL, updated_at = ?
		 WHERE id = ?`,
		time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) ClearExpiredRefreshTokens(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET refresh_token_hash = NULL, refresh_expires_at = NULL
		 WHERE refresh_expires_at IS NOT NULL AND refresh_expires_at <= ?`,
		time.Now().UTC())
	return err
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}
