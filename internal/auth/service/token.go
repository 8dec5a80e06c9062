package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/lanternsec/keygate/internal/auth/domain"
	"github.com/lanternsec/keygate/internal/auth/store"
	"github.com/lanternsec/keygate/pkg/cryptox"
	"github.com/lanternsec/keygate/pkg/jwtx"
	"github.com/lanternsec/keygate/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidToken       = errors.New("invalid_token")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrNotFound           = errors.New("not_found")
)

// TokenService owns the session lifecycle: it mints access/refresh pairs on
// login, rotates them on refresh, and clears the session slot on logout.
type TokenService struct {
	Codec      *jwtx.Codec
	Store      store.Store
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Login verifies the email/password pair and issues a fresh token pair.
//
// Unknown email and wrong password collapse into the same
// ErrInvalidCredentials so callers cannot probe which accounts exist.
func (s *TokenService) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("password verification failed", slog.String("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}

	roles, err := s.Store.Roles().RolesOfUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return s.issue(ctx, u, roles, now)
}

// Refresh exchanges a matched access/refresh pair for a new one.
//
// The access token may be expired: only its signature and HS256 header are
// checked, since its job here is to name the identity being refreshed. The
// refresh token must match the user's stored slot exactly and be unexpired.
// Every failure mode maps to the same ErrInvalidRefresh.
func (s *TokenService) Refresh(ctx context.Context, accessToken, refreshToken string) (*domain.TokenPair, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)

	claims, err := s.Codec.Decode(accessToken, jwtx.SignatureOnly())
	if err != nil {
		return nil, ErrInvalidToken
	}

	u, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	fp := cryptox.FingerprintToken(refreshToken)
	if u.RefreshTokenHash == nil ||
		subtle.ConstantTimeCompare([]byte(*u.RefreshTokenHash), []byte(fp)) != 1 {
		l.Info("refresh token mismatch", slog.String("user_id", u.ID))
		return nil, ErrInvalidRefresh
	}
	if u.RefreshExpiresAt == nil || !now.Before(*u.RefreshExpiresAt) {
		return nil, ErrInvalidRefresh
	}

	roles, err := s.Store.Roles().RolesOfUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	// Rotation: issue overwrites the single slot, invalidating the token
	// just presented.
	return s.issue(ctx, u, roles, now)
}

// Logout clears the user's refresh slot. Logging out with no live session is
// still success.
func (s *TokenService) Logout(ctx context.Context, userID string) error {
	err := s.Store.Users().ClearRefreshToken(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// issue signs a new access token and rotates the refresh slot in one step.
func (s *TokenService) issue(ctx context.Context, u domain.User, roles []string, now time.Time) (*domain.TokenPair, error) {
	claims := jwtx.NewAccessClaims(
		u.ID,
		u.Email,
		roles,
		s.AccessTTL,
		s.Codec.Issuer(),
		s.Codec.Audience(),
		now,
	)

	access, err := s.Codec.Encode(claims)
	if err != nil {
		return nil, err
	}

	refreshOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}
	refreshFP := cryptox.FingerprintToken(refreshOpaque)

	if err := s.Store.Users().UpdateRefreshToken(ctx, u.ID, refreshFP, now.Add(s.RefreshTTL)); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refreshOpaque,
		TokenType:    "Bearer",
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}
