package jwtx

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrAudience    = errors.New("jwtx: audience mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")

	ErrWeakSecret = errors.New("jwtx: signing secret too short")
)

// MinSecretLen is the minimum HS256 secret length in bytes. HMAC-SHA-256
// keys below the hash output size weaken the MAC.
const MinSecretLen = 32

// DecodeOptions selects which claim checks Decode enforces. The signature is
// always verified regardless of these flags.
type DecodeOptions struct {
	// CheckLifetime enforces exp/nbf. The refresh flow turns this off on
	// purpose: an expired-but-correctly-signed token is the expected
	// credential there.
	CheckLifetime bool

	// CheckIssuer enforces the iss claim against the codec's issuer.
	CheckIssuer bool

	// CheckAudience enforces the aud claim against the codec's audience.
	CheckAudience bool
}

// FullVerification enables every claim check. This is what API middleware
// should use for inbound bearer tokens.
func FullVerification() DecodeOptions {
	return DecodeOptions{CheckLifetime: true, CheckIssuer: true, CheckAudience: true}
}

// SignatureOnly disables everything except the signature check. Used by the
// refresh flow to recover the subject from an expired access token.
func SignatureOnly() DecodeOptions {
	return DecodeOptions{}
}

// Codec encodes and decodes signed access tokens. HMAC-SHA-256 is the single
// supported algorithm; anything else on decode is rejected outright so a
// forged header can't downgrade verification.
//
// The codec is immutable after construction and safe for concurrent use.
type Codec struct {
	secret   []byte
	issuer   string
	audience string
}

// NewCodec builds a Codec from the process-wide signing configuration.
func NewCodec(secret []byte, issuer, audience string) (*Codec, error) {
	if len(secret) < MinSecretLen {
		return nil, ErrWeakSecret
	}

	return &Codec{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
	}, nil
}

// Issuer returns the configured issuer identifier.
func (c *Codec) Issuer() string { return c.issuer }

// Audience returns the configured audience identifier.
func (c *Codec) Audience() string { return c.audience }

// Encode signs the claims and returns the serialized token.
func (c *Codec) Encode(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode verifies the token signature and returns its claims. Claim checks
// beyond the signature are controlled by opts.
func (c *Codec) Decode(tokenStr string, opts DecodeOptions) (Claims, error) {
	// Reject foreign algorithms before handing the token to the parser, so
	// alg confusion surfaces as its own error rather than a signature failure.
	if err := checkAlg(tokenStr); err != nil {
		return Claims{}, err
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Lifetime is validated explicitly below, driven by opts.
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return Claims{}, ErrMalformed
		}
		return Claims{}, ErrInvalidSig
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidSig
	}

	if opts.CheckLifetime {
		if err := claims.ValidateExpiry(); err != nil {
			return Claims{}, err
		}
	}
	if opts.CheckIssuer {
		if err := claims.ValidateIssuer(c.issuer); err != nil {
			return Claims{}, err
		}
	}
	if opts.CheckAudience {
		if err := claims.ValidateAudience(c.audience); err != nil {
			return Claims{}, err
		}
	}

	return *claims, nil
}

// checkAlg peeks at the JOSE header and confirms the token claims HS256.
func checkAlg(tokenStr string) error {
	head, _, ok := strings.Cut(tokenStr, ".")
	if !ok {
		return ErrMalformed
	}

	raw, err := base64.RawURLEncoding.DecodeString(head)
	if err != nil {
		return ErrMalformed
	}

	var header struct {
		Alg string `json:"alg"`
	}
	if err := json.Unmarshal(raw, &header); err != nil {
		return ErrMalformed
	}

	if header.Alg != jwt.SigningMethodHS256.Alg() {
		return ErrAlgMismatch
	}

	return nil
}
