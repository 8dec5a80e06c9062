package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	for _, size := range []int{TokenSize128, TokenSize256, 24} {
		token, err := GenerateToken(size)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		again, err := GenerateToken(size)
		require.NoError(t, err)
		require.NotEqual(t, token, again, "tokens must never repeat")
	}
}

func TestGenerateTokenInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestGenerateTokenNoDuplicates(t *testing.T) {
	const count = 200
	seen := make(map[string]struct{}, count)

	for range count {
		token, err := GenerateToken(TokenSize256)
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup, "duplicate token generated")
		seen[token] = struct{}{}
	}
}

func TestMustGenerateTokenPanics(t *testing.T) {
	require.Panics(t, func() {
		MustGenerateToken(0)
	})
}

func TestFingerprintToken(t *testing.T) {
	fpA := FingerprintToken("refresh-token-a")
	fpA2 := FingerprintToken("refresh-token-a")
	fpB := FingerprintToken("refresh-token-b")

	require.Equal(t, fpA, fpA2, "fingerprint must be deterministic")
	require.NotEqual(t, fpA, fpB)
	require.Len(t, fpA, 43, "SHA-256 base64url is 43 chars")
}
