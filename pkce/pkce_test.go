package pkce_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-fotoware-picker/pkce"
)

const verifierCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

func TestGeneratePkcePair(t *testing.T) {
	t.Run("verifier length and alphabet", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			pair, err := pkce.GeneratePkcePair()
			require.NoError(t, err)
			require.Len(t, pair.CodeVerifier, 64)
			for _, c := range pair.CodeVerifier {
				require.True(t, strings.ContainsRune(verifierCharset, c),
					"verifier contains %q outside the unreserved alphabet", c)
			}
		}
	})

	t.Run("challenge matches recomputation", func(t *testing.T) {
		pair, err := pkce.GeneratePkcePair()
		require.NoError(t, err)
		require.Equal(t, pkce.ChallengeS256(pair.CodeVerifier), pair.CodeChallenge)
	})

	t.Run("pairs are unique", func(t *testing.T) {
		a, err := pkce.GeneratePkcePair()
		require.NoError(t, err)
		b, err := pkce.GeneratePkcePair()
		require.NoError(t, err)
		require.NotEqual(t, a.CodeVerifier, b.CodeVerifier)
	})
}

func TestChallengeS256(t *testing.T) {
	// RFC 7636 appendix B test vector.
	verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	want := "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
	require.Equal(t, want, pkce.ChallengeS256(verifier))

	// base64url without padding or reserved characters
	require.NotContains(t, pkce.ChallengeS256(verifier), "=")
	require.NotContains(t, pkce.ChallengeS256(verifier), "+")
	require.NotContains(t, pkce.ChallengeS256(verifier), "/")
}

func TestGenerateState(t *testing.T) {
	a := pkce.GenerateState()
	b := pkce.GenerateState()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
	require.GreaterOrEqual(t, len(a), 8, "state must be long enough for CSRF protection")
}
