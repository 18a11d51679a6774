// Package pkce generates the Proof Key for Code Exchange artifacts used to
// bind an authorization code to this client (RFC 7636).
package pkce

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"

	"github.com/google/uuid"

	apperrors "github.com/jrsteele09/go-fotoware-picker/internal/errors"
)

const (
	// verifierLength is within the 43-128 range RFC 7636 allows.
	verifierLength = 64

	// verifierCharset is the unreserved URL-safe alphabet from RFC 3986 §2.3.
	verifierCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"
)

// Pair is a one-shot code verifier and its S256 challenge.
type Pair struct {
	CodeVerifier  string
	CodeChallenge string
}

// GeneratePkcePair returns a fresh verifier drawn from the secure random
// source and its derived challenge. There is no fallback when the random
// source fails: a weak verifier would defeat the point of PKCE.
func GeneratePkcePair() (Pair, error) {
	buf := make([]byte, verifierLength)
	if _, err := rand.Read(buf); err != nil {
		return Pair{}, apperrors.Wrapf(apperrors.ErrSecureRandom, "%v", err)
	}

	verifier := make([]byte, verifierLength)
	for i, b := range buf {
		verifier[i] = verifierCharset[int(b)%len(verifierCharset)]
	}

	return Pair{
		CodeVerifier:  string(verifier),
		CodeChallenge: ChallengeS256(string(verifier)),
	}, nil
}

// ChallengeS256 computes base64url(SHA-256(verifier)) without padding.
func ChallengeS256(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// GenerateState returns an unguessable token binding an authorization
// callback to the attempt that initiated it.
func GenerateState() string {
	return uuid.NewString()
}
