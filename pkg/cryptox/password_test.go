package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	SetPepperPath(t.TempDir() + "/pepper")

	hash, err := HashPassword("Strong1!@")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$v=19$")

	require.NoError(t, VerifyPassword("Strong1!@", hash))
	require.Error(t, VerifyPassword("wrong-password", hash))
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	SetPepperPath(t.TempDir() + "/pepper")

	for _, hash := range []string{
		"",
		"$argon2id$v=19$m=19456,t=2,p=1$salt", // too few parts
		"$bcrypt$v=19$m=1,t=1,p=1$abc$def",    // wrong algorithm
		"$argon2id$v=18$m=1,t=1,p=1$abc$def",  // wrong version
	} {
		require.Error(t, VerifyPassword("anything", hash), "hash %q", hash)
	}
}

func TestGenerateTokenUniqueness(t *testing.T) {
	a, err := GenerateToken(TokenSize256)
	require.NoError(t, err)
	b, err := GenerateToken(TokenSize256)
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.Len(t, a, 43)

	_, err = GenerateToken(0)
	require.Error(t, err)
}

func TestPepperGeneratedOnceAndReloaded(t *testing.T) {
	path := t.TempDir() + "/pepper"
	SetPepperPath(path)
	pepper = ""

	first := GetPepper()
	require.NotEmpty(t, first)
	require.Len(t, first, 43) // 32 random bytes, base64url without padding

	// A later boot reads the same pepper back from the file.
	pepper = ""
	require.Equal(t, first, GetPepper())
}
