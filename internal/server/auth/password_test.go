package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptVerifier_HashAndVerify(t *testing.T) {
	v := NewBcryptVerifier(bcrypt.MinCost)

	hash, err := v.Hash("pw1")
	require.NoError(t, err)
	require.NotEqual(t, "pw1", hash)

	require.True(t, v.Verify(hash, "pw1"))
	require.False(t, v.Verify(hash, "pw2"))
	require.False(t, v.Verify(hash, ""))
}

func TestBcryptVerifier_DefaultCost(t *testing.T) {
	v := NewBcryptVerifier(0)
	require.Equal(t, bcrypt.DefaultCost, v.cost)
}

func TestBcryptVerifier_VerifyGarbageHash(t *testing.T) {
	v := NewBcryptVerifier(bcrypt.MinCost)
	require.False(t, v.Verify("not-a-hash", "pw1"))
}
