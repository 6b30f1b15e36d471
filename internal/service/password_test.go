package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func restorePassword() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
}

func TestHashPassword(t *testing.T) {
	t.Cleanup(restorePassword)

	hash, err := HashPassword("secret")
	require.NoError(t, err)
	require.NotEqual(t, "secret", hash)
	require.NoError(t, ComparePassword(hash, "secret"))
	require.Error(t, ComparePassword(hash, "Secret"))
	require.Error(t, ComparePassword(hash, ""))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, bcrypt.DefaultCost, cost)

	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) { return nil, errors.New("gen") }
	_, err = HashPassword("secret")
	require.Error(t, err)
}

func TestHashPasswordIsSalted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
	require.NoError(t, ComparePassword(a, "same"))
	require.NoError(t, ComparePassword(b, "same"))
}

func TestHashPasswordRoundTrip(t *testing.T) {
	for _, pw := range []string{"a", "correct horse battery staple", "pässwörd", "12345678"} {
		hash, err := HashPassword(pw)
		require.NoError(t, err)
		require.NoError(t, ComparePassword(hash, pw), pw)
		require.Error(t, ComparePassword(hash, pw+"x"), pw)
	}
}

func TestHashPasswordByteLimit(t *testing.T) {
	// 72 ASCII bytes is the largest accepted input
	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes))
	require.NoError(t, err)

	// 60 characters, 120 bytes in UTF-8
	long := strings.Repeat("пароль", 10)
	require.Equal(t, 120, len(long))
	_, err = HashPassword(long)
	require.ErrorIs(t, err, ErrPasswordTooLong)
}
