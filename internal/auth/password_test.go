package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/qanda/internal/auth"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	hasher := newHasher(t)
	for _, pw := range []string{"pw", "correct horse battery staple", "pässwörd", ""} {
		encoded, err := hasher.Hash([]byte(pw))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=8192,t=1,p=1$"))
		assert.True(t, hasher.Verify(encoded, []byte(pw)), pw)
		assert.False(t, hasher.Verify(encoded, []byte(pw+"x")), pw)
	}
}

func TestHashUsesFreshSalt(t *testing.T) {
	hasher := newHasher(t)
	first, err := hasher.Hash([]byte("pw"))
	require.NoError(t, err)
	second, err := hasher.Hash([]byte("pw"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify(first, []byte("pw")))
	assert.True(t, hasher.Verify(second, []byte("pw")))
}

func TestVerifyUsesStoredParameters(t *testing.T) {
	old := newHasher(t)
	encoded, err := old.Hash([]byte("pw"))
	require.NoError(t, err)

	stronger, err := auth.NewHasher(auth.HashParams{Memory: 16 * 1024, Time: 2, Threads: 1, SaltLength: 16, KeyLength: 32})
	require.NoError(t, err)
	assert.True(t, stronger.Verify(encoded, []byte("pw")))
}

func TestVerifyFailsClosedOnMalformedHash(t *testing.T) {
	hasher := newHasher(t)
	encoded, err := hasher.Hash([]byte("pw"))
	require.NoError(t, err)
	parts := strings.Split(encoded, "$")

	malformed := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=8192,t=1,p=1$" + parts[4] + "$" + parts[5],
		"$argon2id$v=16$m=8192,t=1,p=1$" + parts[4] + "$" + parts[5],
		"$argon2id$v=19$m=8192,t=1$" + parts[4] + "$" + parts[5],
		"$argon2id$v=19$m=1,t=1,p=1$" + parts[4] + "$" + parts[5],
		"$argon2id$v=19$m=8192,t=0,p=1$" + parts[4] + "$" + parts[5],
		"$argon2id$v=19$m=8192,t=1,p=1,x=2$" + parts[4] + "$" + parts[5],
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$" + parts[5],
		"$argon2id$v=19$m=8192,t=1,p=1$" + parts[4] + "$",
		"$argon2id$v=19$m=8192,t=1,p=1$c2hvcnQ$" + parts[5],
		encoded + "$extra",
	}
	for _, m := range malformed {
		assert.False(t, hasher.Verify(m, []byte("pw")), m)
	}
}

func TestNewHasherRejectsWeakParams(t *testing.T) {
	weak := []auth.HashParams{
		{Memory: 1024, Time: 1, Threads: 1, SaltLength: 16, KeyLength: 32},
		{Memory: 8192, Time: 0, Threads: 1, SaltLength: 16, KeyLength: 32},
		{Memory: 8192, Time: 1, Threads: 0, SaltLength: 16, KeyLength: 32},
		{Memory: 8192, Time: 1, Threads: 1, SaltLength: 8, KeyLength: 32},
		{Memory: 8192, Time: 1, Threads: 1, SaltLength: 16, KeyLength: 8},
	}
	for _, params := range weak {
		_, err := auth.NewHasher(params)
		assert.Error(t, err)
	}
	_, err := auth.NewHasher(auth.DefaultHashParams)
	assert.NoError(t, err)
}
