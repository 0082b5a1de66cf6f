package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2HashService_HashAndVerify(t *testing.T) {
	s := NewArgon2HashService()

	hash, err := s.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := s.Verify("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Verify("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2HashService_SaltVariesPerHash(t *testing.T) {
	s := NewArgon2HashService()

	a, err := s.Hash("same password")
	require.NoError(t, err)
	b, err := s.Hash("same password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestArgon2HashService_MalformedHash(t *testing.T) {
	s := NewArgon2HashService()

	cases := []string{
		"",
		"plainstring",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$not-base64!$aGFzaA",
	}
	for _, h := range cases {
		_, err := s.Verify("anything", h)
		assert.Error(t, err, "hash %q", h)
	}
}
