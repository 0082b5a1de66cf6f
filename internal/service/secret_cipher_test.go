package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAESKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestAESSecretCipher_RoundTrip(t *testing.T) {
	c, err := NewAESSecretCipher(testAESKey)
	require.NoError(t, err)

	secret := "sEdTM1uX8pu2do5XvTnutH6HsouMaM2"
	enc, err := c.Encrypt(secret)
	require.NoError(t, err)
	assert.NotContains(t, enc, secret)

	dec, err := c.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, secret, dec)
}

func TestAESSecretCipher_FreshNoncePerCall(t *testing.T) {
	c, err := NewAESSecretCipher(testAESKey)
	require.NoError(t, err)

	a, err := c.Encrypt("same input")
	require.NoError(t, err)
	b, err := c.Encrypt("same input")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestAESSecretCipher_InvalidKey(t *testing.T) {
	_, err := NewAESSecretCipher("deadbeef")
	assert.Error(t, err)

	_, err = NewAESSecretCipher("not hex at all")
	assert.Error(t, err)
}

func TestAESSecretCipher_TamperedCiphertext(t *testing.T) {
	c, err := NewAESSecretCipher(testAESKey)
	require.NoError(t, err)

	enc, err := c.Encrypt("payload")
	require.NoError(t, err)

	flipped := flipLastHexDigit(enc)
	_, err = c.Decrypt(flipped)
	assert.Error(t, err)
}

func TestAESSecretCipher_TruncatedCiphertext(t *testing.T) {
	c, err := NewAESSecretCipher(testAESKey)
	require.NoError(t, err)

	_, err = c.Decrypt("abcd")
	assert.Error(t, err)
}

func flipLastHexDigit(s string) string {
	last := s[len(s)-1:]
	replacement := "0"
	if last == "0" {
		replacement = "1"
	}
	return strings.TrimSuffix(s, last) + replacement
}
