package cryptox

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	secret := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(secret, salt)
	key2 := DeriveKey(secret, salt)

	require.True(t, bytes.Equal(key1, key2), "same inputs must derive the same key")
	assert.Len(t, key1, KeySize)

	expectedHex := "34f7a1c64df63ab1ad5b5ee06e64db5713b35f81839823304db63e8e5e6a6a39"
	assert.Equal(t, expectedHex, hex.EncodeToString(key1))
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	secret := []byte("secret-password")

	key1 := DeriveKey(secret, []byte("salt-1"))
	key2 := DeriveKey(secret, []byte("salt-2"))

	assert.False(t, bytes.Equal(key1, key2))
}

func TestNewSalt(t *testing.T) {
	s1, s2 := NewSalt(), NewSalt()
	assert.Len(t, s1, SaltSize)
	assert.NotEqual(t, s1, s2)
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey([]byte("device"), NewSalt())
	plaintext := []byte(`eyJhbGciOiJIUzI1NiJ9.payload.sig`)

	sealed, err := Seal(key, plaintext, []byte("user_token"))
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "payload")

	again, err := Seal(key, plaintext, []byte("user_token"))
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce is random per call")

	got, err := Open(key, sealed, []byte("user_token"))
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestOpen_DetectsTampering(t *testing.T) {
	key := DeriveKey([]byte("device"), []byte("salt"))
	sealed, err := Seal(key, []byte("hello"), nil)
	require.NoError(t, err)

	flipped := bytes.Clone(sealed)
	flipped[len(flipped)-1] ^= 0xff
	_, err = Open(key, flipped, nil)
	require.Error(t, err)

	_, err = Open(key, sealed, []byte("other-key-name"))
	require.Error(t, err)

	_, err = Open(DeriveKey([]byte("other"), []byte("salt")), sealed, nil)
	require.Error(t, err)
}

func TestOpen_TooShort(t *testing.T) {
	key := DeriveKey([]byte("device"), []byte("salt"))
	_, err := Open(key, []byte{1, 2, 3}, nil)
	require.ErrorIs(t, err, ErrCiphertextTooShort)
}

func TestSeal_BadKeyLength(t *testing.T) {
	_, err := Seal([]byte("short"), []byte("x"), nil)
	require.Error(t, err)

	_, err = Open([]byte("short"), make([]byte, 64), nil)
	require.Error(t, err)
}
