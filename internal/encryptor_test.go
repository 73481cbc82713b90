package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptorRoundTrip(t *testing.T) {
	encryptor := NewEncryptor("0123456789abcdef")

	encrypted, err := encryptor.EncryptSecret("test-merchant-secret")
	require.NoError(t, err)
	assert.NotEqual(t, "test-merchant-secret", encrypted)

	decrypted, err := encryptor.DecryptSecret(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "test-merchant-secret", decrypted)
}

func TestEncryptorPlainTextPassthrough(t *testing.T) {
	encryptor := NewEncryptor("")

	secret, err := encryptor.DecryptSecret("plain-secret")
	require.NoError(t, err)
	assert.Equal(t, "plain-secret", secret)
}

func TestEncryptorRejectsBadKeyLength(t *testing.T) {
	encryptor := NewEncryptor("short")
	_, err := encryptor.DecryptSecret("whatever")
	require.Error(t, err)
}
