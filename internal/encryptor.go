package internal

import (
	"fmt"

	"gitee.com/golang-module/dongle"
)

// Encryptor recovers the merchant secret from its encrypted-at-rest form in
// the configuration. The secret is AES-CBC encrypted and base64 encoded; an
// empty encryption key means the configured secret is stored in plain text.
type Encryptor struct {
	key string
}

func NewEncryptor(key string) *Encryptor {
	return &Encryptor{key: key}
}

func (e *Encryptor) cipher() (*dongle.Cipher, error) {
	switch len(e.key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("encryption key must be 16, 24 or 32 bytes, got %d", len(e.key))
	}
	cipher := dongle.NewCipher()
	cipher.SetMode(dongle.CBC)
	cipher.SetPadding(dongle.PKCS7)
	cipher.SetKey(e.key)
	cipher.SetIV(e.key[:16])
	return cipher, nil
}

// DecryptSecret returns the plain-text merchant secret.
func (e *Encryptor) DecryptSecret(encrypted string) (string, error) {
	if e.key == "" {
		return encrypted, nil
	}
	cipher, err := e.cipher()
	if err != nil {
		return "", fmt.Errorf("decrypt secret: %v", err)
	}
	decrypted := dongle.Decrypt.FromBase64String(encrypted).ByAes(cipher)
	if decrypted.Error != nil {
		return "", fmt.Errorf("decrypt secret: %v", decrypted.Error)
	}
	return decrypted.ToString(), nil
}

// EncryptSecret is the inverse operation, used when provisioning configuration.
func (e *Encryptor) EncryptSecret(plain string) (string, error) {
	if e.key == "" {
		return plain, nil
	}
	cipher, err := e.cipher()
	if err != nil {
		return "", fmt.Errorf("encrypt secret: %v", err)
	}
	encrypted := dongle.Encrypt.FromString(plain).ByAes(cipher)
	if encrypted.Error != nil {
		return "", fmt.Errorf("encrypt secret: %v", encrypted.Error)
	}
	return encrypted.ToBase64String(), nil
}
