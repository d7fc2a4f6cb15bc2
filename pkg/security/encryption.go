package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// KeySize is the required AES-256 key length in bytes.
const KeySize = 32

var (
	ErrInvalidKeySize = errors.New("invalid key size")
	ErrInvalidInput   = errors.New("plaintext must not be empty")
	ErrInvalidFormat  = errors.New("invalid ciphertext format")
	ErrAuthentication = errors.New("ciphertext authentication failed")
)

// FieldCipher encrypts and decrypts individual string fields. Tokens are
// self-describing: nonce, GCM tag and ciphertext as colon-separated hex.
type FieldCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(token string) (string, error)
	SafeEncrypt(plaintext string) string
	SafeDecrypt(token string) string
}

type fieldCipher struct {
	gcm cipher.AEAD
}

// NewFieldCipher creates an AES-GCM field cipher from a 32-byte key.
func NewFieldCipher(key []byte) (FieldCipher, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}

	return &fieldCipher{gcm: gcm}, nil
}

func (c *fieldCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrInvalidInput
	}

	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := c.gcm.Seal(nil, nonce, []byte(plaintext), nil)

	// Seal appends the tag to the ciphertext; split them back out so the
	// token carries nonce, tag and ciphertext as separate segments.
	tagStart := len(sealed) - c.gcm.Overhead()
	ciphertext, tag := sealed[:tagStart], sealed[tagStart:]

	return fmt.Sprintf("%s:%s:%s",
		hex.EncodeToString(nonce),
		hex.EncodeToString(tag),
		hex.EncodeToString(ciphertext),
	), nil
}

func (c *fieldCipher) Decrypt(token string) (string, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return "", ErrInvalidFormat
	}

	nonce, err := hex.DecodeString(parts[0])
	if err != nil || len(nonce) != c.gcm.NonceSize() {
		return "", ErrInvalidFormat
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil || len(tag) == 0 {
		return "", ErrInvalidFormat
	}
	ciphertext, err := hex.DecodeString(parts[2])
	if err != nil || len(ciphertext) == 0 {
		return "", ErrInvalidFormat
	}

	plaintext, err := c.gcm.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return "", ErrAuthentication
	}

	return string(plaintext), nil
}

// SafeEncrypt maps empty input to empty output and never returns an error.
func (c *fieldCipher) SafeEncrypt(plaintext string) string {
	if plaintext == "" {
		return ""
	}
	token, err := c.Encrypt(plaintext)
	if err != nil {
		return ""
	}
	return token
}

// SafeDecrypt swallows every failure and degrades to an empty string,
// availability over strictness for display fields.
func (c *fieldCipher) SafeDecrypt(token string) string {
	if token == "" {
		return ""
	}
	plaintext, err := c.Decrypt(token)
	if err != nil {
		return ""
	}
	return plaintext
}

// IsCipherToken reports whether v looks like an encrypted field token.
func IsCipherToken(v string) bool {
	parts := strings.Split(v, ":")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
		if _, err := hex.DecodeString(p); err != nil {
			return false
		}
	}
	return true
}

// HashValue returns a deterministic hex digest over the case-normalized,
// trimmed input. Used for duplicate detection only, never for passwords.
func HashValue(v string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(v))))
	return hex.EncodeToString(sum[:])
}
