package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"io"

	"github.com/pkg/errors"
)

// DecodeKey разбирает base64 ключ из настроек, ожидается AES-256 (32 байта).
func DecodeKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, errors.New("не задан ключ шифрования токенов (CALENDAR_TOKEN_SECRET)")
	}
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, errors.Wrap(err, "ключ шифрования токенов не в base64")
	}
	if len(key) != 32 {
		return nil, errors.New("ключ шифрования токенов должен быть длиной 32 байта")
	}
	return key, nil
}

// EncryptToken шифрует токен AES-256-GCM, nonce пишется в начало результата.
func EncryptToken(key []byte, plaintext string) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, []byte(plaintext), nil), nil
}

func DecryptToken(key []byte, ciphertext []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return "", errors.New("поврежденный шифротекст токена")
	}
	nonce, sealed := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", errors.Wrap(err, "не удалось расшифровать токен")
	}
	return string(plaintext), nil
}
