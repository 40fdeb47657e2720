package vault

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeKey(t *testing.T) {
	t.Run(`корректный ключ 32 байта`, func(t *testing.T) {
		raw := make([]byte, 32)
		for i := range raw {
			raw[i] = byte(i)
		}
		key, err := DecodeKey(base64.StdEncoding.EncodeToString(raw))
		require.NoError(t, err)
		require.Equal(t, raw, key)
	})
	t.Run(`пустой ключ`, func(t *testing.T) {
		_, err := DecodeKey("")
		require.Error(t, err)
	})
	t.Run(`не base64`, func(t *testing.T) {
		_, err := DecodeKey("не-base64!!!")
		require.Error(t, err)
	})
	t.Run(`неверная длина`, func(t *testing.T) {
		_, err := DecodeKey(base64.StdEncoding.EncodeToString(make([]byte, 16)))
		require.Error(t, err)
	})
}

func TestEncryptDecryptToken(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i * 7)
	}

	t.Run(`шифрование и расшифровка`, func(t *testing.T) {
		enc, err := EncryptToken(key, "ya29.access-token-value")
		require.NoError(t, err)
		require.NotContains(t, string(enc), "access-token")

		plain, err := DecryptToken(key, enc)
		require.NoError(t, err)
		require.Equal(t, "ya29.access-token-value", plain)
	})

	t.Run(`разные nonce для одинаковых токенов`, func(t *testing.T) {
		enc1, err := EncryptToken(key, "token")
		require.NoError(t, err)
		enc2, err := EncryptToken(key, "token")
		require.NoError(t, err)
		require.NotEqual(t, enc1, enc2)
	})

	t.Run(`чужой ключ`, func(t *testing.T) {
		enc, err := EncryptToken(key, "token")
		require.NoError(t, err)

		other := make([]byte, 32)
		_, err = DecryptToken(other, enc)
		require.Error(t, err)
	})

	t.Run(`поврежденный шифротекст`, func(t *testing.T) {
		_, err := DecryptToken(key, []byte{1, 2, 3})
		require.Error(t, err)
	})
}
