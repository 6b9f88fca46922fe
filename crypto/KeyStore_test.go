// Copyright 2024-2025 UpwardRight
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package crypto

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyStoreGeneratesAndReloadsKeypair(t *testing.T) {
	dir := t.TempDir()

	ks, err := NewKeyStore(dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "public.key"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "private.key"))
	assert.NoError(t, err)

	ciphertext, err := ks.Encrypt("account-password")
	require.NoError(t, err)

	// a second store over the same directory must load, not regenerate
	reloaded, err := NewKeyStore(dir)
	require.NoError(t, err)
	assert.Equal(t, ks.PublicKey().N, reloaded.PublicKey().N)

	plaintext, err := reloaded.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "account-password", plaintext)
}

func TestEncryptProducesNonDeterministicCiphertext(t *testing.T) {
	ks, err := NewKeyStore(t.TempDir())
	require.NoError(t, err)

	first, err := ks.Encrypt("secret")
	require.NoError(t, err)
	second, err := ks.Encrypt("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "secret")
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	ks, err := NewKeyStore(t.TempDir())
	require.NoError(t, err)

	ciphertext, err := ks.Encrypt("secret")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	require.NoError(t, err)
	raw[len(raw)/2] ^= 0xff
	tampered := base64.StdEncoding.EncodeToString(raw)

	_, err = ks.Decrypt(tampered)
	assert.ErrorIs(t, err, ErrCiphertextTampered)

	_, err = ks.Decrypt("not base64 at all!!!")
	assert.ErrorIs(t, err, ErrCiphertextTampered)
}

func TestEncryptPlaintextTooLong(t *testing.T) {
	ks, err := NewKeyStore(t.TempDir())
	require.NoError(t, err)

	// 2048-bit key with PKCS1 v1.5 padding fits 245 bytes at most
	_, err = ks.Encrypt(strings.Repeat("a", 246))
	assert.ErrorIs(t, err, ErrPlaintextTooLong)

	_, err = ks.Encrypt(strings.Repeat("a", 245))
	assert.NoError(t, err)
}

func TestRandomDigitsLengthAndPadding(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := RandomDigits(6)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}
