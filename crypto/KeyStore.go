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
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	publicKeyFile  = "public.key"
	privateKeyFile = "private.key"
	keyBits        = 2048
)

var (
	ErrKeyStoreNotInitialized = errors.New("credential keypair is not initialized")
	ErrPlaintextTooLong       = errors.New("plaintext exceeds RSA block limit")
	ErrCiphertextTampered     = errors.New("ciphertext integrity check failed")
)

// KeyStore owns the credential-encryption keypair. The private half never
// leaves this package; callers only get the public half and Encrypt/Decrypt.
type KeyStore interface {
	PublicKey() *rsa.PublicKey
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

type keyStoreImpl struct {
	publicKey  *rsa.PublicKey
	privateKey *rsa.PrivateKey
}

// NewKeyStore loads the keypair from directory, generating and durably
// writing a fresh 2048-bit pair on first start. Key files are DER encoded:
// PKIX for the public half, PKCS8 for the private half.
func NewKeyStore(directory string) (KeyStore, error) {
	if err := os.MkdirAll(directory, 0700); err != nil {
		return nil, errors.Wrapf(err, "failed to create key directory %s", directory)
	}

	publicPath := filepath.Join(directory, publicKeyFile)
	privatePath := filepath.Join(directory, privateKeyFile)

	if !fileExists(publicPath) || !fileExists(privatePath) {
		return generateAndSaveKeys(publicPath, privatePath)
	}
	return loadKeys(publicPath, privatePath)
}

func generateAndSaveKeys(publicPath, privatePath string) (KeyStore, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate RSA keypair")
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode public key")
	}
	privateDER, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode private key")
	}

	// os.WriteFile closes the file handle on every path, including errors
	if err := os.WriteFile(publicPath, publicDER, 0600); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", publicPath)
	}
	if err := os.WriteFile(privatePath, privateDER, 0600); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", privatePath)
	}

	log.Infof("Generated new credential-encryption keypair in %s", filepath.Dir(publicPath))
	return &keyStoreImpl{publicKey: &privateKey.PublicKey, privateKey: privateKey}, nil
}

func loadKeys(publicPath, privatePath string) (KeyStore, error) {
	publicDER, err := os.ReadFile(publicPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", publicPath)
	}
	parsedPublic, err := x509.ParsePKIXPublicKey(publicDER)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse public key")
	}
	publicKey, ok := parsedPublic.(*rsa.PublicKey)
	if !ok {
		return nil, errors.Errorf("public key in %s is not an RSA key", publicPath)
	}

	privateDER, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", privatePath)
	}
	parsedPrivate, err := x509.ParsePKCS8PrivateKey(privateDER)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse private key")
	}
	privateKey, ok := parsedPrivate.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.Errorf("private key in %s is not an RSA key", privatePath)
	}

	return &keyStoreImpl{publicKey: publicKey, privateKey: privateKey}, nil
}

func (k *keyStoreImpl) PublicKey() *rsa.PublicKey {
	return k.publicKey
}

// Encrypt produces base64 PKCS1 v1.5 ciphertext. Credentials are encrypted
// before they appear in any outbound payload.
func (k *keyStoreImpl) Encrypt(plaintext string) (string, error) {
	if k.publicKey == nil {
		return "", ErrKeyStoreNotInitialized
	}
	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, k.publicKey, []byte(plaintext))
	if err != nil {
		if err == rsa.ErrMessageTooLong {
			return "", ErrPlaintextTooLong
		}
		return "", errors.Wrap(err, "RSA encryption failed")
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt fails closed: any malformed or tampered input maps to
// ErrCiphertextTampered without further detail.
func (k *keyStoreImpl) Decrypt(ciphertext string) (string, error) {
	if k.privateKey == nil {
		return "", ErrKeyStoreNotInitialized
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrCiphertextTampered
	}
	plaintext, err := rsa.DecryptPKCS1v15(rand.Reader, k.privateKey, raw)
	if err != nil {
		return "", ErrCiphertextTampered
	}
	return string(plaintext), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
