package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrNoPrivateKey = errors.New("no private key configured")

// RSAUnwrapper descifra las claves de conversación envueltas con la clave pública del usuario.
type RSAUnwrapper struct {
	key *rsa.PrivateKey
}

func NewRSAUnwrapper(key *rsa.PrivateKey) *RSAUnwrapper {
	return &RSAUnwrapper{key: key}
}

// LoadRSAUnwrapper lee una clave privada PEM (PKCS#1 o PKCS#8) desde disco.
func LoadRSAUnwrapper(path string) (*RSAUnwrapper, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	key, err := ParsePrivateKeyPEM(raw)
	if err != nil {
		return nil, err
	}
	return NewRSAUnwrapper(key), nil
}

func ParsePrivateKeyPEM(raw []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, errors.New("private key is not PEM encoded")
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is %T, want RSA", parsed)
	}
	return key, nil
}

// Configured indica si hay clave privada local. Sin ella no se descifran ubicaciones.
func (u *RSAUnwrapper) Configured() bool {
	return u != nil && u.key != nil
}

// Unwrap descifra una clave envuelta en base64 con RSA-OAEP (SHA-1).
func (u *RSAUnwrapper) Unwrap(wrapped string) ([]byte, error) {
	if !u.Configured() {
		return nil, ErrNoPrivateKey
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(wrapped))
	if err != nil {
		return nil, fmt.Errorf("decode wrapped key: %w", err)
	}
	key, err := rsa.DecryptOAEP(sha1.New(), rand.Reader, u.key, raw, nil)
	if err != nil {
		return nil, fmt.Errorf("unwrap key: %w", err)
	}
	return key, nil
}

// Wrap es la operación inversa; se usa al compartir claves y en tests.
func Wrap(pub *rsa.PublicKey, key []byte) (string, error) {
	raw, err := rsa.EncryptOAEP(sha1.New(), rand.Reader, pub, key, nil)
	if err != nil {
		return "", fmt.Errorf("wrap key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
