package filestore

import (
	"bytes"
	"crypto/rand"

	"github.com/jrsteele09/nuur-client/internal/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

// Sealed layout: magic | salt | nonce | secretbox(record).
var sealMagic = []byte("NUURSEAL1")

const (
	saltLen  = 16
	nonceLen = 24
	keyLen   = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

func isSealed(data []byte) bool {
	return bytes.HasPrefix(data, sealMagic)
}

func deriveKey(passphrase string, salt []byte) *[keyLen]byte {
	var key [keyLen]byte
	copy(key[:], argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, keyLen))
	return &key
}

func seal(plain []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrapf(err, "filestore.seal salt")
	}
	var nonce [nonceLen]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, errors.Wrapf(err, "filestore.seal nonce")
	}

	out := make([]byte, 0, len(sealMagic)+saltLen+nonceLen+len(plain)+secretbox.Overhead)
	out = append(out, sealMagic...)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, plain, &nonce, deriveKey(passphrase, salt)), nil
}

func open(sealed []byte, passphrase string) ([]byte, error) {
	body := sealed[len(sealMagic):]
	if len(body) < saltLen+nonceLen+secretbox.Overhead {
		return nil, errors.Wrapf(errors.ErrSessionCorrupt, "filestore.open truncated record")
	}
	salt := body[:saltLen]
	var nonce [nonceLen]byte
	copy(nonce[:], body[saltLen:saltLen+nonceLen])

	plain, ok := secretbox.Open(nil, body[saltLen+nonceLen:], &nonce, deriveKey(passphrase, salt))
	if !ok {
		return nil, errors.Wrapf(errors.ErrSessionCorrupt, "filestore.open wrong passphrase or tampered record")
	}
	return plain, nil
}
