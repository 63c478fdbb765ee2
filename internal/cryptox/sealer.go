// Package cryptox implements the envelope-encryption layer of the vault:
// each sensitive field is sealed independently with AES-GCM under subkeys
// derived from a single persisted master secret, and identity values get
// truncated one-way digests for correlation without exposure.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const nonceSize = 12

// Sealer seals and opens field envelopes. Both directions are total: instead
// of returning an error, a failed operation hands back its input unchanged
// together with degraded=true. Callers must branch on the flag and surface
// degraded output as a data-integrity warning — never trust it as the other
// representation.
type Sealer interface {
	// SealField encrypts a field value into a transport-safe string.
	SealField(plaintext string) (value string, degraded bool)
	// OpenField is the exact inverse of SealField.
	OpenField(envelope string) (value string, degraded bool)
	// SealBytes encrypts an opaque blob (the transcript) under a separate
	// subkey.
	SealBytes(plaintext []byte) (value string, degraded bool)
	// OpenBytes is the exact inverse of SealBytes.
	OpenBytes(envelope string) (value []byte, degraded bool)
}

// Box is the AES-GCM Sealer. Two AEAD subkeys are derived from the master
// secret via HKDF-SHA256, one for identity fields and one for transcript
// blobs, so a compromise of one envelope class does not hand over the other.
type Box struct {
	fields      cipher.AEAD
	transcripts cipher.AEAD
}

// NewBox derives the subkeys from master and returns a ready Box. The master
// secret must be KeySize bytes, typically from LoadOrCreateKey.
func NewBox(master []byte) (*Box, error) {
	fields, err := newAEAD(master, "talentscout/identity-fields")
	if err != nil {
		return nil, err
	}
	transcripts, err := newAEAD(master, "talentscout/transcripts")
	if err != nil {
		return nil, err
	}
	return &Box{fields: fields, transcripts: transcripts}, nil
}

func newAEAD(master []byte, info string) (cipher.AEAD, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive %s: %w", info, err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func seal(aead cipher.AEAD, plaintext []byte) (string, bool) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return string(plaintext), true
	}
	out := aead.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(out), false
}

func open(aead cipher.AEAD, envelope string) ([]byte, bool) {
	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil || len(raw) < nonceSize {
		return []byte(envelope), true
	}
	plaintext, err := aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return []byte(envelope), true
	}
	return plaintext, false
}

func (b *Box) SealField(plaintext string) (string, bool) {
	if plaintext == "" {
		return "", false
	}
	return seal(b.fields, []byte(plaintext))
}

func (b *Box) OpenField(envelope string) (string, bool) {
	if envelope == "" {
		return "", false
	}
	value, degraded := open(b.fields, envelope)
	return string(value), degraded
}

func (b *Box) SealBytes(plaintext []byte) (string, bool) {
	if len(plaintext) == 0 {
		return "", false
	}
	return seal(b.transcripts, plaintext)
}

func (b *Box) OpenBytes(envelope string) ([]byte, bool) {
	if envelope == "" {
		return nil, false
	}
	return open(b.transcripts, envelope)
}

// Passthrough is the Sealer used when encryption is disabled by
// configuration: values pass through unchanged and records built with it are
// flagged non-compliant in reports.
type Passthrough struct{}

func (Passthrough) SealField(plaintext string) (string, bool) { return plaintext, false }
func (Passthrough) OpenField(envelope string) (string, bool)  { return envelope, false }
func (Passthrough) SealBytes(plaintext []byte) (string, bool) { return string(plaintext), false }
func (Passthrough) OpenBytes(envelope string) ([]byte, bool)  { return []byte(envelope), false }
