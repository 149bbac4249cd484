// Copyright (c) 2023 Paweł Rybak
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package filecrypt

import (
	"fmt"
	"os"

	"github.com/wedkarz02/filecrypt/internal/cipher"
	"github.com/wedkarz02/filecrypt/internal/envelope"
	"github.com/wedkarz02/filecrypt/internal/hmacsha512"
	"github.com/wedkarz02/filecrypt/internal/sha512core"
	"github.com/wedkarz02/filecrypt/internal/status"
	"github.com/wedkarz02/filecrypt/internal/stream"
)

// EngineKind selects which AES implementation the core uses. Both
// kinds are observationally identical; pick TTableEngine for
// throughput and ReferenceEngine for the smaller, standards-literal
// implementation.
type EngineKind int

const (
	// ReferenceEngine derives round keys on the fly from GF(2^8)
	// arithmetic instead of caching the expanded key schedule.
	ReferenceEngine EngineKind = EngineKind(cipher.KindReference)

	// TTableEngine pre-builds the encryption/decryption lookup tables
	// and the equivalent-inverse key schedule once at construction.
	TTableEngine EngineKind = EngineKind(cipher.KindTTable)
)

func (k EngineKind) toCipherKind() cipher.Kind {
	return cipher.Kind(k)
}

// Re-exported sentinel errors, usable with errors.Is against any
// return value from this package.
var (
	ErrInvalidArgument       = status.ErrInvalidArgument
	ErrShortEnvelope         = status.ErrShortEnvelope
	ErrAuthenticationFailure = status.ErrAuthenticationFailure
	ErrCancelledAfterAuth    = status.ErrCancelledAfterAuth
)

// EncryptCTRFile encrypts the contents of inPath under key using AES
// in CTR mode, writing the ciphertext to outPath. iv must be exactly
// 16 bytes and is never written to outPath or otherwise persisted:
// the caller is responsible for remembering it, since the same
// key/IV pair must never be reused across two different plaintexts.
func EncryptCTRFile(engine EngineKind, inPath, outPath string, key, iv []byte) error {
	return ctrFile(engine, inPath, outPath, key, iv)
}

// DecryptCTRFile decrypts a file previously produced by
// EncryptCTRFile. AES-CTR is its own inverse, so this is the same
// operation as EncryptCTRFile; it is exposed separately for call-site
// clarity.
func DecryptCTRFile(engine EngineKind, inPath, outPath string, key, iv []byte) error {
	return ctrFile(engine, inPath, outPath, key, iv)
}

func ctrFile(engine EngineKind, inPath, outPath string, key, iv []byte) error {
	e, err := cipher.New(engine.toCipherKind(), key)
	if err != nil {
		return fmt.Errorf("%w: %v", status.ErrInvalidArgument, err)
	}
	defer e.Destroy()

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("%w: %v", status.ErrIOOpen, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w: %v", status.ErrIOOpen, err)
	}
	defer out.Close()

	return stream.CTRCopy(e, iv, out, in)
}

// HashSHA512File returns the SHA-512 digest of the file at inPath.
func HashSHA512File(inPath string) ([64]byte, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return [64]byte{}, fmt.Errorf("%w: %v", status.ErrIOOpen, err)
	}
	defer in.Close()

	h := sha512core.New()
	if err := stream.HashCopy(in, h); err != nil {
		return [64]byte{}, err
	}
	return h.Sum(), nil
}

// HMACSHA512File returns the HMAC-SHA-512 of the file at inPath,
// keyed with hmacKey.
func HMACSHA512File(inPath string, hmacKey []byte) ([64]byte, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return [64]byte{}, fmt.Errorf("%w: %v", status.ErrIOOpen, err)
	}
	defer in.Close()

	mac := hmacsha512.New(hmacKey)
	if err := stream.HashCopy(in, mac); err != nil {
		return [64]byte{}, err
	}
	return mac.Sum(), nil
}

// EncryptEnvelope encrypts inPath under aesKey with a freshly
// generated random IV and writes an authenticated envelope
// (IV||ciphertext||HMAC-SHA-512 tag, keyed with hmacKey) to outPath.
func EncryptEnvelope(engine EngineKind, inPath, outPath string, aesKey, hmacKey []byte) error {
	return envelope.Encrypt(engine.toCipherKind(), inPath, outPath, aesKey, hmacKey)
}

// DecryptEnvelope verifies and decrypts an envelope previously
// produced by EncryptEnvelope. The HMAC-SHA-512 tag is recomputed and
// compared before any plaintext is written; a mismatch returns
// ErrAuthenticationFailure and outPath is left untouched.
//
// If authenticated is non-nil, it is called once the tag has been
// verified but before any plaintext is written, giving the caller a
// last chance to abort (for example, to prompt a user). Returning
// false causes DecryptEnvelope to return ErrCancelledAfterAuth without
// writing outPath.
func DecryptEnvelope(engine EngineKind, inPath, outPath string, aesKey, hmacKey []byte, authenticated func() bool) error {
	return envelope.Decrypt(engine.toCipherKind(), inPath, outPath, aesKey, hmacKey, authenticated)
}
