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

// Package envelope implements the authenticated file format this
// repo's encrypt-then-MAC operation produces and consumes:
//
//	IV (16 bytes) || ciphertext (n bytes) || HMAC-SHA-512 tag (64 bytes)
//
// Encryption writes ciphertext to a temporary file while computing
// the tag over IV||ciphertext in the same pass, then writes the final
// file at outPath, removing it again if any step of that assembly
// returns an error. Decryption always recomputes and compares the
// tag before any plaintext reaches outPath.
package envelope

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wedkarz02/filecrypt/internal/cipher"
	"github.com/wedkarz02/filecrypt/internal/hmacsha512"
	"github.com/wedkarz02/filecrypt/internal/status"
	"github.com/wedkarz02/filecrypt/internal/stream"
)

// ivSize and tagSize are the fixed-width framing fields around the
// variable-length ciphertext.
const (
	ivSize  = cipher.BlockSize
	tagSize = hmacsha512.Size
)

// Encrypt reads inPath, encrypts it under aesKey in CTR mode with a
// freshly generated random IV, and writes
// IV||ciphertext||HMAC-SHA-512(IV||ciphertext) to outPath.
func Encrypt(kind cipher.Kind, inPath, outPath string, aesKey, hmacKey []byte) error {
	engine, err := cipher.New(kind, aesKey)
	if err != nil {
		return fmt.Errorf("%w: %v", status.ErrInvalidArgument, err)
	}
	defer engine.Destroy()

	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return fmt.Errorf("%w: failed to generate iv: %v", status.ErrInvalidArgument, err)
	}

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("%w: %v", status.ErrIOOpen, err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".filecrypt-envelope-*")
	if err != nil {
		return fmt.Errorf("%w: %v", status.ErrIOOpen, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	mac := hmacsha512.New(hmacKey)
	mac.Write(iv)

	if err := stream.TeeCTRCopy(engine, iv, tmp, in, mac); err != nil {
		tmp.Close()
		return err
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", status.ErrIORead, err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", status.ErrIOOpen, err)
	}

	// From here on, outPath exists but may only be partially written;
	// any failure must remove it so a half-finished envelope is never
	// mistaken for a finished one, matching worker.c's remove(data->outputFile)
	// on every failure branch once f_out is open.
	if _, err := out.Write(iv); err != nil {
		out.Close()
		os.Remove(outPath)
		tmp.Close()
		return fmt.Errorf("%w: %v", status.ErrIOWrite, err)
	}

	if _, err := io.Copy(out, tmp); err != nil {
		out.Close()
		os.Remove(outPath)
		tmp.Close()
		return fmt.Errorf("%w: %v", status.ErrIOWrite, err)
	}
	tmp.Close()

	tag := mac.Sum()
	if _, err := out.Write(tag[:]); err != nil {
		out.Close()
		os.Remove(outPath)
		return fmt.Errorf("%w: %v", status.ErrIOWrite, err)
	}

	if err := out.Close(); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("%w: %v", status.ErrIOClose, err)
	}

	return nil
}

// Decrypt reads an IV||ciphertext||tag envelope from inPath, recomputes
// the HMAC-SHA-512 tag over IV||ciphertext and compares it against the
// stored tag before anything is written. A mismatch returns
// status.ErrAuthenticationFailure and outPath is left untouched.
//
// When the tag matches, authenticated is called (if non-nil) before any
// plaintext is emitted; if it returns false, Decrypt returns
// status.ErrCancelledAfterAuth without writing outPath.
func Decrypt(kind cipher.Kind, inPath, outPath string, aesKey, hmacKey []byte, authenticated func() bool) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("%w: %v", status.ErrIOOpen, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("%w: %v", status.ErrIORead, err)
	}

	if info.Size() < int64(ivSize+tagSize) {
		return status.ErrShortEnvelope
	}

	ciphertextSize := info.Size() - int64(ivSize) - int64(tagSize)

	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(in, iv); err != nil {
		return fmt.Errorf("%w: %v", status.ErrIORead, err)
	}

	mac := hmacsha512.New(hmacKey)
	mac.Write(iv)

	ciphertextReader := io.LimitReader(in, ciphertextSize)
	if err := stream.HashCopy(ciphertextReader, mac); err != nil {
		return err
	}

	storedTag := make([]byte, tagSize)
	if _, err := io.ReadFull(in, storedTag); err != nil {
		return fmt.Errorf("%w: %v", status.ErrIORead, err)
	}

	computedTag := mac.Sum()
	var fixedTag [tagSize]byte
	copy(fixedTag[:], storedTag)
	if !hmacsha512.Equal(computedTag, fixedTag) {
		return status.ErrAuthenticationFailure
	}

	if authenticated != nil && !authenticated() {
		return status.ErrCancelledAfterAuth
	}

	if _, err := in.Seek(int64(ivSize), io.SeekStart); err != nil {
		return fmt.Errorf("%w: %v", status.ErrIORead, err)
	}

	engine, err := cipher.New(kind, aesKey)
	if err != nil {
		return fmt.Errorf("%w: %v", status.ErrInvalidArgument, err)
	}
	defer engine.Destroy()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w: %v", status.ErrIOOpen, err)
	}

	plaintextReader := io.LimitReader(in, ciphertextSize)
	if err := stream.CTRCopy(engine, iv, out, plaintextReader); err != nil {
		out.Close()
		os.Remove(outPath)
		return err
	}

	if err := out.Close(); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("%w: %v", status.ErrIOClose, err)
	}

	return nil
}
