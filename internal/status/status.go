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

// Package status gives the error kinds reported across the core a
// shared set of sentinel values, so callers can classify a failure
// with errors.Is instead of matching on string content.
package status

import "errors"

var (
	// ErrInvalidArgument marks a caller-supplied parameter that fails
	// validation before any I/O or cryptographic work begins (bad key
	// length, bad IV length, nil buffer where one is required).
	ErrInvalidArgument = errors.New("filecrypt: invalid argument")

	// ErrIOOpen marks failure to open an input or output file.
	ErrIOOpen = errors.New("filecrypt: failed to open file")

	// ErrIORead marks failure reading from an already-open file.
	ErrIORead = errors.New("filecrypt: failed to read file")

	// ErrIOWrite marks failure writing to an already-open file.
	ErrIOWrite = errors.New("filecrypt: failed to write file")

	// ErrIOClose marks failure closing a written output file.
	ErrIOClose = errors.New("filecrypt: failed to close file")

	// ErrAllocation marks refusal to allocate a streaming buffer. No
	// code path in this module returns it: buffers are a fixed size and
	// are allocated with make, which does not report failure.
	ErrAllocation = errors.New("filecrypt: buffer allocation refused")

	// ErrShortEnvelope marks an envelope file too short to contain an
	// IV and a MAC tag, let alone any ciphertext.
	ErrShortEnvelope = errors.New("filecrypt: envelope file too short")

	// ErrAuthenticationFailure marks a MAC tag mismatch: the envelope
	// was tampered with or encrypted under a different HMAC key.
	ErrAuthenticationFailure = errors.New("filecrypt: authentication failed")

	// ErrCancelledAfterAuth marks a caller-declined decrypt after
	// authentication already succeeded: distinct from
	// ErrAuthenticationFailure so callers don't mistake a user's "no"
	// for a tampered file.
	ErrCancelledAfterAuth = errors.New("filecrypt: decryption cancelled after successful authentication")
)
