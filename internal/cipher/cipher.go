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

// Package cipher implements the AES block cipher behind a small
// polymorphic engine interface, with two interchangeable
// implementations: a standards-faithful reference engine and a
// T-table engine that trades memory for speed.
package cipher

import "errors"

// ErrInvalidKeySize is returned when New receives a key whose length
// is not 16, 24 or 32 bytes.
var ErrInvalidKeySize = errors.New("cipher: invalid key size, must be 16, 24 or 32 bytes")

// ErrInvalidBlockSize is returned when EncryptBlock/DecryptBlock receive
// a buffer that is not exactly BlockSize bytes.
var ErrInvalidBlockSize = errors.New("cipher: invalid block size, must be 16 bytes")

// Engine is the block-cipher handle contract every AES implementation
// in this package satisfies. A handle is immutable after construction;
// callers own it exclusively for its lifetime and must call Destroy
// when done with it.
type Engine interface {
	// EncryptBlock encrypts exactly one 16-byte block. dst and src may
	// alias.
	EncryptBlock(dst, src []byte) error

	// DecryptBlock decrypts exactly one 16-byte block. dst and src may
	// alias.
	DecryptBlock(dst, src []byte) error

	// Destroy overwrites internal key material before the engine is
	// released. The engine must not be used afterwards.
	Destroy()
}

// Kind selects which Engine implementation to construct.
type Kind int

const (
	// KindReference selects the standards-faithful engine that derives
	// round keys on the fly instead of caching the full key schedule.
	KindReference Kind = iota

	// KindTTable selects the pre-expanded, T-table-driven engine.
	KindTTable
)

// New constructs an Engine of the requested kind for the given key.
// key must be 16, 24 or 32 bytes long.
func New(kind Kind, key []byte) (Engine, error) {
	switch kind {
	case KindReference:
		return newReferenceEngine(key)
	case KindTTable:
		return newTTableEngine(key)
	default:
		return nil, errors.New("cipher: unknown engine kind")
	}
}
