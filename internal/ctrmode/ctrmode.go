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

// Package ctrmode turns a block cipher.Engine into a stream cipher by
// XORing the plaintext with the keystream Encrypt(counter),
// incrementing counter by one for every 16-byte block processed.
//
// https://en.wikipedia.org/wiki/Block_cipher_mode_of_operation#Counter_(CTR)
package ctrmode

import (
	"errors"

	"github.com/wedkarz02/filecrypt/internal/cipher"
)

// ErrInvalidIVSize is returned when the supplied IV is not exactly
// cipher.BlockSize bytes.
var ErrInvalidIVSize = errors.New("ctrmode: iv must be 16 bytes")

// Mode drives a block cipher.Engine in CTR mode. The counter persists
// across calls to Update, so a sequence of calls over concatenated
// input produces the same result as one call over the whole input.
// Not safe for concurrent use; callers own a Mode exclusively for the
// lifetime of one message.
type Mode struct {
	engine  cipher.Engine
	counter [cipher.BlockSize]byte
	ks      [cipher.BlockSize]byte // keystream of the last block
	ksLeft  int                    // unused bytes left at the end of ks
}

// New binds a Mode to engine and copies iv into the initial counter
// block. engine is not owned by Mode; the caller is responsible for
// destroying it once done with the Mode.
func New(engine cipher.Engine, iv []byte) (*Mode, error) {
	if len(iv) != cipher.BlockSize {
		return nil, ErrInvalidIVSize
	}

	m := &Mode{engine: engine}
	copy(m.counter[:], iv)
	return m, nil
}

// increment treats the counter block as a 128-bit big-endian integer
// and adds one, wrapping around to all-zero on overflow.
func (m *Mode) increment() {
	for i := len(m.counter) - 1; i >= 0; i-- {
		m.counter[i]++
		if m.counter[i] != 0 {
			break
		}
	}
}

// Update XORs len(in) bytes of keystream into in, writing the result
// to out. in and out may alias. A zero-length call is a no-op.
func (m *Mode) Update(out, in []byte) error {
	if len(in) == 0 {
		return nil
	}

	if len(out) != len(in) {
		return errors.New("ctrmode: out and in must be the same length")
	}

	// Use up keystream left over from a previous partial block first.
	start := 0
	for ; start < len(in) && m.ksLeft > 0; start++ {
		out[start] = in[start] ^ m.ks[cipher.BlockSize-m.ksLeft]
		m.ksLeft--
	}

	keystream := m.ks[:]

	for offset := start; offset < len(in); offset += cipher.BlockSize {
		if err := m.engine.EncryptBlock(keystream, m.counter[:]); err != nil {
			return err
		}

		end := offset + cipher.BlockSize
		if end > len(in) {
			end = len(in)
		}
		m.ksLeft = offset + cipher.BlockSize - end

		for i := offset; i < end; i++ {
			out[i] = in[i] ^ keystream[i-offset]
		}

		m.increment()
	}

	return nil
}
