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

// Package hmacsha512 implements HMAC (RFC 2104) over sha512core,
// keyed message authentication used by the envelope format to detect
// tampering with ciphertext.
package hmacsha512

import (
	"github.com/wedkarz02/filecrypt/internal/sha512core"
)

const (
	ipad = 0x36
	opad = 0x5c
)

// Size is the MAC length in bytes, equal to the SHA-512 digest size.
const Size = sha512core.Size

// Context computes a running HMAC-SHA-512 over streamed message data.
// Not safe for concurrent use.
type Context struct {
	inner *sha512core.Context
	key   [sha512core.BlockSize]byte
}

// New derives a Context from key, which may be any length: keys
// longer than the block size are first hashed down, shorter keys are
// zero-padded, per RFC 2104 section 2.
func New(key []byte) *Context {
	c := &Context{inner: sha512core.New()}

	var processedKey [sha512core.BlockSize]byte
	if len(key) > sha512core.BlockSize {
		h := sha512core.New()
		h.Write(key)
		digest := h.Sum()
		copy(processedKey[:], digest[:])
	} else {
		copy(processedKey[:], key)
	}

	c.key = processedKey

	var ipadKey [sha512core.BlockSize]byte
	for i := range ipadKey {
		ipadKey[i] = processedKey[i] ^ ipad
	}
	c.inner.Write(ipadKey[:])

	return c
}

// Write feeds message bytes into the running MAC.
func (c *Context) Write(p []byte) (int, error) {
	return c.inner.Write(p)
}

// Sum finalizes and returns the 64-byte MAC. The receiver is left
// usable for further Write calls, matching sha512core.Context.Sum.
func (c *Context) Sum() [Size]byte {
	innerDigest := c.inner.Sum()

	var opadKey [sha512core.BlockSize]byte
	for i := range opadKey {
		opadKey[i] = c.key[i] ^ opad
	}

	outer := sha512core.New()
	outer.Write(opadKey[:])
	outer.Write(innerDigest[:])
	return outer.Sum()
}

// Sum computes the HMAC-SHA-512 of message under key in one call.
func Sum(key, message []byte) [Size]byte {
	c := New(key)
	c.Write(message)
	return c.Sum()
}

// Equal reports whether two MACs are equal, in constant time with
// respect to the MAC contents (though not to their lengths), to avoid
// leaking comparison timing to an attacker probing tag validity.
func Equal(a, b [Size]byte) bool {
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}
