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

// Package sha512core implements the SHA-512 compression function and
// Merkle-Damgard padding from FIPS 180-4, as a streaming context.
package sha512core

import "encoding/binary"

// BlockSize is the SHA-512 message block size in bytes.
const BlockSize = 128

// Size is the SHA-512 digest size in bytes.
const Size = 64

// iv holds the SHA-512 initial chaining values (FIPS 180-4 section 5.3.5).
var iv = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

// k holds the 80 SHA-512 round constants (FIPS 180-4 section 4.2.3).
var k = [80]uint64{
	0x428a2f98d728ae22, 0x7137449123ef65cd, 0xb5c0fbcfec4d3b2f, 0xe9b5dba58189dbbc,
	0x3956c25bf348b538, 0x59f111f1b605d019, 0x923f82a4af194f9b, 0xab1c5ed5da6d8118,
	0xd807aa98a3030242, 0x12835b0145706fbe, 0x243185be4ee4b28c, 0x550c7dc3d5ffb4e2,
	0x72be5d74f27b896f, 0x80deb1fe3b1696b1, 0x9bdc06a725c71235, 0xc19bf174cf692694,
	0xe49b69c19ef14ad2, 0xefbe4786384f25e3, 0x0fc19dc68b8cd5b5, 0x240ca1cc77ac9c65,
	0x2de92c6f592b0275, 0x4a7484aa6ea6e483, 0x5cb0a9dcbd41fbd4, 0x76f988da831153b5,
	0x983e5152ee66dfab, 0xa831c66d2db43210, 0xb00327c898fb213f, 0xbf597fc7beef0ee4,
	0xc6e00bf33da88fc2, 0xd5a79147930aa725, 0x06ca6351e003826f, 0x142929670a0e6e70,
	0x27b70a8546d22ffc, 0x2e1b21385c26c926, 0x4d2c6dfc5ac42aed, 0x53380d139d95b3df,
	0x650a73548baf63de, 0x766a0abb3c77b2a8, 0x81c2c92e47edaee6, 0x92722c851482353b,
	0xa2bfe8a14cf10364, 0xa81a664bbc423001, 0xc24b8b70d0f89791, 0xc76c51a30654be30,
	0xd192e819d6ef5218, 0xd69906245565a910, 0xf40e35855771202a, 0x106aa07032bbd1b8,
	0x19a4c116b8d2d0c8, 0x1e376c085141ab53, 0x2748774cdf8eeb99, 0x34b0bcb5e19b48a8,
	0x391c0cb3c5c95a63, 0x4ed8aa4ae3418acb, 0x5b9cca4f7763e373, 0x682e6ff3d6b2b8a3,
	0x748f82ee5defb2fc, 0x78a5636f43172f60, 0x84c87814a1f0ab72, 0x8cc702081a6439ec,
	0x90befffa23631e28, 0xa4506cebde82bde9, 0xbef9a3f7b2c67915, 0xc67178f2e372532b,
	0xca273eceea26619c, 0xd186b8c721c0c207, 0xeada7dd6cde0eb1e, 0xf57d4f7fee6ed178,
	0x06f067aa72176fba, 0x0a637dc5a2c898a6, 0x113f9804bef90dae, 0x1b710b35131c471b,
	0x28db77f523047d84, 0x32caab7b40c72493, 0x3c9ebe0a15c9bebc, 0x431d67c49c100d4c,
	0x4cc5d4becb3e42b6, 0x597f299cfc657e2a, 0x5fcb6fab3ad6faec, 0x6c44198c4a475817,
}

// Context holds SHA-512 streaming state: the eight chaining words, a
// 128-bit bit-length counter split into high/low halves, and a
// partial-block buffer with its fill count.
type Context struct {
	h      [8]uint64
	lenHi  uint64
	lenLo  uint64
	buf    [BlockSize]byte
	buflen int
}

// New returns a Context initialized to the SHA-512 IV.
func New() *Context {
	c := &Context{}
	c.Reset()
	return c
}

// Reset returns the context to its initial state, as if newly constructed.
func (c *Context) Reset() {
	c.h = iv
	c.lenHi = 0
	c.lenLo = 0
	c.buflen = 0
}

func rotr64(x uint64, n uint) uint64 {
	return (x >> n) | (x << (64 - n))
}

func bigSigma0(a uint64) uint64 {
	return rotr64(a, 28) ^ rotr64(a, 34) ^ rotr64(a, 39)
}

func bigSigma1(e uint64) uint64 {
	return rotr64(e, 14) ^ rotr64(e, 18) ^ rotr64(e, 41)
}

func smallSigma0(x uint64) uint64 {
	return rotr64(x, 1) ^ rotr64(x, 8) ^ (x >> 7)
}

func smallSigma1(x uint64) uint64 {
	return rotr64(x, 19) ^ rotr64(x, 61) ^ (x >> 6)
}

func ch(e, f, g uint64) uint64 {
	return (e & f) ^ (^e & g)
}

func maj(a, b, c uint64) uint64 {
	return (a & b) ^ (a & c) ^ (b & c)
}

// compress processes exactly one 128-byte block, updating c.h.
func (c *Context) compress(block []byte) {
	var w [80]uint64

	for t := 0; t < 16; t++ {
		w[t] = binary.BigEndian.Uint64(block[t*8 : t*8+8])
	}

	for t := 16; t < 80; t++ {
		w[t] = smallSigma1(w[t-2]) + w[t-7] + smallSigma0(w[t-15]) + w[t-16]
	}

	a, b, cc, d, e, f, g, h := c.h[0], c.h[1], c.h[2], c.h[3], c.h[4], c.h[5], c.h[6], c.h[7]

	for t := 0; t < 80; t++ {
		t1 := h + bigSigma1(e) + ch(e, f, g) + k[t] + w[t]
		t2 := bigSigma0(a) + maj(a, b, cc)

		h = g
		g = f
		f = e
		e = d + t1
		d = cc
		cc = b
		b = a
		a = t1 + t2
	}

	c.h[0] += a
	c.h[1] += b
	c.h[2] += cc
	c.h[3] += d
	c.h[4] += e
	c.h[5] += f
	c.h[6] += g
	c.h[7] += h
}

// addBitLen adds n bits to the 128-bit length counter, carrying from
// the low half into the high half on overflow.
func (c *Context) addBitLen(n uint64) {
	old := c.lenLo
	c.lenLo += n
	if c.lenLo < old {
		c.lenHi++
	}
}

// Write feeds message bytes into the running hash, buffering partial
// blocks and compressing every completed 128-byte block.
func (c *Context) Write(p []byte) (int, error) {
	total := len(p)
	c.addBitLen(uint64(len(p)) * 8)

	if c.buflen > 0 {
		n := copy(c.buf[c.buflen:], p)
		c.buflen += n
		p = p[n:]

		if c.buflen == BlockSize {
			c.compress(c.buf[:])
			c.buflen = 0
		}
	}

	for len(p) >= BlockSize {
		c.compress(p[:BlockSize])
		p = p[BlockSize:]
	}

	if len(p) > 0 {
		c.buflen = copy(c.buf[:], p)
	}

	return total, nil
}

// Sum finalizes a copy of the context (the receiver is left
// unmodified so Write may continue to be called, as crypto/hash.Hash
// allows) and returns the 64-byte digest.
func (c *Context) Sum() [Size]byte {
	clone := *c

	// Append 0x80, then zero-pad so exactly 16 bytes remain for the
	// 128-bit big-endian bit-length field, growing the buffer into an
	// extra block when there isn't enough room.
	var pad [BlockSize * 2]byte
	pad[0] = 0x80

	padLen := BlockSize - clone.buflen - 17
	if padLen < 0 {
		padLen += BlockSize
	}

	lenHi, lenLo := clone.lenHi, clone.lenLo
	clone.Write(pad[:1+padLen])

	var lenField [16]byte
	binary.BigEndian.PutUint64(lenField[0:8], lenHi)
	binary.BigEndian.PutUint64(lenField[8:16], lenLo)

	// The length field itself must not perturb the bit-length counter
	// (it documents the length of the message, not of the padding), so
	// write directly into the buffer instead of calling Write.
	n := copy(clone.buf[clone.buflen:], lenField[:])
	clone.buflen += n

	if clone.buflen != BlockSize {
		panic("sha512core: padding invariant violated")
	}

	clone.compress(clone.buf[:])

	var out [Size]byte
	for i, word := range clone.h {
		binary.BigEndian.PutUint64(out[i*8:i*8+8], word)
	}

	return out
}
