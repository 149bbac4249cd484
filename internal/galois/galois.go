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

// Package galois implements GF(2^8) arithmetic over the AES reduction
// polynomial x^8 + x^4 + x^3 + x + 1 (0x11B).
package galois

// Add is addition in GF(2^8), which is just XOR.
func Add(a, b byte) byte {
	return a ^ b
}

// Mul is multiplication in GF(2^8) using the shift-and-reduce
// (Russian-peasant) method, reducing by 0x1b whenever the
// shifted term overflows the top bit.
//
// https://en.wikipedia.org/wiki/Rijndael_MixColumns
func Mul(a, b byte) byte {
	var p byte = 0

	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}

		hiBitSet := a&0x80 != 0
		a <<= 1

		if hiBitSet {
			a ^= 0x1b
		}

		b >>= 1
	}

	return p
}

// Pow raises a to the n-th power in GF(2^8) using the binary
// (square-and-multiply) method.
func Pow(a byte, n uint) byte {
	var result byte = 1
	base := a

	for n > 0 {
		if n&1 != 0 {
			result = Mul(result, base)
		}
		base = Mul(base, base)
		n >>= 1
	}

	return result
}

// Inverse returns the multiplicative inverse of x in GF(2^8).
// Every nonzero element has order 255, so x^(-1) = x^254.
// The inverse of 0 is defined as 0, following AES convention.
func Inverse(x byte) byte {
	if x == 0 {
		return 0
	}

	return Pow(x, 254)
}

// XorBlocks XORs two equal-length byte slices together.
func XorBlocks(a, b []byte) []byte {
	result := make([]byte, len(a))

	for i, val := range a {
		result[i] = Add(val, b[i])
	}

	return result
}
