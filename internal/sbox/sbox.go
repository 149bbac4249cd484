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

// Package sbox builds the AES forward and inverse substitution tables
// from GF(2^8) inversion and the Rijndael affine transform.
package sbox

import "github.com/wedkarz02/filecrypt/internal/galois"

// Table is a 256-entry substitution lookup table.
type Table [256]byte

const affineConst = 0x63

func rotL8(x byte, shift uint) byte {
	return byte((x << shift) | (x >> (8 - shift)))
}

// affine applies the Rijndael affine transform:
// y[i] = x[i] ^ x[(i+4)%8] ^ x[(i+5)%8] ^ x[(i+6)%8] ^ x[(i+7)%8] ^ c[i]
// which is equivalent to XORing b with its rotations by 1..4 bits.
func affine(b byte) byte {
	return b ^ rotL8(b, 1) ^ rotL8(b, 2) ^ rotL8(b, 3) ^ rotL8(b, 4) ^ affineConst
}

// New builds the forward S-box: sbox[x] = affine(galois.Inverse(x)).
func New() *Table {
	sbox := new(Table)

	for x := 0; x < 256; x++ {
		inv := galois.Inverse(byte(x))
		sbox[x] = affine(inv)
	}

	return sbox
}

// Inverse builds the inverse S-box from a forward table such that
// invsbox[sbox[x]] = x for all x.
func Inverse(sbox *Table) *Table {
	invsbox := new(Table)

	for i := 0; i < len(sbox); i++ {
		invsbox[sbox[i]] = byte(i)
	}

	return invsbox
}
