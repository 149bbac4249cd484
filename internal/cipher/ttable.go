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

package cipher

import (
	"github.com/wedkarz02/filecrypt/internal/galois"
	"github.com/wedkarz02/filecrypt/internal/sbox"
)

// ttableEngine fully expands the key schedule once at construction and
// fuses SubBytes/ShiftRows/MixColumns (and their inverses) into 256
// entry, 32-bit lookup tables. It trades the reference engine's small
// footprint for round-time table lookups instead of GF(2^8) math.
type ttableEngine struct {
	nk, nr int

	rk []byte // Nr+1 round keys, BlockSize bytes each, forward order
	dk []byte // equivalent-inverse round keys for the Td fast path

	te0, te1, te2, te3 [256]uint32
	td0, td1, td2, td3 [256]uint32

	sbox, invbox *sbox.Table
}

func rotr32(w uint32, n uint) uint32 {
	return (w >> n) | (w << (32 - n))
}

func newTTableEngine(key []byte) (Engine, error) {
	nk := Nk(len(key))
	if nk == 0 {
		return nil, ErrInvalidKeySize
	}

	nr := Nr(nk)
	sb := sbox.New()
	ib := sbox.Inverse(sb)

	words := expandWords(key, nk, nr, 4*(nr+1), sb)

	e := &ttableEngine{
		nk:     nk,
		nr:     nr,
		sbox:   sb,
		invbox: ib,
	}

	e.rk = make([]byte, BlockSize*(nr+1))
	for round := 0; round <= nr; round++ {
		copy(e.rk[round*BlockSize:(round+1)*BlockSize], roundKeyBytes(words, round))
	}

	for i := 0; i < 256; i++ {
		s := sb[i]
		e.te0[i] = uint32(galois.Mul(0x02, s))<<24 | uint32(s)<<16 | uint32(s)<<8 | uint32(galois.Mul(0x03, s))
		e.te1[i] = rotr32(e.te0[i], 8)
		e.te2[i] = rotr32(e.te0[i], 16)
		e.te3[i] = rotr32(e.te0[i], 24)

		is := ib[i]
		e.td0[i] = uint32(galois.Mul(0x0e, is))<<24 | uint32(galois.Mul(0x09, is))<<16 | uint32(galois.Mul(0x0d, is))<<8 | uint32(galois.Mul(0x0b, is))
		e.td1[i] = rotr32(e.td0[i], 8)
		e.td2[i] = rotr32(e.td0[i], 16)
		e.td3[i] = rotr32(e.td0[i], 24)
	}

	// Equivalent-inverse round keys: dk[0] = rk[Nr], dk[Nr] = rk[0], and
	// dk[r] = InvMixColumns(rk[Nr-r]) for the middle rounds, so the Td
	// fast path can apply AddRoundKey after the (fused) InvMixColumns
	// step just like the forward cipher applies it after MixColumns.
	// https://doi.org/10.6028/NIST.FIPS.197 section 5.3.5
	e.dk = make([]byte, len(e.rk))
	copy(e.dk[0:BlockSize], e.rk[nr*BlockSize:(nr+1)*BlockSize])
	copy(e.dk[nr*BlockSize:(nr+1)*BlockSize], e.rk[0:BlockSize])
	for round := 1; round < nr; round++ {
		mixed := invMixColumns(e.rk[(nr-round)*BlockSize : (nr-round+1)*BlockSize])
		copy(e.dk[round*BlockSize:(round+1)*BlockSize], mixed)
	}

	return e, nil
}

func (e *ttableEngine) roundKeyWord(keys []byte, round, col int) uint32 {
	base := round*BlockSize + col*4
	return uint32(keys[base])<<24 | uint32(keys[base+1])<<16 | uint32(keys[base+2])<<8 | uint32(keys[base+3])
}

func (e *ttableEngine) EncryptBlock(dst, src []byte) error {
	if len(src) != BlockSize || len(dst) != BlockSize {
		return ErrInvalidBlockSize
	}

	state := make([]byte, BlockSize)
	copy(state, src)

	for col := 0; col < 4; col++ {
		w := e.roundKeyWord(e.rk, 0, col) ^ (uint32(state[4*col])<<24 | uint32(state[4*col+1])<<16 | uint32(state[4*col+2])<<8 | uint32(state[4*col+3]))
		putWord(state, col, w)
	}

	buf := make([]byte, BlockSize)

	for round := 1; round < e.nr; round++ {
		for c := 0; c < 4; c++ {
			t := e.te0[state[0+4*c]] ^
				e.te1[state[1+4*((c+1)%4)]] ^
				e.te2[state[2+4*((c+2)%4)]] ^
				e.te3[state[3+4*((c+3)%4)]] ^
				e.roundKeyWord(e.rk, round, c)
			putWord(buf, c, t)
		}
		copy(state, buf)
	}

	// Final round: SubBytes, ShiftRows, AddRoundKey — no MixColumns.
	for c := 0; c < 4; c++ {
		b0 := e.sbox[state[0+4*c]]
		b1 := e.sbox[state[1+4*((c+1)%4)]]
		b2 := e.sbox[state[2+4*((c+2)%4)]]
		b3 := e.sbox[state[3+4*((c+3)%4)]]
		w := uint32(b0)<<24 | uint32(b1)<<16 | uint32(b2)<<8 | uint32(b3)
		w ^= e.roundKeyWord(e.rk, e.nr, c)
		putWord(buf, c, w)
	}

	copy(dst, buf)
	return nil
}

func (e *ttableEngine) DecryptBlock(dst, src []byte) error {
	if len(src) != BlockSize || len(dst) != BlockSize {
		return ErrInvalidBlockSize
	}

	state := make([]byte, BlockSize)
	copy(state, src)

	for col := 0; col < 4; col++ {
		w := e.roundKeyWord(e.dk, 0, col) ^ (uint32(state[4*col])<<24 | uint32(state[4*col+1])<<16 | uint32(state[4*col+2])<<8 | uint32(state[4*col+3]))
		putWord(state, col, w)
	}

	buf := make([]byte, BlockSize)

	for round := 1; round < e.nr; round++ {
		for c := 0; c < 4; c++ {
			t := e.td0[state[0+4*c]] ^
				e.td1[state[1+4*((c+3)%4)]] ^
				e.td2[state[2+4*((c+2)%4)]] ^
				e.td3[state[3+4*((c+1)%4)]] ^
				e.roundKeyWord(e.dk, round, c)
			putWord(buf, c, t)
		}
		copy(state, buf)
	}

	// Final round: InvSubBytes, InvShiftRows, AddRoundKey — no InvMixColumns.
	for c := 0; c < 4; c++ {
		b0 := e.invbox[state[0+4*c]]
		b1 := e.invbox[state[1+4*((c+3)%4)]]
		b2 := e.invbox[state[2+4*((c+2)%4)]]
		b3 := e.invbox[state[3+4*((c+1)%4)]]
		w := uint32(b0)<<24 | uint32(b1)<<16 | uint32(b2)<<8 | uint32(b3)
		w ^= e.roundKeyWord(e.dk, e.nr, c)
		putWord(buf, c, w)
	}

	copy(dst, buf)
	return nil
}

func putWord(state []byte, col int, w uint32) {
	state[4*col] = byte(w >> 24)
	state[4*col+1] = byte(w >> 16)
	state[4*col+2] = byte(w >> 8)
	state[4*col+3] = byte(w)
}

func (e *ttableEngine) Destroy() {
	for i := range e.rk {
		e.rk[i] = 0x00
	}
	for i := range e.dk {
		e.dk[i] = 0x00
	}
}
