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

// referenceEngine implements FIPS-197 AES round-by-round, re-deriving
// the key schedule on the fly for each round instead of caching the
// full expansion. This is a deliberate space/speed trade-off: it keeps
// the live state small (just the original key) at the cost of
// recomputing O(Nr) schedule words per round processed. It exists to
// demonstrate the algorithm in its textbook shape; the T-table engine
// is the fast path.
type referenceEngine struct {
	key    []byte
	nk, nr int
	sbox   *sbox.Table
	invbox *sbox.Table
}

func newReferenceEngine(key []byte) (Engine, error) {
	nk := Nk(len(key))
	if nk == 0 {
		return nil, ErrInvalidKeySize
	}

	k := make([]byte, len(key))
	copy(k, key)

	sb := sbox.New()

	return &referenceEngine{
		key:    k,
		nk:     nk,
		nr:     Nr(nk),
		sbox:   sb,
		invbox: sbox.Inverse(sb),
	}, nil
}

// roundKey re-derives the key schedule from scratch up to the
// requested round and returns just that round's 16 bytes; nothing is
// cached between calls.
func (e *referenceEngine) roundKey(round int) []byte {
	words := expandWords(e.key, e.nk, e.nr, 4*(round+1), e.sbox)
	return roundKeyBytes(words, round)
}

func (e *referenceEngine) addRoundKey(state []byte, round int) []byte {
	rk := e.roundKey(round)
	out := make([]byte, BlockSize)
	for i := range state {
		out[i] = galois.Add(state[i], rk[i])
	}
	return out
}

func (e *referenceEngine) subBytes(state []byte) []byte {
	out := make([]byte, BlockSize)
	for i, b := range state {
		out[i] = e.sbox[b]
	}
	return out
}

func (e *referenceEngine) invSubBytes(state []byte) []byte {
	out := make([]byte, BlockSize)
	for i, b := range state {
		out[i] = e.invbox[b]
	}
	return out
}

// shiftRows and invShiftRows operate on the state in column-major byte
// order, matching the FIPS-197 4x4 state layout.
func shiftRows(state []byte) []byte {
	out := make([]byte, BlockSize)
	copy(out, state)

	for i := 1; i < 4; i++ {
		out[i+4*0] = state[i+4*((i+0)%4)]
		out[i+4*1] = state[i+4*((i+1)%4)]
		out[i+4*2] = state[i+4*((i+2)%4)]
		out[i+4*3] = state[i+4*((i+3)%4)]
	}

	return out
}

func invShiftRows(state []byte) []byte {
	out := make([]byte, BlockSize)
	copy(out, state)

	for i := 1; i < 4; i++ {
		j := 4 - i
		out[i+4*0] = state[i+4*((j+0)%4)]
		out[i+4*1] = state[i+4*((j+1)%4)]
		out[i+4*2] = state[i+4*((j+2)%4)]
		out[i+4*3] = state[i+4*((j+3)%4)]
	}

	return out
}

func mixColumns(state []byte) []byte {
	out := make([]byte, BlockSize)

	for i := 0; i < 4; i++ {
		out[4*i+0] = galois.Mul(0x02, state[4*i+0]) ^ galois.Mul(0x03, state[4*i+1]) ^ state[4*i+2] ^ state[4*i+3]
		out[4*i+1] = state[4*i+0] ^ galois.Mul(0x02, state[4*i+1]) ^ galois.Mul(0x03, state[4*i+2]) ^ state[4*i+3]
		out[4*i+2] = state[4*i+0] ^ state[4*i+1] ^ galois.Mul(0x02, state[4*i+2]) ^ galois.Mul(0x03, state[4*i+3])
		out[4*i+3] = galois.Mul(0x03, state[4*i+0]) ^ state[4*i+1] ^ state[4*i+2] ^ galois.Mul(0x02, state[4*i+3])
	}

	return out
}

func invMixColumns(state []byte) []byte {
	out := make([]byte, BlockSize)

	for i := 0; i < 4; i++ {
		out[4*i+0] = galois.Mul(0x0e, state[4*i+0]) ^ galois.Mul(0x0b, state[4*i+1]) ^ galois.Mul(0x0d, state[4*i+2]) ^ galois.Mul(0x09, state[4*i+3])
		out[4*i+1] = galois.Mul(0x09, state[4*i+0]) ^ galois.Mul(0x0e, state[4*i+1]) ^ galois.Mul(0x0b, state[4*i+2]) ^ galois.Mul(0x0d, state[4*i+3])
		out[4*i+2] = galois.Mul(0x0d, state[4*i+0]) ^ galois.Mul(0x09, state[4*i+1]) ^ galois.Mul(0x0e, state[4*i+2]) ^ galois.Mul(0x0b, state[4*i+3])
		out[4*i+3] = galois.Mul(0x0b, state[4*i+0]) ^ galois.Mul(0x0d, state[4*i+1]) ^ galois.Mul(0x09, state[4*i+2]) ^ galois.Mul(0x0e, state[4*i+3])
	}

	return out
}

func (e *referenceEngine) EncryptBlock(dst, src []byte) error {
	if len(src) != BlockSize || len(dst) != BlockSize {
		return ErrInvalidBlockSize
	}

	state := make([]byte, BlockSize)
	copy(state, src)

	state = e.addRoundKey(state, 0)

	for round := 1; round < e.nr; round++ {
		state = e.subBytes(state)
		state = shiftRows(state)
		state = mixColumns(state)
		state = e.addRoundKey(state, round)
	}

	state = e.subBytes(state)
	state = shiftRows(state)
	state = e.addRoundKey(state, e.nr)

	copy(dst, state)
	return nil
}

func (e *referenceEngine) DecryptBlock(dst, src []byte) error {
	if len(src) != BlockSize || len(dst) != BlockSize {
		return ErrInvalidBlockSize
	}

	state := make([]byte, BlockSize)
	copy(state, src)

	state = e.addRoundKey(state, e.nr)

	for round := e.nr - 1; round > 0; round-- {
		state = invShiftRows(state)
		state = e.invSubBytes(state)
		state = e.addRoundKey(state, round)
		state = invMixColumns(state)
	}

	state = invShiftRows(state)
	state = e.invSubBytes(state)
	state = e.addRoundKey(state, 0)

	copy(dst, state)
	return nil
}

func (e *referenceEngine) Destroy() {
	for i := range e.key {
		e.key[i] = 0x00
	}
}
