// Copyright (c) 2023 Paweł Rybak
//
// This package has been heavily inspired by Sam Trenholme's blog.
// I highly recommend giving it a read:
// https://www.samiam.org/key-schedule.html

package cipher

import (
	"github.com/wedkarz02/filecrypt/internal/galois"
	"github.com/wedkarz02/filecrypt/internal/sbox"
)

type word [WordSize]byte

// rcon returns the round constant word for schedule round idx
// (1-indexed), doubling in GF(2^8) starting from 0x01.
//
// https://en.wikipedia.org/wiki/AES_key_schedule#Round_constants
func rcon(idx int) byte {
	if idx == 0 {
		return 0
	}

	var r byte = 1
	for idx > 1 {
		r = galois.Mul(r, 2)
		idx--
	}

	return r
}

func rotWord(w word) word {
	return word{w[1], w[2], w[3], w[0]}
}

func subWord(w word, sb *sbox.Table) word {
	return word{sb[w[0]], sb[w[1]], sb[w[2]], sb[w[3]]}
}

// expandWords runs the standard AES key schedule and returns the first
// numWords schedule words (each WordSize bytes), derived from key.
// nk is the key length in words and nr the round count (nr = nk + 6).
//
// https://en.wikipedia.org/wiki/AES_key_schedule
func expandWords(key []byte, nk, nr int, numWords int, sb *sbox.Table) []word {
	words := make([]word, numWords)

	for i := 0; i < nk && i < numWords; i++ {
		copy(words[i][:], key[i*WordSize:(i+1)*WordSize])
	}

	for i := nk; i < numWords; i++ {
		temp := words[i-1]

		switch {
		case i%nk == 0:
			temp = subWord(rotWord(temp), sb)
			temp[0] ^= rcon(i / nk)
		case nk > 6 && i%nk == 4:
			temp = subWord(temp, sb)
		}

		for b := 0; b < WordSize; b++ {
			words[i][b] = words[i-nk][b] ^ temp[b]
		}
	}

	return words
}

// roundKeyBytes flattens schedule words [round*4, round*4+4) into a
// 16-byte round key.
func roundKeyBytes(words []word, round int) []byte {
	rk := make([]byte, BlockSize)
	for w := 0; w < 4; w++ {
		copy(rk[w*WordSize:(w+1)*WordSize], words[round*4+w][:])
	}
	return rk
}
