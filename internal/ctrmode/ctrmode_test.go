package ctrmode

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/wedkarz02/filecrypt/internal/cipher"
)

func hb(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex literal: %v", err)
	}
	return b
}

// NIST SP 800-38A F.5: CTR-AES{128,192,256}.Encrypt known-answer tests.
func TestNISTCTRVectors(t *testing.T) {
	iv := "f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff"
	plaintext := "6bc1bee22e409f96e93d7e117393172a" +
		"ae2d8a571e03ac9c9eb76fac45af8e51" +
		"30c81c46a35ce411e5fbc1191a0a52ef" +
		"f69f2445df4f9b17ad2b417be66c3710"

	tests := []struct {
		name       string
		key        string
		ciphertext string
	}{
		{
			"AES-128",
			"2b7e151628aed2a6abf7158809cf4f3c",
			"874d6191b620e3261bef6864990db6ce" +
				"9806f66b7970fdff8617187bb9fffdff" +
				"5ae4df3edbd5d35e5b4f09020db03eab" +
				"1e031dda2fbe03d1792170a0f3009cee",
		},
		{
			"AES-192",
			"8e73b0f7da0e6452c810f32b809079e562f8ead2522c6b7b",
			"1abc932417521ca24f2b0459fe7e6e0b" +
				"090339ec0aa6faefd5ccc2c6f4ce8e94" +
				"1e36b26bd1ebc670d1bd1d665620abf7" +
				"4f78a7f6d29809585a97daec58c6b050",
		},
		{
			"AES-256",
			"603deb1015ca71be2b73aef0857d77811f352c073b6108d72d9810a30914dff4",
			"601ec313775789a5b7a7f504bbf3d228" +
				"f443e3ca4d62b59aca84e990cacaf5c5" +
				"2b0930daa23de94ce87017ba2d84988d" +
				"dfc9c58db67aada613c2dd08457941a6",
		},
	}

	for _, kind := range []cipher.Kind{cipher.KindReference, cipher.KindTTable} {
		for _, tt := range tests {
			key := hb(t, tt.key)
			pt := hb(t, plaintext)
			want := hb(t, tt.ciphertext)

			engine, err := cipher.New(kind, key)
			if err != nil {
				t.Fatalf("%s: New engine: %v", tt.name, err)
			}

			mode, err := New(engine, hb(t, iv))
			if err != nil {
				t.Fatalf("%s: New mode: %v", tt.name, err)
			}

			got := make([]byte, len(pt))
			if err := mode.Update(got, pt); err != nil {
				t.Fatalf("%s: Update: %v", tt.name, err)
			}

			if !bytes.Equal(got, want) {
				t.Fatalf("%s (kind=%d): CTR output = %x, want %x", tt.name, kind, got, want)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x11}, 16)
	iv := bytes.Repeat([]byte{0x22}, 16)

	engine, _ := cipher.New(cipher.KindReference, key)
	encMode, _ := New(engine, iv)

	plaintext := []byte("the quick brown fox jumps over the lazy dog, thirty-seven times")
	ciphertext := make([]byte, len(plaintext))
	if err := encMode.Update(ciphertext, plaintext); err != nil {
		t.Fatal(err)
	}

	decEngine, _ := cipher.New(cipher.KindReference, key)
	decMode, _ := New(decEngine, iv)

	roundTrip := make([]byte, len(ciphertext))
	if err := decMode.Update(roundTrip, ciphertext); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(roundTrip, plaintext) {
		t.Fatalf("round trip mismatch: got %q, want %q", roundTrip, plaintext)
	}
}

// Splitting one Update call into several must be equivalent to a
// single call over the concatenated input, since counter state
// persists across calls.
func TestChunkedUpdateMatchesSingleCall(t *testing.T) {
	key := bytes.Repeat([]byte{0x99}, 32)
	iv := bytes.Repeat([]byte{0x01}, 16)
	plaintext := bytes.Repeat([]byte{0xab}, 100)

	e1, _ := cipher.New(cipher.KindTTable, key)
	m1, _ := New(e1, iv)
	whole := make([]byte, len(plaintext))
	if err := m1.Update(whole, plaintext); err != nil {
		t.Fatal(err)
	}

	e2, _ := cipher.New(cipher.KindTTable, key)
	m2, _ := New(e2, iv)
	chunked := make([]byte, len(plaintext))

	chunks := []int{1, 15, 16, 17, 31, 20}
	offset := 0
	for _, c := range chunks {
		end := offset + c
		if end > len(plaintext) {
			end = len(plaintext)
		}
		if err := m2.Update(chunked[offset:end], plaintext[offset:end]); err != nil {
			t.Fatal(err)
		}
		offset = end
	}

	if !bytes.Equal(whole, chunked) {
		t.Fatalf("chunked update diverged from single-call update")
	}
}

func TestCounterWrapsAround(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, 16)
	iv := bytes.Repeat([]byte{0xff}, 16)

	engine, _ := cipher.New(cipher.KindReference, key)
	mode, _ := New(engine, iv)

	plaintext := make([]byte, 32) // two blocks: advances counter from all-0xff to all-0x00 then to 1
	out := make([]byte, 32)
	if err := mode.Update(out, plaintext); err != nil {
		t.Fatal(err)
	}

	if mode.counter != [16]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1} {
		t.Fatalf("counter did not wrap correctly, got %x", mode.counter)
	}
}

func TestZeroLengthUpdateIsNoOp(t *testing.T) {
	key := bytes.Repeat([]byte{0x02}, 16)
	iv := bytes.Repeat([]byte{0x03}, 16)

	engine, _ := cipher.New(cipher.KindReference, key)
	mode, _ := New(engine, iv)

	before := mode.counter
	if err := mode.Update(nil, nil); err != nil {
		t.Fatal(err)
	}
	if mode.counter != before {
		t.Fatalf("zero-length Update must not advance the counter")
	}
}
