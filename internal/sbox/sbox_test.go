package sbox

import "testing"

// Spot-check a handful of well-known FIPS-197 S-box entries.
func TestNewSBoxKnownEntries(t *testing.T) {
	sbox := New()

	tests := []struct {
		x, want byte
	}{
		{0x00, 0x63},
		{0x01, 0x7c},
		{0x53, 0xed},
		{0xff, 0x16},
	}

	for _, tt := range tests {
		if got := sbox[tt.x]; got != tt.want {
			t.Errorf("sbox[%#x] = %#x, want %#x", tt.x, got, tt.want)
		}
	}
}

func TestInverseRoundTrips(t *testing.T) {
	sbox := New()
	invsbox := Inverse(sbox)

	for x := 0; x < 256; x++ {
		if invsbox[sbox[x]] != byte(x) {
			t.Fatalf("invsbox[sbox[%#x]] != %#x", x, x)
		}
	}
}
