package stream

import (
	"bytes"
	"testing"

	"github.com/wedkarz02/filecrypt/internal/cipher"
	"github.com/wedkarz02/filecrypt/internal/sha512core"
)

func TestCTRCopyRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x13}, 16)
	iv := bytes.Repeat([]byte{0x24}, 16)
	plaintext := bytes.Repeat([]byte{0xde}, 3*BufSize+17)

	encEngine, err := cipher.New(cipher.KindTTable, key)
	if err != nil {
		t.Fatal(err)
	}
	var ciphertext bytes.Buffer
	if err := CTRCopy(encEngine, iv, &ciphertext, bytes.NewReader(plaintext)); err != nil {
		t.Fatal(err)
	}

	decEngine, err := cipher.New(cipher.KindTTable, key)
	if err != nil {
		t.Fatal(err)
	}
	var roundTrip bytes.Buffer
	if err := CTRCopy(decEngine, iv, &roundTrip, bytes.NewReader(ciphertext.Bytes())); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(roundTrip.Bytes(), plaintext) {
		t.Fatalf("round trip across multiple chunk boundaries failed")
	}
}

func TestHashCopyMatchesDirectWrite(t *testing.T) {
	message := bytes.Repeat([]byte{0x9a}, 2*BufSize+5)

	direct := sha512core.New()
	direct.Write(message)
	want := direct.Sum()

	viaCopy := sha512core.New()
	if err := HashCopy(bytes.NewReader(message), viaCopy); err != nil {
		t.Fatal(err)
	}
	got := viaCopy.Sum()

	if got != want {
		t.Fatalf("HashCopy digest = %x, want %x", got, want)
	}
}

func TestHashCopyFansOutToMultipleSinks(t *testing.T) {
	message := []byte("fan out to more than one sink")

	a := sha512core.New()
	b := sha512core.New()
	if err := HashCopy(bytes.NewReader(message), a, b); err != nil {
		t.Fatal(err)
	}

	if a.Sum() != b.Sum() {
		t.Fatalf("sinks diverged despite seeing identical input")
	}
}

func TestTeeCTRCopyFeedsTeeWithCiphertext(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, 16)
	iv := bytes.Repeat([]byte{0x02}, 16)
	plaintext := bytes.Repeat([]byte{0x55}, 1000)

	engine, err := cipher.New(cipher.KindReference, key)
	if err != nil {
		t.Fatal(err)
	}

	var dst bytes.Buffer
	var tee bytes.Buffer
	if err := TeeCTRCopy(engine, iv, &dst, bytes.NewReader(plaintext), &tee); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(dst.Bytes(), tee.Bytes()) {
		t.Fatalf("tee did not receive the same ciphertext written to dst")
	}
}
