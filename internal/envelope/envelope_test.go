package envelope

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/wedkarz02/filecrypt/internal/cipher"
	"github.com/wedkarz02/filecrypt/internal/status"
)

func writeTempFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	dir := t.TempDir()
	aesKey := bytes.Repeat([]byte{0x11}, 32)
	hmacKey := bytes.Repeat([]byte{0x22}, 64)
	plaintext := bytes.Repeat([]byte{0x5a}, 5000)

	inPath := writeTempFile(t, dir, "plain.bin", plaintext)
	envPath := filepath.Join(dir, "envelope.bin")
	outPath := filepath.Join(dir, "roundtrip.bin")

	if err := Encrypt(cipher.KindTTable, inPath, envPath, aesKey, hmacKey); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	authCalled := false
	err := Decrypt(cipher.KindTTable, envPath, outPath, aesKey, hmacKey, func() bool {
		authCalled = true
		return true
	})
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !authCalled {
		t.Fatal("authenticated callback was not invoked")
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatal("round-tripped plaintext does not match original")
	}
}

func TestDecryptDetectsTampering(t *testing.T) {
	dir := t.TempDir()
	aesKey := bytes.Repeat([]byte{0x33}, 16)
	hmacKey := bytes.Repeat([]byte{0x44}, 32)

	inPath := writeTempFile(t, dir, "plain.bin", []byte("attack at dawn"))
	envPath := filepath.Join(dir, "envelope.bin")
	outPath := filepath.Join(dir, "out.bin")

	if err := Encrypt(cipher.KindReference, inPath, envPath, aesKey, hmacKey); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(envPath)
	if err != nil {
		t.Fatal(err)
	}
	raw[ivSize] ^= 0x01 // flip a ciphertext bit
	if err := os.WriteFile(envPath, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	err = Decrypt(cipher.KindReference, envPath, outPath, aesKey, hmacKey, func() bool {
		t.Fatal("authenticated callback must not run when the tag fails to verify")
		return true
	})
	if err != status.ErrAuthenticationFailure {
		t.Fatalf("expected ErrAuthenticationFailure, got %v", err)
	}
	if _, statErr := os.Stat(outPath); statErr == nil {
		t.Fatal("outPath must not be created when authentication fails")
	}
}

func TestDecryptWrongKeyFailsAuthentication(t *testing.T) {
	dir := t.TempDir()
	aesKey := bytes.Repeat([]byte{0x55}, 16)
	hmacKey := bytes.Repeat([]byte{0x66}, 32)
	wrongHmacKey := bytes.Repeat([]byte{0x77}, 32)

	inPath := writeTempFile(t, dir, "plain.bin", []byte("some secret data"))
	envPath := filepath.Join(dir, "envelope.bin")
	outPath := filepath.Join(dir, "out.bin")

	if err := Encrypt(cipher.KindTTable, inPath, envPath, aesKey, hmacKey); err != nil {
		t.Fatal(err)
	}

	err := Decrypt(cipher.KindTTable, envPath, outPath, aesKey, wrongHmacKey, nil)
	if err != status.ErrAuthenticationFailure {
		t.Fatalf("expected ErrAuthenticationFailure, got %v", err)
	}
}

func TestDecryptHonorsCancelledAfterAuth(t *testing.T) {
	dir := t.TempDir()
	aesKey := bytes.Repeat([]byte{0x88}, 16)
	hmacKey := bytes.Repeat([]byte{0x99}, 32)

	inPath := writeTempFile(t, dir, "plain.bin", []byte("payload"))
	envPath := filepath.Join(dir, "envelope.bin")
	outPath := filepath.Join(dir, "out.bin")

	if err := Encrypt(cipher.KindReference, inPath, envPath, aesKey, hmacKey); err != nil {
		t.Fatal(err)
	}

	err := Decrypt(cipher.KindReference, envPath, outPath, aesKey, hmacKey, func() bool { return false })
	if err != status.ErrCancelledAfterAuth {
		t.Fatalf("expected ErrCancelledAfterAuth, got %v", err)
	}
	if _, statErr := os.Stat(outPath); statErr == nil {
		t.Fatal("outPath must not be created when the caller declines after auth")
	}
}

func TestDecryptRejectsShortEnvelope(t *testing.T) {
	dir := t.TempDir()
	envPath := writeTempFile(t, dir, "short.bin", []byte("way too short"))
	outPath := filepath.Join(dir, "out.bin")

	err := Decrypt(cipher.KindReference, envPath, outPath, bytes.Repeat([]byte{1}, 16), bytes.Repeat([]byte{2}, 32), nil)
	if err != status.ErrShortEnvelope {
		t.Fatalf("expected ErrShortEnvelope, got %v", err)
	}
}

func TestEncryptProducesDistinctIVsEachTime(t *testing.T) {
	dir := t.TempDir()
	aesKey := bytes.Repeat([]byte{0x01}, 16)
	hmacKey := bytes.Repeat([]byte{0x02}, 32)

	inPath := writeTempFile(t, dir, "plain.bin", []byte("same plaintext both times"))
	envPath1 := filepath.Join(dir, "env1.bin")
	envPath2 := filepath.Join(dir, "env2.bin")

	if err := Encrypt(cipher.KindReference, inPath, envPath1, aesKey, hmacKey); err != nil {
		t.Fatal(err)
	}
	if err := Encrypt(cipher.KindReference, inPath, envPath2, aesKey, hmacKey); err != nil {
		t.Fatal(err)
	}

	raw1, _ := os.ReadFile(envPath1)
	raw2, _ := os.ReadFile(envPath2)

	if bytes.Equal(raw1[:ivSize], raw2[:ivSize]) {
		t.Fatal("two independent encryptions produced the same IV")
	}
	if bytes.Equal(raw1, raw2) {
		t.Fatal("two independent encryptions produced identical envelopes")
	}
}
