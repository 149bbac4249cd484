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

// Package filecrypt provides authenticated file encryption and
// cryptographic hashing built on a from-scratch AES and SHA-512 core.
//
// Three operations are exposed:
//
//   - Plain AES-CTR encryption/decryption of a file under a
//     caller-supplied key and IV (EncryptCTRFile/DecryptCTRFile). The
//     IV is never stored alongside the output; callers own IV
//     management.
//   - SHA-512 and HMAC-SHA-512 file digests (HashSHA512File,
//     HMACSHA512File).
//   - An authenticated encrypt-then-MAC envelope format
//     (EncryptEnvelope/DecryptEnvelope) that generates its own random
//     IV, stores it with the ciphertext, and verifies a HMAC-SHA-512
//     tag before any plaintext is written back out.
//
// Two interchangeable AES engines are available through EngineKind: a
// standards-faithful reference implementation built directly from
// GF(2^8) arithmetic, and a T-table-driven engine that trades memory
// for speed. Both implement the same block-cipher contract and are
// observationally identical on every valid input; callers choose
// based on a memory/speed tradeoff, never on correctness.
package filecrypt
