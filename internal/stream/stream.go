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

// Package stream drives the CTR mode and hash primitives over
// arbitrary-length data a chunk at a time, so a multi-gigabyte file
// never has to live in memory at once. The chunk buffers are
// heap-allocated, not stack arrays, matching the 1 MiB buffer the
// original C stream pipeline malloc'd per file.
package stream

import (
	"fmt"
	"io"

	"github.com/wedkarz02/filecrypt/internal/cipher"
	"github.com/wedkarz02/filecrypt/internal/ctrmode"
	"github.com/wedkarz02/filecrypt/internal/status"
)

// BufSize is the chunk size used for all streaming I/O.
const BufSize = 1 << 20

// CTRCopy reads src, runs it through engine in CTR mode seeded with
// iv, and writes the result to dst. Encryption and decryption are the
// same operation in CTR mode, so this serves both directions.
func CTRCopy(engine cipher.Engine, iv []byte, dst io.Writer, src io.Reader) error {
	mode, err := ctrmode.New(engine, iv)
	if err != nil {
		return fmt.Errorf("%w: %v", status.ErrInvalidArgument, err)
	}

	inBuf := make([]byte, BufSize)
	outBuf := make([]byte, BufSize)

	for {
		n, rerr := src.Read(inBuf)
		if n > 0 {
			if err := mode.Update(outBuf[:n], inBuf[:n]); err != nil {
				return fmt.Errorf("%w: %v", status.ErrInvalidArgument, err)
			}
			if _, werr := dst.Write(outBuf[:n]); werr != nil {
				return fmt.Errorf("%w: %v", status.ErrIOWrite, werr)
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return fmt.Errorf("%w: %v", status.ErrIORead, rerr)
		}
	}
}

// HashCopy reads src to completion, feeding every chunk into each of
// sinks (typically a sha512core.Context or hmacsha512.Context, both
// of which implement io.Writer). It produces no transformed output;
// use it for pure digest/MAC computation over a stream.
func HashCopy(src io.Reader, sinks ...io.Writer) error {
	buf := make([]byte, BufSize)

	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			for _, sink := range sinks {
				if _, err := sink.Write(buf[:n]); err != nil {
					return fmt.Errorf("%w: %v", status.ErrIOWrite, err)
				}
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return fmt.Errorf("%w: %v", status.ErrIORead, rerr)
		}
	}
}

// TeeCTRCopy behaves like CTRCopy but additionally feeds every
// ciphertext chunk written to dst into tee (the running HMAC context
// during envelope encryption), so the envelope codec can compute the
// authentication tag over the ciphertext in the same pass that
// produces it.
func TeeCTRCopy(engine cipher.Engine, iv []byte, dst io.Writer, src io.Reader, tee io.Writer) error {
	mode, err := ctrmode.New(engine, iv)
	if err != nil {
		return fmt.Errorf("%w: %v", status.ErrInvalidArgument, err)
	}

	inBuf := make([]byte, BufSize)
	outBuf := make([]byte, BufSize)

	for {
		n, rerr := src.Read(inBuf)
		if n > 0 {
			if err := mode.Update(outBuf[:n], inBuf[:n]); err != nil {
				return fmt.Errorf("%w: %v", status.ErrInvalidArgument, err)
			}
			if _, werr := dst.Write(outBuf[:n]); werr != nil {
				return fmt.Errorf("%w: %v", status.ErrIOWrite, werr)
			}
			if _, terr := tee.Write(outBuf[:n]); terr != nil {
				return fmt.Errorf("%w: %v", status.ErrIOWrite, terr)
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return fmt.Errorf("%w: %v", status.ErrIORead, rerr)
		}
	}
}
