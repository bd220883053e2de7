// Package fingerprint derives a short numeric identifier from image bytes.
// The value is the DJB2 hash of the content reduced to its ten lowest
// decimal digits. It is not a cryptographic digest.
package fingerprint

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

const (
	seed    = 5381
	modulus = 10_000_000_000 // ten decimal digits
)

// Bytes returns the fingerprint of b.
func Bytes(b []byte) string {
	h := uint64(seed)
	for _, c := range b {
		h = h<<5 + h + uint64(c)
	}
	return format(h)
}

// Reader returns the fingerprint of everything read from r.
func Reader(r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	h := uint64(seed)
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			return format(h), nil
		}
		if err != nil {
			return "", err
		}
		h = h<<5 + h + uint64(c)
	}
}

// File returns the fingerprint of the file at path.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Reader(f)
}

func format(h uint64) string {
	return fmt.Sprintf("%010d", h%modulus)
}
