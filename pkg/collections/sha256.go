package collections

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// Sha256 computes the sha256 of the given reader
func Sha256(in io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, in); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Sha256Bytes computes the sha256 of an in-memory buffer.
func Sha256Bytes(data []byte) string {
	// reading from a bytes.Reader never fails
	sum, _ := Sha256(bytes.NewReader(data))
	return sum
}
