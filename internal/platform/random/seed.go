// Package random draws roll seeds from the operating system's entropy
// source.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed returns a fresh int64 seed backed by crypto/rand. Rolls made
// without an explicit seed use it so results are still reproducible
// once the chosen seed is reported back.
func NewSeed() (int64, error) {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("read seed entropy: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}
