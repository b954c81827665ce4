package swfkit

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest is a BLAKE3-256 hash of a movie's content.
type Digest [32]byte

// String returns the digest in lowercase hex.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Digest hashes the movie as it would be written uncompressed. A movie and
// its compressed copy therefore share a digest.
func (m *Movie) Digest() (Digest, error) {
	hasher := blake3.New()
	if err := m.encode(hasher, FormatUncompressed); err != nil {
		return Digest{}, err
	}
	var d Digest
	copy(d[:], hasher.Sum(nil))
	return d, nil
}
