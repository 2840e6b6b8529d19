package hashutil

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// HashBytes returns the BLAKE3-256 digest of data as a hex string.
func HashBytes(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ShortHash returns the first n hex characters of the digest of data.
// A non-positive n or one larger than the digest returns the full digest.
func ShortHash(data []byte, n int) string {
	full := HashBytes(data)
	if n <= 0 || n >= len(full) {
		return full
	}
	return full[:n]
}
