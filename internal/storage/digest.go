package storage

import (
	"encoding/hex"
	"hash"

	"lukechampine.com/blake3"
)

// digestSize is the BLAKE3 output length in bytes.
const digestSize = 32

func newDigest() hash.Hash {
	return blake3.New(digestSize, nil)
}

func encodeDigest(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}
