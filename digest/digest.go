package digest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

// Size is the length of a Digest in bytes.
const Size = sha256.Size

// ErrUnhashable reports a value with no stable canonical encoding.
var ErrUnhashable = errors.New("digest: unhashable value")

// Digest is an opaque fixed-length content hash, totally ordered by byte
// value. Digests are produced only by Hash and the combinators in this
// package.
type Digest [Size]byte

// Hex returns the lowercase hex encoding of the digest.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

func (d Digest) String() string {
	return d.Hex()
}

// Compare returns -1, 0 or 1 ordering digests bytewise.
func (d Digest) Compare(other Digest) int {
	return bytes.Compare(d[:], other[:])
}

// Less reports whether d orders before other.
func (d Digest) Less(other Digest) bool {
	return d.Compare(other) < 0
}

// ParseHex decodes a digest from its hex encoding.
func ParseHex(s string) (Digest, error) {
	var d Digest
	b, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("digest: invalid hex encoding: %w", err)
	}
	if len(b) != Size {
		return d, fmt.Errorf("digest: invalid length %d, want %d", len(b), Size)
	}
	copy(d[:], b)
	return d, nil
}

// Hashable is the opt-in escape hatch for user-defined types. A value
// implementing Hashable supplies its own canonical digest, which Hash uses
// verbatim, bypassing kind dispatch.
type Hashable interface {
	CanonicalDigest() (Digest, error)
}
