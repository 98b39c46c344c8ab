// Package hashalg is the polymorphic hash adapter the RSA and HMAC layers
// are written against: a descriptor carrying digest length, block length,
// a text name, and a constructor, over the standard library's hash.Hash.
package hashalg

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
)

// Algorithm describes one hash primitive. New returns a fresh hash.Hash
// instance each call, matching the C adapter's `init` function pointer;
// absorbing is done via the returned hash.Hash's io.Writer interface
// ("sink"); Sum via hash.Hash.Sum ("final"); cloning is handled by the
// Copy function because the standard hash.Hash interface does not itself
// expose state duplication.
type Algorithm struct {
	Name     string
	HashLen  int
	BlockLen int
	New      func() hash.Hash
	// Copy clones a live state produced by New (or a prior Copy), so that
	// HMAC can keep long-lived outer/inner states and branch a fresh live
	// state per message without re-absorbing the key pad.
	Copy func(hash.Hash) hash.Hash
}

// binaryState is satisfied by every standard-library hash.Hash
// implementation (md5, sha1, sha256, sha512): none exposes a public Clone,
// so cloning is done via the encoding.BinaryMarshaler/Unmarshaler pair
// they all implement rather than by re-absorbing input.
type binaryState interface {
	hash.Hash
	MarshalBinary() ([]byte, error)
}

func copyViaBinaryState(h hash.Hash) hash.Hash {
	bs, ok := h.(binaryState)
	if !ok {
		panic("hashalg: hash implementation does not support state cloning")
	}
	state, err := bs.MarshalBinary()
	if err != nil {
		panic("hashalg: failed to snapshot hash state: " + err.Error())
	}
	out := newZeroValueLike(h)
	um, ok := out.(interface{ UnmarshalBinary([]byte) error })
	if !ok {
		panic("hashalg: hash implementation does not support state restore")
	}
	if err := um.UnmarshalBinary(state); err != nil {
		panic("hashalg: failed to restore hash state: " + err.Error())
	}
	return out
}

// newZeroValueLike constructs a fresh hash of the same algorithm as h by
// dispatching on the digest size of the algorithms this package registers.
// It exists because hash.Hash alone offers no "New-from-same-algorithm"
// operation.
func newZeroValueLike(h hash.Hash) hash.Hash {
	switch h.(type) {
	case interface{ Size() int }:
		switch h.Size() {
		case md5.Size:
			return md5.New()
		case sha1.Size:
			return sha1.New()
		case sha256.Size:
			return sha256.New()
		case sha512.Size:
			return sha512.New()
		}
	}
	panic("hashalg: unknown hash implementation")
}

// MD5 is the MD5 descriptor, used by HMAC-MD5.
var MD5 = &Algorithm{
	Name:     "md5",
	HashLen:  md5.Size,
	BlockLen: md5.BlockSize,
	New:      func() hash.Hash { return md5.New() },
	Copy:     copyViaBinaryState,
}

// SHA1 is the SHA-1 descriptor, used by rsa1024-sha1 and HMAC-SHA1.
var SHA1 = &Algorithm{
	Name:     "sha1",
	HashLen:  sha1.Size,
	BlockLen: sha1.BlockSize,
	New:      func() hash.Hash { return sha1.New() },
	Copy:     copyViaBinaryState,
}

// SHA256 is the SHA-256 descriptor, used by rsa2048-sha256 OAEP and
// HMAC-SHA2-256.
var SHA256 = &Algorithm{
	Name:     "sha256",
	HashLen:  sha256.Size,
	BlockLen: sha256.BlockSize,
	New:      func() hash.Hash { return sha256.New() },
	Copy:     copyViaBinaryState,
}

// SHA512 is the SHA-512 descriptor. The deterministic blinding RNG in
// rsaprim calls crypto/sha512 directly rather than through it.
var SHA512 = &Algorithm{
	Name:     "sha512",
	HashLen:  sha512.Size,
	BlockLen: sha512.BlockSize,
	New:      func() hash.Hash { return sha512.New() },
	Copy:     copyViaBinaryState,
}
