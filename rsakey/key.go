// Package rsakey is the RSA key record: the in-memory data model, its
// invariant verifier, and the wire codecs for the three formats an SSH
// client needs to read and write (SSH-1 legacy, SSH-2 "ssh-rsa", and
// OpenSSH's private-key field ordering), plus fingerprinting and the
// human-readable "0x<e>,0x<n>" format.
package rsakey

import (
	"errors"
	"fmt"
	"math/big"
)

// Errors returned by the parsing and verification routines. Callers
// discard a key on any of these.
var (
	ErrTruncated      = errors.New("rsakey: truncated input")
	ErrAlgoMismatch   = errors.New("rsakey: algorithm name mismatch")
	ErrZeroModulus    = errors.New("rsakey: modulus has zero bit count")
	ErrTrailingBytes  = errors.New("rsakey: trailing bytes after key")
	ErrMissingField   = errors.New("rsakey: required field missing")
	ErrNotFactored    = errors.New("rsakey: n is not equal to p*q")
	ErrExponentNotInv = errors.New("rsakey: e*d is not congruent to 1 mod (p-1) or (q-1)")
	ErrNoInverse      = errors.New("rsakey: q has no inverse modulo p")
	ErrIqmpMismatch   = errors.New("rsakey: iqmp*q is not congruent to 1 mod p")
)

// Order selects which SSH-1 mpint comes first in a public blob.
type Order int

const (
	ExponentFirst Order = iota
	ModulusFirst
)

// RSAKey is the in-memory RSA key record described in spec §3. Private
// fields are nil on a public-only key. Bits and Bytes are populated by the
// SSH-1 codec (see ssh1.go); callers building a key by hand for SSH-2-only
// use may leave them zero.
type RSAKey struct {
	Modulus  *big.Int
	Exponent *big.Int

	// Bits is the nominal bit length recorded in the SSH-1 length word;
	// it may exceed the true bit count of Modulus.
	Bits int
	// Bytes is the byte length used for SSH-1 PKCS#1 v1.5 padding: the
	// number of bytes the modulus mpint occupied, minus two (see the Open
	// Question preserved verbatim in ssh1.go).
	Bytes int

	PrivateExponent *big.Int
	P               *big.Int
	Q               *big.Int
	Iqmp            *big.Int

	Comment string
}

// IsPrivate reports whether k carries private material.
func (k *RSAKey) IsPrivate() bool {
	return k.PrivateExponent != nil && k.P != nil && k.Q != nil && k.Iqmp != nil
}

// Zeroize overwrites every private bignum field's backing storage and
// clears the comment, mirroring freersakey's release of secret material.
// The key must not be used afterwards.
func (k *RSAKey) Zeroize() {
	zero := func(x *big.Int) {
		if x != nil {
			words := x.Bits()
			for i := range words {
				words[i] = 0
			}
			x.SetInt64(0)
		}
	}
	zero(k.PrivateExponent)
	zero(k.P)
	zero(k.Q)
	zero(k.Iqmp)
	k.PrivateExponent, k.P, k.Q, k.Iqmp = nil, nil, nil, nil
	k.Comment = ""
}

// Verify checks the four invariants of spec §4.2 against a fully
// populated private key, canonicalizing p > q (and recomputing Iqmp) if
// the input violates that order. It mutates k on success; on failure k is
// left with no guarantee about its field values and the caller must
// discard it.
func Verify(k *RSAKey) error {
	if !k.IsPrivate() {
		return fmt.Errorf("rsakey: verify: %w", ErrMissingField)
	}

	n := new(big.Int).Mul(k.P, k.Q)
	if n.Cmp(k.Modulus) != 0 {
		return ErrNotFactored
	}

	pm1 := new(big.Int).Sub(k.P, big.NewInt(1))
	ed := new(big.Int).Mul(k.Exponent, k.PrivateExponent)
	ed.Mod(ed, pm1)
	if ed.Cmp(big.NewInt(1)) != 0 {
		return ErrExponentNotInv
	}

	qm1 := new(big.Int).Sub(k.Q, big.NewInt(1))
	ed = new(big.Int).Mul(k.Exponent, k.PrivateExponent)
	ed.Mod(ed, qm1)
	if ed.Cmp(big.NewInt(1)) != 0 {
		return ErrExponentNotInv
	}

	// Canonicalize: some key generators in the wild produce p < q.
	// Flip and recompute iqmp rather than reject.
	if k.P.Cmp(k.Q) <= 0 {
		k.P, k.Q = k.Q, k.P
		inv := new(big.Int).ModInverse(k.Q, k.P)
		if inv == nil {
			return ErrNoInverse
		}
		k.Iqmp = inv
	}

	check := new(big.Int).Mul(k.Iqmp, k.Q)
	check.Mod(check, k.P)
	if check.Cmp(big.NewInt(1)) != 0 {
		return ErrIqmpMismatch
	}

	return nil
}
