// Package rsaprim is the RSA primitive engine: plain modular
// exponentiation for public operations, and blinded CRT modular
// exponentiation for private operations. The private operation derives
// its blinding factor deterministically from the private key and the
// input, by repeated SHA-512 hashing, rather than from system randomness
// — see deriveBlind below for the exact byte layout, which must match
// bit-for-bit to interoperate with any external test harness.
package rsaprim

import (
	"crypto/sha512"
	"math/big"

	"github.com/kayrus/sshrsa/rsakey"
	"github.com/kayrus/sshrsa/sshwire"
)

var one = big.NewInt(1)
var zero = big.NewInt(0)

// Public computes m^e mod n. All operands are public, so no timing
// mitigation is required.
func Public(m, e, n *big.Int) *big.Int {
	return new(big.Int).Exp(m, e, n)
}

// CRTModPow computes base^exp mod n given n = p*q and iqmp = q^-1 mod p,
// by reducing the exponent mod p-1 and q-1, exponentiating separately
// modulo p and q, and recombining via the Chinese Remainder Theorem.
func CRTModPow(base, exp, n, p, q, iqmp *big.Int) *big.Int {
	pm1 := new(big.Int).Sub(p, one)
	qm1 := new(big.Int).Sub(q, one)

	pexp := new(big.Int).Mod(exp, pm1)
	qexp := new(big.Int).Mod(exp, qm1)

	presult := new(big.Int).Exp(base, pexp, p)
	qresult := new(big.Int).Exp(base, qexp, q)

	// We want a value congruent to qresult mod q and presult mod p.
	// iqmp*q is congruent to 1 mod p and 0 mod q, so start from qresult
	// (already correct mod both primes trivially mod q) and add
	// (presult-qresult)*(iqmp*q), which nudges it to presult mod p
	// without disturbing its residue mod q.
	if presult.Cmp(qresult) < 0 {
		presult = new(big.Int).Add(presult, p)
	}
	diff := new(big.Int).Sub(presult, qresult)
	multiplier := new(big.Int).Mul(iqmp, q)
	ret := new(big.Int).Mul(multiplier, diff)
	ret.Add(ret, qresult)
	ret.Mod(ret, n)

	return ret
}

// deriveBlind produces a blinding value r chosen uniformly from (0, n),
// with a multiplicative inverse mod n, by hashing the fixed label
// "RSA deterministic blinding", a 32-bit hashseq counter, and the SSH-2
// mpint encoding of d to seed a working digest that is itself re-hashed
// with the SSH-2 mpint encoding of x. Output bits are consumed LSB-first
// per byte, filling r from the top set bit of n downward; whenever the
// digest is exhausted, hashseq increments and a fresh working digest is
// derived. Candidates outside (0, n) or without an inverse are rejected
// by continuing to consume bits (re-deriving as needed) until one is
// found. Returns r and r^-1 mod n.
func deriveBlind(d, n, x *big.Int) (r, rInv *big.Int) {
	hashseq := uint32(0)
	var digest [64]byte
	digestUsed := len(digest)

	nextByte := func() byte {
		if digestUsed >= len(digest) {
			seed := sha512.New()
			seed.Write([]byte("RSA deterministic blinding"))
			seedSink := sshwire.NewSink()
			seedSink.WriteUint32(hashseq)
			seedSink.WriteSSH2MPInt(d)
			seed.Write(seedSink.Bytes())
			var seedDigest [64]byte
			copy(seedDigest[:], seed.Sum(nil))
			hashseq++

			work := sha512.New()
			work.Write(seedDigest[:])
			workSink := sshwire.NewSink()
			workSink.WriteSSH2MPInt(x)
			work.Write(workSink.Bytes())
			copy(digest[:], work.Sum(nil))
			digestUsed = 0
		}
		b := digest[digestUsed]
		digestUsed++
		return b
	}

	for {
		bits := n.BitLen()
		candidate := new(big.Int).Set(n)
		byteVal := byte(0)
		bitsLeft := 0
		for i := bits - 1; i >= 0; i-- {
			if bitsLeft <= 0 {
				byteVal = nextByte()
				bitsLeft = 8
			}
			v := byteVal & 1
			byteVal >>= 1
			bitsLeft--
			candidate.SetBit(candidate, i, uint(v))
		}

		if candidate.Cmp(zero) <= 0 || candidate.Cmp(n) >= 0 {
			continue
		}
		inv := new(big.Int).ModInverse(candidate, n)
		if inv == nil {
			continue
		}
		return candidate, inv
	}
}

// Private computes x^d mod n for a fully verified private key, blinding
// the input with a deterministically-derived random pair (r, r^e) so
// that timing observed during the CRT modpow carries no information
// about x beyond what the public modulus already reveals.
func Private(x *big.Int, key *rsakey.RSAKey) *big.Int {
	if !key.IsPrivate() {
		panic("rsaprim: private operation requires a verified private key")
	}

	r, rInv := deriveBlind(key.PrivateExponent, key.Modulus, x)

	rEncrypted := CRTModPow(r, key.Exponent, key.Modulus, key.P, key.Q, key.Iqmp)
	xBlinded := new(big.Int).Mul(x, rEncrypted)
	xBlinded.Mod(xBlinded, key.Modulus)

	yBlinded := CRTModPow(xBlinded, key.PrivateExponent, key.Modulus, key.P, key.Q, key.Iqmp)

	y := new(big.Int).Mul(yBlinded, rInv)
	y.Mod(y, key.Modulus)

	return y
}
