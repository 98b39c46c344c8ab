// Package testkey builds a fixed, deterministic RSA test key for use by
// this module's own test suites. It is not part of the public API: this
// core consumes already-generated keys (spec's key-generation non-goal),
// so key construction here exists purely to give the test suites
// something to parse, verify, sign with, and encrypt to.
package testkey

import (
	"math/big"

	"github.com/kayrus/sshrsa/rsakey"
)

// nextPrime returns the smallest prime >= start (start must be odd),
// found by trial increment and Miller-Rabin/Baillie-PSW testing via
// math/big.Int.ProbablyPrime. Deterministic across runs for a fixed
// start.
func nextPrime(start *big.Int) *big.Int {
	n := new(big.Int).Set(start)
	if n.Bit(0) == 0 {
		n.Add(n, big.NewInt(1))
	}
	two := big.NewInt(2)
	for !n.ProbablyPrime(40) {
		n.Add(n, two)
	}
	return n
}

// Generate returns a fully populated, already-verified 1024-bit-class RSA
// key, built from two deterministically-derived primes so that every test
// run (and every implementation following this same recipe) converges on
// the same p, q, n, d, iqmp.
func Generate() *rsakey.RSAKey {
	// Seeds chosen far apart and offset from round powers of two so the
	// resulting primes aren't suspiciously structured.
	pSeed := new(big.Int).Lsh(big.NewInt(1), 521)
	pSeed.Add(pSeed, big.NewInt(747))
	qSeed := new(big.Int).Lsh(big.NewInt(1), 503)
	qSeed.Add(qSeed, big.NewInt(12345))

	p := nextPrime(pSeed)
	q := nextPrime(qSeed)
	if p.Cmp(q) < 0 {
		p, q = q, p
	}

	n := new(big.Int).Mul(p, q)
	e := big.NewInt(65537)

	pm1 := new(big.Int).Sub(p, big.NewInt(1))
	qm1 := new(big.Int).Sub(q, big.NewInt(1))
	phi := new(big.Int).Mul(pm1, qm1)
	d := new(big.Int).ModInverse(e, phi)
	if d == nil {
		panic("testkey: e has no inverse mod phi(n); adjust seeds")
	}

	iqmp := new(big.Int).ModInverse(q, p)
	if iqmp == nil {
		panic("testkey: q has no inverse mod p; adjust seeds")
	}

	k := &rsakey.RSAKey{
		Modulus:         n,
		Exponent:        e,
		Bits:            n.BitLen(),
		Bytes:           (n.BitLen() + 7) / 8,
		PrivateExponent: d,
		P:               p,
		Q:               q,
		Iqmp:            iqmp,
		Comment:         "test-key",
	}

	if err := rsakey.Verify(k); err != nil {
		panic("testkey: generated key failed verification: " + err.Error())
	}

	return k
}
