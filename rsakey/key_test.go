package rsakey_test

import (
	"math/big"
	"testing"

	"github.com/kayrus/sshrsa/internal/testkey"
	"github.com/kayrus/sshrsa/rsakey"
)

func TestVerifyDetectsBadModulus(t *testing.T) {
	k := testkey.Generate()
	bad := *k
	bad.Modulus = new(big.Int).Add(k.Modulus, big.NewInt(2))

	if err := rsakey.Verify(&bad); err == nil {
		t.Fatal("expected verification failure for tampered modulus")
	}
}

func TestVerifyDetectsBadExponentPair(t *testing.T) {
	k := testkey.Generate()
	bad := *k
	bad.PrivateExponent = new(big.Int).Add(k.PrivateExponent, big.NewInt(2))

	if err := rsakey.Verify(&bad); err == nil {
		t.Fatal("expected verification failure for tampered private exponent")
	}
}

func TestVerifyRejectsIncompleteKey(t *testing.T) {
	k := &rsakey.RSAKey{Modulus: big.NewInt(35), Exponent: big.NewInt(5)}
	if err := rsakey.Verify(k); err == nil {
		t.Fatal("expected verification failure for a public-only key")
	}
}

func TestVerifyCanonicalizesEquivalently(t *testing.T) {
	k := testkey.Generate()

	swapped := &rsakey.RSAKey{
		Modulus:         new(big.Int).Set(k.Modulus),
		Exponent:        new(big.Int).Set(k.Exponent),
		PrivateExponent: new(big.Int).Set(k.PrivateExponent),
		P:               new(big.Int).Set(k.Q),
		Q:               new(big.Int).Set(k.P),
		Iqmp:            big.NewInt(1), // wrong on purpose; Verify must recompute it
	}
	if err := rsakey.Verify(swapped); err != nil {
		t.Fatalf("Verify on swapped key: %v", err)
	}

	if swapped.P.Cmp(k.P) != 0 || swapped.Q.Cmp(k.Q) != 0 {
		t.Fatal("expected canonical p, q to match the originally-ordered key")
	}
	if swapped.Iqmp.Cmp(k.Iqmp) != 0 {
		t.Fatal("expected canonical iqmp to match the originally-ordered key")
	}
}

func TestZeroizeClearsPrivateFields(t *testing.T) {
	k := testkey.Generate()
	k.Zeroize()

	if k.PrivateExponent != nil || k.P != nil || k.Q != nil || k.Iqmp != nil {
		t.Fatal("expected all private fields to be nil after Zeroize")
	}
	if k.Comment != "" {
		t.Fatal("expected comment to be cleared after Zeroize")
	}
}
