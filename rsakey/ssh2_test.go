package rsakey_test

import (
	"math/big"
	"testing"

	"github.com/kayrus/sshrsa/internal/testkey"
	"github.com/kayrus/sshrsa/rsakey"
	"github.com/kayrus/sshrsa/sshwire"
)

func TestSSH2PublicBlobRoundTrip(t *testing.T) {
	k := testkey.Generate()
	blob := rsakey.SSH2WritePublicBlob(k)

	got := &rsakey.RSAKey{}
	if err := rsakey.SSH2ReadPublicBlob(blob, got); err != nil {
		t.Fatalf("SSH2ReadPublicBlob: %v", err)
	}
	if got.Modulus.Cmp(k.Modulus) != 0 || got.Exponent.Cmp(k.Exponent) != 0 {
		t.Fatal("round trip mismatch")
	}

	bits, err := rsakey.SSH2PublicBits(blob)
	if err != nil {
		t.Fatalf("SSH2PublicBits: %v", err)
	}
	if bits != k.Modulus.BitLen() {
		t.Fatalf("bits = %d, want %d", bits, k.Modulus.BitLen())
	}
}

func TestSSH2ReadPublicBlobWrongAlgo(t *testing.T) {
	s := sinkString(t, "ssh-dss")
	if err := rsakey.SSH2ReadPublicBlob(s, &rsakey.RSAKey{}); err == nil {
		t.Fatal("expected algorithm mismatch error")
	}
}

func TestSSH2CreateKeyRoundTrip(t *testing.T) {
	k := testkey.Generate()
	pub := rsakey.SSH2WritePublicBlob(k)
	priv := rsakey.SSH2WritePrivateBlob(k)

	got, err := rsakey.SSH2CreateKey(pub, priv)
	if err != nil {
		t.Fatalf("SSH2CreateKey: %v", err)
	}
	if got.Modulus.Cmp(k.Modulus) != 0 || got.PrivateExponent.Cmp(k.PrivateExponent) != 0 {
		t.Fatal("round trip mismatch")
	}
	if got.P.Cmp(got.Q) <= 0 {
		t.Fatal("expected p > q after verify")
	}
}

func TestOpenSSHRoundTrip(t *testing.T) {
	k := testkey.Generate()
	blob := rsakey.OpenSSHWriteKey(k)

	got, err := rsakey.OpenSSHReadKey(blob)
	if err != nil {
		t.Fatalf("OpenSSHReadKey: %v", err)
	}
	if got.Modulus.Cmp(k.Modulus) != 0 || got.PrivateExponent.Cmp(k.PrivateExponent) != 0 {
		t.Fatal("round trip mismatch")
	}
}

func TestOpenSSHCanonicalizesSwappedPrimes(t *testing.T) {
	k := testkey.Generate()

	// Swap p and q and recompute the (wrong-order) iqmp the way a
	// generator with the opposite convention might emit it, exactly as
	// spec's canonicalization scenario describes.
	swappedIqmp := new(big.Int).ModInverse(k.P, k.Q)
	if swappedIqmp == nil {
		t.Fatal("test setup: p has no inverse mod q")
	}

	tampered := &rsakey.RSAKey{
		Modulus:         k.Modulus,
		Exponent:        k.Exponent,
		PrivateExponent: k.PrivateExponent,
		P:               k.Q,
		Q:               k.P,
		Iqmp:            swappedIqmp,
	}
	blob := rsakey.OpenSSHWriteKey(tampered)

	got, err := rsakey.OpenSSHReadKey(blob)
	if err != nil {
		t.Fatalf("OpenSSHReadKey: %v", err)
	}
	if got.P.Cmp(got.Q) <= 0 {
		t.Fatal("expected canonicalized p > q")
	}
	check := new(big.Int).Mul(got.Iqmp, got.Q)
	check.Mod(check, got.P)
	if check.Cmp(big.NewInt(1)) != 0 {
		t.Fatal("recomputed iqmp does not satisfy iqmp*q == 1 mod p")
	}
	if got.Iqmp.Cmp(swappedIqmp) == 0 {
		t.Fatal("expected recomputed iqmp to differ from the tampered input value")
	}
}

func sinkString(t *testing.T, name string) []byte {
	t.Helper()
	k := testkey.Generate()
	s := sshwire.NewSink()
	s.WriteString(name)
	s.WriteSSH2MPInt(k.Exponent)
	s.WriteSSH2MPInt(k.Modulus)
	return s.Bytes()
}
