package keyalg_test

import (
	"strings"
	"testing"

	"github.com/kayrus/sshrsa/internal/testkey"
	"github.com/kayrus/sshrsa/keyalg"
)

func TestSSHRSARoundTripsPublicBlob(t *testing.T) {
	k := testkey.Generate()

	blob := keyalg.SSHRSA.PublicBlob(k)
	got, err := keyalg.SSHRSA.New(blob)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got.Modulus.Cmp(k.Modulus) != 0 || got.Exponent.Cmp(k.Exponent) != 0 {
		t.Fatal("round-tripped key does not match original public components")
	}
}

func TestSSHRSACreateFromBlobsRoundTrip(t *testing.T) {
	k := testkey.Generate()

	pub := keyalg.SSHRSA.PublicBlob(k)
	priv := keyalg.SSHRSA.PrivateBlob(k)

	got, err := keyalg.SSHRSA.CreateFromBlobs(pub, priv)
	if err != nil {
		t.Fatalf("CreateFromBlobs: %v", err)
	}
	if got.Modulus.Cmp(k.Modulus) != 0 || got.PrivateExponent.Cmp(k.PrivateExponent) != 0 {
		t.Fatal("round-tripped private key does not match original")
	}
}

func TestSSHRSAOpenSSHRoundTrip(t *testing.T) {
	k := testkey.Generate()

	blob := keyalg.SSHRSA.OpenSSHFormat(k)
	got, err := keyalg.SSHRSA.OpenSSHCreate(blob)
	if err != nil {
		t.Fatalf("OpenSSHCreate: %v", err)
	}
	if got.Modulus.Cmp(k.Modulus) != 0 || got.Iqmp.Cmp(k.Iqmp) != 0 {
		t.Fatal("round-tripped OpenSSH key does not match original")
	}
}

func TestSSHRSASignVerifyThroughDescriptor(t *testing.T) {
	k := testkey.Generate()
	data := []byte("descriptor sign/verify")

	sig := keyalg.SSHRSA.Sign(k, data)
	if !keyalg.SSHRSA.VerifySignature(k, sig, data) {
		t.Fatal("descriptor-level verification of a fresh signature failed")
	}
}

func TestSSHRSAPublicBitsMatchesModulus(t *testing.T) {
	k := testkey.Generate()
	blob := keyalg.SSHRSA.PublicBlob(k)

	bits, err := keyalg.SSHRSA.PublicBits(blob)
	if err != nil {
		t.Fatalf("PublicBits: %v", err)
	}
	if bits != k.Modulus.BitLen() {
		t.Fatalf("PublicBits = %d, want %d", bits, k.Modulus.BitLen())
	}
}

func TestSSHRSAFormatContainsHexComponents(t *testing.T) {
	k := testkey.Generate()
	s := keyalg.SSHRSA.Format(k)
	if !strings.HasPrefix(s, "0x") || !strings.Contains(s, ",0x") {
		t.Fatalf("Format() = %q, want two comma-separated 0x-prefixed components", s)
	}
}

func TestSSHRSADescriptorMetadata(t *testing.T) {
	if keyalg.SSHRSA.Name != "ssh-rsa" {
		t.Fatalf("Name = %q, want ssh-rsa", keyalg.SSHRSA.Name)
	}
	if keyalg.SSHRSA.PrivateComponentCount != 6 {
		t.Fatalf("PrivateComponentCount = %d, want 6", keyalg.SSHRSA.PrivateComponentCount)
	}
}

func TestKexListOrderAndHashes(t *testing.T) {
	if len(keyalg.KexList) != 2 {
		t.Fatalf("len(KexList) = %d, want 2", len(keyalg.KexList))
	}
	if keyalg.KexList[0].Name != "rsa2048-sha256" {
		t.Fatalf("KexList[0].Name = %q, want rsa2048-sha256 (strongest first)", keyalg.KexList[0].Name)
	}
	if keyalg.KexList[1].Name != "rsa1024-sha1" {
		t.Fatalf("KexList[1].Name = %q, want rsa1024-sha1", keyalg.KexList[1].Name)
	}
	if keyalg.RSA2048SHA256.Hash.HashLen != 32 {
		t.Fatalf("rsa2048-sha256 hash length = %d, want 32", keyalg.RSA2048SHA256.Hash.HashLen)
	}
	if keyalg.RSA1024SHA1.Hash.HashLen != 20 {
		t.Fatalf("rsa1024-sha1 hash length = %d, want 20", keyalg.RSA1024SHA1.Hash.HashLen)
	}
}
