package rsascheme_test

import (
	"math/big"
	"testing"

	"github.com/kayrus/sshrsa/hashalg"
	"github.com/kayrus/sshrsa/internal/testkey"
	"github.com/kayrus/sshrsa/rsascheme"
)

func TestOAEPEncryptLengthAndRange(t *testing.T) {
	k := testkey.Generate()
	plaintext := make([]byte, 16)
	for i := range plaintext {
		plaintext[i] = byte(i)
	}

	out := rsascheme.OAEPEncrypt(hashalg.SHA256, k, plaintext)

	wantLen := (k.Modulus.BitLen() + 7) / 8
	if len(out) != wantLen {
		t.Fatalf("len(out) = %d, want %d", len(out), wantLen)
	}

	v := new(big.Int).SetBytes(out)
	if v.Cmp(k.Modulus) >= 0 {
		t.Fatal("encrypted value is not strictly less than n")
	}
}

func TestOAEPEncryptPanicsOnOversizedInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for oversized plaintext")
		}
	}()
	k := testkey.Generate()
	hLen := hashalg.SHA256.HashLen
	kLen := (k.Modulus.BitLen() + 7) / 8
	tooBig := make([]byte, kLen-2*hLen-1) // one byte over the limit
	rsascheme.OAEPEncrypt(hashalg.SHA256, k, tooBig)
}
