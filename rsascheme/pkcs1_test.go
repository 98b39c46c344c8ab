package rsascheme_test

import (
	"testing"

	"github.com/kayrus/sshrsa/internal/testkey"
	"github.com/kayrus/sshrsa/rsascheme"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	k := testkey.Generate()
	data := []byte("abc")

	sig := rsascheme.Sign(k, data)
	if !rsascheme.Verify(k, sig, data) {
		t.Fatal("verification of a freshly-produced signature failed")
	}
}

func TestVerifyRejectsFlippedSignatureByte(t *testing.T) {
	k := testkey.Generate()
	data := []byte("abc")

	sig := rsascheme.Sign(k, data)
	tampered := append([]byte(nil), sig...)
	tampered[len(tampered)-1] ^= 0x01

	if rsascheme.Verify(k, tampered, data) {
		t.Fatal("verification succeeded on a tampered signature")
	}
}

func TestVerifyRejectsFlippedDataByte(t *testing.T) {
	k := testkey.Generate()
	data := []byte("abc")

	sig := rsascheme.Sign(k, data)
	tamperedData := append([]byte(nil), data...)
	tamperedData[0] ^= 0x01

	if rsascheme.Verify(k, sig, tamperedData) {
		t.Fatal("verification succeeded against tampered data")
	}
}

func TestSignPanicsWithoutPrivateExponent(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when signing with a public-only key")
		}
	}()

	k := testkey.Generate()
	pubOnly := *k
	pubOnly.PrivateExponent = nil
	pubOnly.P, pubOnly.Q, pubOnly.Iqmp = nil, nil, nil
	rsascheme.Sign(&pubOnly, []byte("abc"))
}

func TestVerifyRejectsWrongAlgorithmName(t *testing.T) {
	k := testkey.Generate()
	sig := rsascheme.Sign(k, []byte("abc"))

	// Corrupt the algorithm-name length prefix so parsing fails cleanly.
	tampered := append([]byte(nil), sig...)
	tampered[3] = 0
	if rsascheme.Verify(k, tampered, []byte("abc")) {
		t.Fatal("verification succeeded with a corrupted algorithm name")
	}
}
