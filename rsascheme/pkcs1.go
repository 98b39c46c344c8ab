// Package rsascheme implements the padding schemes layered on top of the
// RSA primitive engine: RSASSA-PKCS1-v1_5 signing/verification with the
// embedded SHA-1 DigestInfo prefix used by "ssh-rsa", SSH-1's PKCS#1 v1.5
// public-key encryption, and RSAES-OAEP for the SSH-2 RSA key-exchange
// method.
package rsascheme

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"math/big"

	"github.com/kayrus/sshrsa/rsakey"
	"github.com/kayrus/sshrsa/rsaprim"
	"github.com/kayrus/sshrsa/sshwire"
)

// ErrMissingPrivateExponent is a programming-contract violation: signing
// requires a verified private key.
var ErrMissingPrivateExponent = errors.New("rsascheme: key has no private exponent")

// asn1SHA1Prefix is the fixed ASN.1/DER DigestInfo header for SHA-1,
// embedded between the 0xFF padding run and the hash in a PKCS#1 v1.5
// signature. Byte 0 (0x00) is the separator ending the 0xFF run; the
// remaining 15 bytes are the DER encoding of
// SEQUENCE { SEQUENCE { OID 1.3.14.3.2.26, NULL }, OCTET STRING(0x14) }.
var asn1SHA1Prefix = []byte{
	0x00, 0x30, 0x21, 0x30, 0x09, 0x06, 0x05, 0x2B,
	0x0E, 0x03, 0x02, 0x1A, 0x05, 0x00, 0x04, 0x14,
}

var asn1PrefixLen = len(asn1SHA1Prefix) // 16, including the leading 00

// Sign produces an SSH-2 "ssh-rsa" signature over data: a length-prefixed
// "ssh-rsa" string followed by an SSH-2 mpint holding the signature
// integer. Panics if key has no private exponent (a programming-contract
// violation per spec §7).
func Sign(key *rsakey.RSAKey, data []byte) []byte {
	if !key.IsPrivate() {
		panic(ErrMissingPrivateExponent)
	}

	hash := sha1.Sum(data)

	// k is one less than the modulus byte length, guaranteeing the
	// encoded integer fits strictly below n.
	k := (key.Modulus.BitLen() - 1) / 8
	if k < 1+20+asn1PrefixLen {
		panic(fmt.Errorf("rsascheme: modulus too small for a SHA-1 signature (k=%d)", k))
	}

	em := make([]byte, k)
	em[0] = 0x01
	ffEnd := k - 20 - asn1PrefixLen
	for i := 1; i < ffEnd; i++ {
		em[i] = 0xFF
	}
	copy(em[ffEnd:ffEnd+asn1PrefixLen], asn1SHA1Prefix)
	copy(em[k-20:], hash[:])

	in := new(big.Int).SetBytes(em)
	out := rsaprim.Private(in, key)

	s := sshwire.NewSink()
	s.WriteString("ssh-rsa")
	s.WriteSSH2MPInt(out)
	return s.Bytes()
}

// Verify checks an SSH-2 "ssh-rsa" signature over data against a public
// key. It returns true only if the signature decodes to exactly the
// PKCS#1 v1.5 layout spec §4.4 describes: 0x00, 0x01, a run of 0xFF,
// the fixed SHA-1 DigestInfo prefix, and SHA1(data).
func Verify(key *rsakey.RSAKey, signature, data []byte) bool {
	src := sshwire.NewSource(signature)
	name, err := src.ReadString()
	if err != nil || name != "ssh-rsa" {
		return false
	}
	sig, err := src.ReadSSH2MPInt()
	if err != nil {
		return false
	}

	m := rsaprim.Public(sig, key.Exponent, key.Modulus)

	numBytes := (key.Modulus.BitLen() + 7) / 8
	byteAt := func(i int) byte {
		b := m.Bytes()
		pos := len(b) - 1 - i
		if pos < 0 || pos >= len(b) {
			return 0
		}
		return b[pos]
	}

	ok := true
	if byteAt(numBytes-1) != 0x00 {
		ok = false
	}
	if byteAt(numBytes-2) != 0x01 {
		ok = false
	}
	for i := numBytes - 3; i >= 20+asn1PrefixLen; i-- {
		if byteAt(i) != 0xFF {
			ok = false
		}
	}
	for i := 0; i < asn1PrefixLen; i++ {
		if byteAt(20+asn1PrefixLen-1-i) != asn1SHA1Prefix[i] {
			ok = false
		}
	}
	hash := sha1.Sum(data)
	for i := 0; i < 20; i++ {
		if byteAt(19-i) != hash[i] {
			ok = false
		}
	}

	return ok
}
