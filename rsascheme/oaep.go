package rsascheme

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"github.com/kayrus/sshrsa/hashalg"
	"github.com/kayrus/sshrsa/rsakey"
	"github.com/kayrus/sshrsa/rsaprim"
)

// OAEPEncrypt RSAES-OAEP-encrypts in for the SSH-2 RSA key-exchange
// method, using an empty label, as specified in spec §4.5 / RFC 3447
// §7.1.1. k = ceil(bits(n)/8) must satisfy 0 < len(in) <= k-2*hLen-2;
// violating this is a programming-contract error and panics.
func OAEPEncrypt(h *hashalg.Algorithm, key *rsakey.RSAKey, in []byte) []byte {
	em := oaepEncode(h, key, in, rand.Reader)

	m := new(big.Int).SetBytes(em)
	c := rsaprim.Public(m, key.Exponent, key.Modulus)
	cb := c.Bytes()
	out := em // reuse the buffer; em is never read again
	for i := range out {
		out[i] = 0
	}
	copy(out[len(out)-len(cb):], cb)
	return out
}

// oaepEncode performs EME-OAEP encoding (empty label) into a fresh
// k-byte buffer, without the final modexp, so tests can verify the
// pre-encryption layout directly.
func oaepEncode(h *hashalg.Algorithm, key *rsakey.RSAKey, in []byte, random io.Reader) []byte {
	k := (key.Modulus.BitLen() + 7) / 8
	hLen := h.HashLen

	if len(in) == 0 || len(in) > k-2*hLen-2 {
		panic(fmt.Errorf("rsascheme: oaep: invalid plaintext length %d for k=%d hLen=%d", len(in), k, hLen))
	}

	out := make([]byte, k)
	out[0] = 0

	seed := out[1 : 1+hLen]
	if _, err := io.ReadFull(random, seed); err != nil {
		panic(fmt.Errorf("rsascheme: oaep: reading random seed: %w", err))
	}

	emptyLabelHash := h.New().Sum(nil)
	copy(out[1+hLen:1+2*hLen], emptyLabelHash)

	// out is already zero-filled between the label hash and here; lay
	// down the 0x01 separator and the message.
	out[k-len(in)-1] = 0x01
	copy(out[k-len(in):], in)

	db := out[1+hLen:]
	mgf1XOR(h, db, seed)
	mgf1XOR(h, seed, db)

	return out
}

// mgf1XOR XORs dst with MGF1(seed) under hash algorithm h, generating
// exactly len(dst) bytes of mask by hashing seed concatenated with a
// 32-bit big-endian counter, incrementing the counter each block.
func mgf1XOR(h *hashalg.Algorithm, dst, seed []byte) {
	var counter uint32
	var counterBuf [4]byte
	pos := 0
	for pos < len(dst) {
		hh := h.New()
		hh.Write(seed)
		binary.BigEndian.PutUint32(counterBuf[:], counter)
		hh.Write(counterBuf[:])
		block := hh.Sum(nil)

		n := len(block)
		if pos+n > len(dst) {
			n = len(dst) - pos
		}
		xorBytes(dst[pos:pos+n], block[:n])
		pos += n
		counter++
	}
}

func xorBytes(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}
