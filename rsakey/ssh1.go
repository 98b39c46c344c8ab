package rsakey

import (
	"fmt"
	"math/big"

	"github.com/kayrus/sshrsa/sshwire"
)

// SSH1ReadPublic parses an SSH-1 public-key blob: a 32-bit big-endian
// nominal bit length, then two SSH-1 mpints ordered according to order.
// It returns the number of bytes consumed. If result is non-nil, it is
// populated with Bits, Exponent, Modulus, and Bytes (the mpint-encoded
// length of the modulus minus two — see the Open Question note below).
// If keystrOffset is non-nil, *keystrOffset is set to the offset within
// data at which the modulus magnitude bytes begin (used by callers that
// want the raw key string for hashing, e.g. fingerprinting variants that
// hash the wire bytes directly rather than re-serializing).
func SSH1ReadPublic(data []byte, order Order, result *RSAKey, keystrOffset *int) (int, error) {
	if len(data) < 4 {
		return -1, fmt.Errorf("rsakey: ssh1 public blob: %w", ErrTruncated)
	}

	bits := int(data[0])<<24 | int(data[1])<<16 | int(data[2])<<8 | int(data[3])
	p := data[4:]
	consumed := 4

	var exponent, modulus *big.Int

	if order == ExponentFirst {
		e, n, err := sshwire.ReadSSH1MPInt(p)
		if err != nil {
			return -1, fmt.Errorf("rsakey: ssh1 public blob exponent: %w", err)
		}
		exponent = e
		p = p[n:]
		consumed += n
	}

	modStart := consumed
	m, n, err := sshwire.ReadSSH1MPInt(p)
	if err != nil {
		return -1, fmt.Errorf("rsakey: ssh1 public blob modulus: %w", err)
	}
	if m.BitLen() == 0 {
		return -1, fmt.Errorf("rsakey: ssh1 public blob: %w", ErrZeroModulus)
	}
	modulus = m
	modBytes := n
	p = p[n:]
	consumed += n
	if keystrOffset != nil {
		*keystrOffset = modStart + 2
	}

	if order == ModulusFirst {
		e, n, err := sshwire.ReadSSH1MPInt(p)
		if err != nil {
			return -1, fmt.Errorf("rsakey: ssh1 public blob exponent: %w", err)
		}
		exponent = e
		consumed += n
	}

	if result != nil {
		result.Bits = bits
		result.Exponent = exponent
		result.Modulus = modulus
		// The Open Question in spec §9 carries over verbatim: `bytes`
		// is the full mpint-encoded length of the modulus (bit-count
		// prefix plus magnitude) minus two, used only to size the
		// PKCS#1 buffer. Preserved exactly for wire compatibility.
		result.Bytes = modBytes - 2
	}

	return consumed, nil
}

// SSH1ReadPrivate parses the private-exponent mpint that follows an SSH-1
// public blob in the private-key wire format.
func SSH1ReadPrivate(data []byte, result *RSAKey) (int, error) {
	d, n, err := sshwire.ReadSSH1MPInt(data)
	if err != nil {
		return -1, fmt.Errorf("rsakey: ssh1 private exponent: %w", err)
	}
	result.PrivateExponent = d
	return n, nil
}

// SSH1WritePublicBlob serializes an SSH-1 public-key blob in the given
// mpint order.
func SSH1WritePublicBlob(k *RSAKey, order Order) []byte {
	s := sshwire.NewSink()
	s.WriteUint32(uint32(k.Modulus.BitLen()))
	if order == ExponentFirst {
		s.WriteSSH1MPInt(k.Exponent)
		s.WriteSSH1MPInt(k.Modulus)
	} else {
		s.WriteSSH1MPInt(k.Modulus)
		s.WriteSSH1MPInt(k.Exponent)
	}
	return s.Bytes()
}

// SSH1PublicBlobLen determines the length of an SSH-1 public blob (the
// length word plus the exponent-then-modulus mpints) without retaining
// the parsed values. Supplements sshrsa.c's rsa_public_blob_len.
func SSH1PublicBlobLen(data []byte) (int, error) {
	if len(data) < 4 {
		return -1, fmt.Errorf("rsakey: ssh1 public blob length: %w", ErrTruncated)
	}
	p := data[4:]
	consumed := 4

	_, n, err := sshwire.ReadSSH1MPInt(p)
	if err != nil {
		return -1, fmt.Errorf("rsakey: ssh1 public blob length (exponent): %w", err)
	}
	p = p[n:]
	consumed += n

	_, n, err = sshwire.ReadSSH1MPInt(p)
	if err != nil {
		return -1, fmt.Errorf("rsakey: ssh1 public blob length (modulus): %w", err)
	}
	consumed += n

	return consumed, nil
}
