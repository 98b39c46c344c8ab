package rsakey

import (
	"fmt"

	"github.com/kayrus/sshrsa/sshwire"
)

const algoName = "ssh-rsa"

// SSH2WritePublicBlob serializes an SSH-2 public-key blob: the
// length-prefixed "ssh-rsa" algorithm name, then exponent and modulus as
// SSH-2 mpints.
func SSH2WritePublicBlob(k *RSAKey) []byte {
	s := sshwire.NewSink()
	s.WriteString(algoName)
	s.WriteSSH2MPInt(k.Exponent)
	s.WriteSSH2MPInt(k.Modulus)
	return s.Bytes()
}

// SSH2ReadPublicBlob parses an SSH-2 public-key blob into result.
func SSH2ReadPublicBlob(blob []byte, result *RSAKey) error {
	src := sshwire.NewSource(blob)
	name, err := src.ReadString()
	if err != nil {
		return fmt.Errorf("rsakey: ssh2 public blob: %w", err)
	}
	if name != algoName {
		return fmt.Errorf("rsakey: ssh2 public blob: got %q: %w", name, ErrAlgoMismatch)
	}
	e, err := src.ReadSSH2MPInt()
	if err != nil {
		return fmt.Errorf("rsakey: ssh2 public blob exponent: %w", err)
	}
	n, err := src.ReadSSH2MPInt()
	if err != nil {
		return fmt.Errorf("rsakey: ssh2 public blob modulus: %w", err)
	}
	if e.Sign() == 0 || n.Sign() == 0 {
		return fmt.Errorf("rsakey: ssh2 public blob: %w", ErrMissingField)
	}
	result.Exponent = e
	result.Modulus = n
	return nil
}

// SSH2WritePrivateBlob serializes the SSH-2 private-blob half paired with
// a public blob: d, p, q, iqmp in order.
func SSH2WritePrivateBlob(k *RSAKey) []byte {
	s := sshwire.NewSink()
	s.WriteSSH2MPInt(k.PrivateExponent)
	s.WriteSSH2MPInt(k.P)
	s.WriteSSH2MPInt(k.Q)
	s.WriteSSH2MPInt(k.Iqmp)
	return s.Bytes()
}

// SSH2CreateKey parses a public blob and a paired private blob (d, p, q,
// iqmp) into a new key, then mandatorily verifies it.
func SSH2CreateKey(pubBlob, privBlob []byte) (*RSAKey, error) {
	k := &RSAKey{}
	if err := SSH2ReadPublicBlob(pubBlob, k); err != nil {
		return nil, err
	}
	src := sshwire.NewSource(privBlob)
	d, err := src.ReadSSH2MPInt()
	if err != nil {
		return nil, fmt.Errorf("rsakey: ssh2 private blob d: %w", err)
	}
	p, err := src.ReadSSH2MPInt()
	if err != nil {
		return nil, fmt.Errorf("rsakey: ssh2 private blob p: %w", err)
	}
	q, err := src.ReadSSH2MPInt()
	if err != nil {
		return nil, fmt.Errorf("rsakey: ssh2 private blob q: %w", err)
	}
	iqmp, err := src.ReadSSH2MPInt()
	if err != nil {
		return nil, fmt.Errorf("rsakey: ssh2 private blob iqmp: %w", err)
	}
	k.PrivateExponent, k.P, k.Q, k.Iqmp = d, p, q, iqmp

	if err := Verify(k); err != nil {
		return nil, fmt.Errorf("rsakey: ssh2 create key: %w", err)
	}
	return k, nil
}

// SSH2PublicBits parses just enough of a public blob to report the
// modulus bit length, without retaining the key. Supplements
// sshrsa.c's rsa2_pubkey_bits.
func SSH2PublicBits(blob []byte) (int, error) {
	k := &RSAKey{}
	if err := SSH2ReadPublicBlob(blob, k); err != nil {
		return -1, err
	}
	return k.Modulus.BitLen(), nil
}

// OpenSSHWriteKey serializes a private key in OpenSSH's internal field
// order: n, e, d, iqmp, p, q.
func OpenSSHWriteKey(k *RSAKey) []byte {
	s := sshwire.NewSink()
	s.WriteSSH2MPInt(k.Modulus)
	s.WriteSSH2MPInt(k.Exponent)
	s.WriteSSH2MPInt(k.PrivateExponent)
	s.WriteSSH2MPInt(k.Iqmp)
	s.WriteSSH2MPInt(k.P)
	s.WriteSSH2MPInt(k.Q)
	return s.Bytes()
}

// OpenSSHReadKey parses a private key blob in OpenSSH's internal field
// order (n, e, d, iqmp, p, q) and mandatorily verifies it.
func OpenSSHReadKey(blob []byte) (*RSAKey, error) {
	src := sshwire.NewSource(blob)

	n, err := src.ReadSSH2MPInt()
	if err != nil {
		return nil, fmt.Errorf("rsakey: openssh key n: %w", err)
	}
	e, err := src.ReadSSH2MPInt()
	if err != nil {
		return nil, fmt.Errorf("rsakey: openssh key e: %w", err)
	}
	d, err := src.ReadSSH2MPInt()
	if err != nil {
		return nil, fmt.Errorf("rsakey: openssh key d: %w", err)
	}
	iqmp, err := src.ReadSSH2MPInt()
	if err != nil {
		return nil, fmt.Errorf("rsakey: openssh key iqmp: %w", err)
	}
	p, err := src.ReadSSH2MPInt()
	if err != nil {
		return nil, fmt.Errorf("rsakey: openssh key p: %w", err)
	}
	q, err := src.ReadSSH2MPInt()
	if err != nil {
		return nil, fmt.Errorf("rsakey: openssh key q: %w", err)
	}

	k := &RSAKey{
		Modulus:         n,
		Exponent:        e,
		PrivateExponent: d,
		Iqmp:            iqmp,
		P:               p,
		Q:               q,
	}

	if err := Verify(k); err != nil {
		return nil, fmt.Errorf("rsakey: openssh create key: %w", err)
	}
	return k, nil
}
