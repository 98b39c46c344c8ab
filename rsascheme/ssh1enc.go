package rsascheme

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/kayrus/sshrsa/rsakey"
	"github.com/kayrus/sshrsa/rsaprim"
)

// ErrKeyTooSmall is returned by SSH1Encrypt when the plaintext plus the
// four framing bytes (0x00 0x02, at least one padding byte, 0x00) exceed
// key.Bytes.
var ErrKeyTooSmall = errors.New("rsascheme: key too small for plaintext")

// SSH1Encrypt PKCS#1 v1.5-encrypts plaintext for SSH-1 public-key
// encryption: a buffer of length key.Bytes is built as
// 0x00, 0x02, non-zero random padding, 0x00, plaintext, then interpreted
// as a big-endian integer and raised to the public exponent.
func SSH1Encrypt(key *rsakey.RSAKey, plaintext []byte) ([]byte, error) {
	return ssh1Encrypt(key, plaintext, rand.Reader)
}

func ssh1Encrypt(key *rsakey.RSAKey, plaintext []byte, random io.Reader) ([]byte, error) {
	l := len(plaintext)
	if key.Bytes < l+4 {
		return nil, fmt.Errorf("rsascheme: ssh1 encrypt: %w", ErrKeyTooSmall)
	}

	buf := make([]byte, key.Bytes)
	buf[0] = 0x00
	buf[1] = 0x02
	padEnd := key.Bytes - l - 1
	if err := fillNonZero(random, buf[2:padEnd]); err != nil {
		return nil, fmt.Errorf("rsascheme: ssh1 encrypt padding: %w", err)
	}
	buf[padEnd] = 0x00
	copy(buf[key.Bytes-l:], plaintext)

	m := new(big.Int).SetBytes(buf)
	c := rsaprim.Public(m, key.Exponent, key.Modulus)

	out := make([]byte, key.Bytes)
	cb := c.Bytes()
	copy(out[len(out)-len(cb):], cb)
	return out, nil
}

func fillNonZero(random io.Reader, buf []byte) error {
	for i := range buf {
		for {
			var b [1]byte
			if _, err := io.ReadFull(random, b[:]); err != nil {
				return err
			}
			if b[0] != 0 {
				buf[i] = b[0]
				break
			}
		}
	}
	return nil
}
