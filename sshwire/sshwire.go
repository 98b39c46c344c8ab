// Package sshwire provides the binary sink/source primitives the RSA wire
// codecs are built on: raw bytes, 32-bit big-endian integers, SSH-1
// mpints, SSH-2 mpints, and length-prefixed strings. It generalizes the
// read/write helpers kayrus/putty spreads across bytes.go, marshal.go, and
// unmarshal.go into a single pair of types.
package sshwire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
)

// Sink is an append-only byte sink used by serialization routines.
type Sink struct {
	buf bytes.Buffer
}

// NewSink returns an empty Sink.
func NewSink() *Sink { return &Sink{} }

// Bytes returns the accumulated output.
func (s *Sink) Bytes() []byte { return s.buf.Bytes() }

// WriteRaw appends b verbatim.
func (s *Sink) WriteRaw(b []byte) { s.buf.Write(b) }

// WriteUint32 appends a big-endian 32-bit unsigned integer.
func (s *Sink) WriteUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	s.buf.Write(b[:])
}

// WriteUint16 appends a big-endian 16-bit unsigned integer (the SSH-1
// mpint bit-count prefix).
func (s *Sink) WriteUint16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	s.buf.Write(b[:])
}

// WriteString appends a 32-bit length prefix followed by the string bytes.
func (s *Sink) WriteString(str string) { s.WriteByteString([]byte(str)) }

// WriteByteString appends a 32-bit length prefix followed by b.
func (s *Sink) WriteByteString(b []byte) {
	s.WriteUint32(uint32(len(b)))
	s.buf.Write(b)
}

// WriteSSH1MPInt appends an SSH-1 mpint: a 16-bit big-endian bit count
// followed by the ceil(bits/8) big-endian magnitude bytes.
func (s *Sink) WriteSSH1MPInt(v *big.Int) {
	b := v.Bytes()
	s.WriteUint16(uint16(v.BitLen()))
	s.buf.Write(b)
}

// WriteSSH2MPInt appends an SSH-2 mpint: a 32-bit length followed by the
// two's-complement-unsigned magnitude, with a leading 0x00 inserted when
// the top bit of the natural encoding would otherwise be set.
func (s *Sink) WriteSSH2MPInt(v *big.Int) {
	b := v.Bytes()
	if len(b) > 0 && b[0]&0x80 != 0 {
		padded := make([]byte, len(b)+1)
		copy(padded[1:], b)
		b = padded
	}
	if v.Sign() == 0 {
		b = nil
	}
	s.WriteByteString(b)
}

// Source reads sequentially from a byte slice, tracking the number of
// bytes consumed so callers can report "bytes consumed" the way the
// original C readers do.
type Source struct {
	r *bytes.Reader
}

// NewSource wraps b for sequential reading.
func NewSource(b []byte) *Source { return &Source{r: bytes.NewReader(b)} }

// Pos returns the number of bytes consumed so far.
func (s *Source) Pos() int64 {
	pos, _ := s.r.Seek(0, io.SeekCurrent)
	return pos
}

// Remaining returns the number of unread bytes.
func (s *Source) Remaining() int { return s.r.Len() }

// ReadRaw reads exactly n raw bytes.
func (s *Source) ReadRaw(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return nil, fmt.Errorf("sshwire: truncated input: %w", err)
	}
	return buf, nil
}

// ReadUint32 reads a big-endian 32-bit unsigned integer.
func (s *Source) ReadUint32() (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(s.r, b[:]); err != nil {
		return 0, fmt.Errorf("sshwire: truncated uint32: %w", err)
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// ReadUint16 reads a big-endian 16-bit unsigned integer.
func (s *Source) ReadUint16() (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(s.r, b[:]); err != nil {
		return 0, fmt.Errorf("sshwire: truncated uint16: %w", err)
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

// ReadByteString reads a 32-bit length prefix and the following bytes.
func (s *Source) ReadByteString() ([]byte, error) {
	n, err := s.ReadUint32()
	if err != nil {
		return nil, err
	}
	if int64(n) > int64(s.r.Len()) {
		return nil, fmt.Errorf("sshwire: element length %d out of range", n)
	}
	return s.ReadRaw(int(n))
}

// ReadString reads a length-prefixed string.
func (s *Source) ReadString() (string, error) {
	b, err := s.ReadByteString()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadSSH1MPInt reads an SSH-1 mpint and returns the value plus the number
// of bytes the encoded form occupied (bit-count prefix included), matching
// the original `ssh1_read_bignum` return convention.
func ReadSSH1MPInt(data []byte) (*big.Int, int, error) {
	if len(data) < 2 {
		return nil, -1, fmt.Errorf("sshwire: truncated ssh1 mpint bit count")
	}
	bits := int(data[0])<<8 | int(data[1])
	nbytes := (bits + 7) / 8
	if len(data) < 2+nbytes {
		return nil, -1, fmt.Errorf("sshwire: truncated ssh1 mpint body")
	}
	return new(big.Int).SetBytes(data[2 : 2+nbytes]), 2 + nbytes, nil
}

// ReadSSH2MPInt reads an SSH-2 mpint (32-bit length, two's-complement
// unsigned magnitude).
func (s *Source) ReadSSH2MPInt() (*big.Int, error) {
	b, err := s.ReadByteString()
	if err != nil {
		return nil, fmt.Errorf("sshwire: truncated ssh2 mpint: %w", err)
	}
	return new(big.Int).SetBytes(b), nil
}
