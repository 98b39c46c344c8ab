package rsakey

import (
	"crypto/md5"
	"fmt"
	"math/big"
	"strings"

	"github.com/kayrus/sshrsa/sshwire"
)

// StringLen returns the number of bytes a buffer must hold to receive the
// output of String: 4*(ceil(bits(n)/16) + ceil(bits(e)/16)) + 20.
func StringLen(k *RSAKey) int {
	mdlen := (k.Modulus.BitLen() + 15) / 16
	exlen := (k.Exponent.BitLen() + 15) / 16
	return 4*(mdlen+exlen) + 20
}

// String formats k as "0x<hex(e)>,0x<hex(n)>", using the minimum number
// of hex nibbles needed for each value (at least one).
func String(k *RSAKey) string {
	var b strings.Builder
	b.WriteString("0x")
	writeHexNibbles(&b, k.Exponent)
	b.WriteString(",0x")
	writeHexNibbles(&b, k.Modulus)
	return b.String()
}

const hexDigits = "0123456789abcdef"

func writeHexNibbles(b *strings.Builder, n *big.Int) {
	nibbles := (3 + n.BitLen()) / 4
	if nibbles < 1 {
		nibbles = 1
	}
	for i := nibbles - 1; i >= 0; i-- {
		var nibble byte
		for bit := 0; bit < 4; bit++ {
			if n.Bit(i*4+bit) == 1 {
				nibble |= 1 << uint(bit)
			}
		}
		b.WriteByte(hexDigits[nibble])
	}
}

// Fingerprint computes the MD5 fingerprint of k: the MD5 digest of the
// SSH-1-mpint serialization of Modulus followed by Exponent, formatted as
// "<bits(n)> xx:xx:...:xx", followed by " <comment>" when k has a comment.
// maxLen bounds the result the way a caller-supplied fixed buffer would
// (the whole string, comment included, is truncated to at most maxLen-1
// bytes, leaving room for a
// trailing NUL); maxLen <= 0 means unbounded.
func Fingerprint(k *RSAKey, maxLen int) string {
	s := sshwire.NewSink()
	s.WriteSSH1MPInt(k.Modulus)
	s.WriteSSH1MPInt(k.Exponent)
	digest := md5.Sum(s.Bytes())

	var b strings.Builder
	fmt.Fprintf(&b, "%d ", k.Modulus.BitLen())
	for i, d := range digest {
		if i > 0 {
			b.WriteByte(':')
		}
		fmt.Fprintf(&b, "%02x", d)
	}

	out := b.String()
	if k.Comment != "" {
		out += " " + k.Comment
	}
	if maxLen > 0 && len(out) > maxLen-1 {
		out = out[:maxLen-1]
	}
	return out
}
