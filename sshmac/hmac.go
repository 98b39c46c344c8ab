// Package sshmac implements a generic HMAC construction (RFC 2104)
// parameterized over the hashalg.Algorithm adapter, plus the
// length-truncated and length-extension "bug-compatible" variants SSH-2
// MACs use for interop with older peers.
package sshmac

import (
	"hash"

	"github.com/kayrus/sshrsa/hashalg"
)

const (
	padOuter = 0x5C
	padInner = 0x36
)

// Variant names one HMAC flavor: the underlying hash, its block length,
// the truncated output length used for the MAC, and how many leading
// bytes of an over-length key are used for the "bug-compatible" variants.
// KeyHashLen == 0 means "use the full hash digest" (the correct RFC 2104
// behavior); a non-zero value reproduces the legacy bug that keys with
// only the first KeyHashLen bytes of the hashed key. ETMName is the
// encrypt-then-mac alias the same variant is registered under when
// negotiated as a "-etm@openssh.com" method; it is empty for variants
// with no ETM counterpart.
type Variant struct {
	Name       string
	ETMName    string
	Hash       *hashalg.Algorithm
	BlockLen   int
	OutputLen  int
	KeyHashLen int
}

// Variants is the named variant table spec §4.6 requires, including the
// two "bug-compatible" entries that must remain available for interop
// with buggy peers.
var Variants = map[string]*Variant{
	"hmac-md5": {Name: "hmac-md5", ETMName: "hmac-md5-etm@openssh.com", Hash: hashalg.MD5, BlockLen: 64, OutputLen: 16},
	"hmac-sha1": {
		Name: "hmac-sha1", ETMName: "hmac-sha1-etm@openssh.com", Hash: hashalg.SHA1, BlockLen: 64, OutputLen: 20,
	},
	"hmac-sha1-96": {
		Name: "hmac-sha1-96", ETMName: "hmac-sha1-96-etm@openssh.com", Hash: hashalg.SHA1, BlockLen: 64, OutputLen: 12,
	},
	"hmac-sha2-256": {
		Name: "hmac-sha2-256", ETMName: "hmac-sha2-256-etm@openssh.com", Hash: hashalg.SHA256, BlockLen: 64, OutputLen: 32,
	},
	"hmac-sha1-bug": {
		Name: "hmac-sha1 (bug-compatible)", Hash: hashalg.SHA1, BlockLen: 64, OutputLen: 16, KeyHashLen: 16,
	},
	"hmac-sha1-96-bug": {
		Name: "hmac-sha1-96 (bug-compatible)", Hash: hashalg.SHA1, BlockLen: 64, OutputLen: 12, KeyHashLen: 16,
	},
}

// HMAC is a live HMAC context: two long-lived outer/inner states seeded
// with the key pad, a transient live state for the current message, and a
// digest-sized scratch buffer.
type HMAC struct {
	variant *Variant
	outer   hash.Hash
	inner   hash.Hash
	live    hash.Hash
	scratch []byte
}

// New constructs an HMAC context keyed with key under the named variant.
func New(variant *Variant, key []byte) *HMAC {
	m := &HMAC{
		variant: variant,
		scratch: make([]byte, variant.Hash.HashLen),
	}
	m.SetKey(key)
	return m
}

// SetKey re-keys the context, discarding any outer/inner state but
// leaving the variant untouched. If a message is in progress, it is
// abandoned.
func (m *HMAC) SetKey(key []byte) {
	var kp []byte
	if len(key) > m.variant.BlockLen {
		h := m.variant.Hash.New()
		h.Write(key)
		kp = h.Sum(nil)
		if m.variant.KeyHashLen > 0 && m.variant.KeyHashLen < len(kp) {
			// Legacy bug-compatible keying: only the first
			// KeyHashLen bytes of the hashed key are used.
			kp = kp[:m.variant.KeyHashLen]
		}
	} else {
		kp = key
	}

	m.outer = m.variant.Hash.New()
	m.inner = m.variant.Hash.New()
	for i := 0; i < m.variant.BlockLen; i++ {
		var b byte
		if i < len(kp) {
			b = kp[i]
		}
		writeByte(m.outer, padOuter^b)
		writeByte(m.inner, padInner^b)
	}

	m.live = nil
}

// Start begins a new message: the live state is cloned from the inner
// state. Calling Absorb before Start is an error (a programming-contract
// violation).
func (m *HMAC) Start() {
	m.live = m.variant.Hash.Copy(m.inner)
}

// Absorb feeds bytes into the current message. Panics if Start has not
// been called (or the previous message has already been finalized).
func (m *HMAC) Absorb(data []byte) {
	if m.live == nil {
		panic("sshmac: absorb called without a prior start")
	}
	m.live.Write(data)
}

// Finalize produces the truncated MAC into out (which must be at least
// variant.OutputLen bytes), clearing the live state and the scratch
// digest buffer.
func (m *HMAC) Finalize(out []byte) {
	if m.live == nil {
		panic("sshmac: finalize called without a prior start")
	}
	m.scratch = m.live.Sum(m.scratch[:0])
	m.live = nil

	outer := m.variant.Hash.Copy(m.outer)
	outer.Write(m.scratch)
	m.scratch = outer.Sum(m.scratch[:0])

	copy(out, m.scratch[:m.variant.OutputLen])

	for i := range m.scratch {
		m.scratch[i] = 0
	}
}

func writeByte(h hash.Hash, b byte) {
	h.Write([]byte{b})
}
