// Package keyalg publishes the key-algorithm and key-exchange descriptors
// spec §6 calls for: a single "ssh-rsa" key algorithm, and two RSA
// key-exchange method descriptors (rsa1024-sha1, rsa2048-sha256). Rather
// than a C-style vtable of function pointers recovered by struct-offset
// downcast, each descriptor is a plain Go struct of function values
// closing over the rsakey/rsascheme packages — new algorithms can
// be registered by constructing another KeyAlgorithm or KexAlgorithm
// value without touching this package's core dispatch.
package keyalg

import (
	"fmt"

	"github.com/kayrus/sshrsa/hashalg"
	"github.com/kayrus/sshrsa/rsakey"
	"github.com/kayrus/sshrsa/rsascheme"
)

// KeyAlgorithm is the descriptor for one SSH public-key signature
// algorithm. PrivateComponentCount mirrors the C descriptor's field of
// the same name (6 for RSA: d, p, q, iqmp, plus the 2 public components).
type KeyAlgorithm struct {
	Name                   string
	PrivateComponentCount  int
	New                    func(pubBlob []byte) (*rsakey.RSAKey, error)
	Format                 func(k *rsakey.RSAKey) string
	PublicBlob             func(k *rsakey.RSAKey) []byte
	PrivateBlob            func(k *rsakey.RSAKey) []byte
	CreateFromBlobs        func(pubBlob, privBlob []byte) (*rsakey.RSAKey, error)
	OpenSSHCreate          func(blob []byte) (*rsakey.RSAKey, error)
	OpenSSHFormat          func(k *rsakey.RSAKey) []byte
	PublicBits             func(blob []byte) (int, error)
	VerifySignature        func(k *rsakey.RSAKey, sig, data []byte) bool
	Sign                   func(k *rsakey.RSAKey, data []byte) []byte
}

// SSHRSA is the "ssh-rsa" key algorithm descriptor.
var SSHRSA = KeyAlgorithm{
	Name:                  "ssh-rsa",
	PrivateComponentCount: 6,
	New: func(pubBlob []byte) (*rsakey.RSAKey, error) {
		k := &rsakey.RSAKey{}
		if err := rsakey.SSH2ReadPublicBlob(pubBlob, k); err != nil {
			return nil, fmt.Errorf("keyalg: ssh-rsa new: %w", err)
		}
		return k, nil
	},
	Format:          rsakey.String,
	PublicBlob:      rsakey.SSH2WritePublicBlob,
	PrivateBlob:     rsakey.SSH2WritePrivateBlob,
	CreateFromBlobs: rsakey.SSH2CreateKey,
	OpenSSHCreate:   rsakey.OpenSSHReadKey,
	OpenSSHFormat:   rsakey.OpenSSHWriteKey,
	PublicBits:      rsakey.SSH2PublicBits,
	VerifySignature: rsascheme.Verify,
	Sign:            rsascheme.Sign,
}

// KexAlgorithm is the descriptor for one RSA key-exchange method: a name
// and the hash algorithm its OAEP encryption step uses.
type KexAlgorithm struct {
	Name string
	Hash *hashalg.Algorithm
}

// RSA1024SHA1 and RSA2048SHA256 are the two RSA key-exchange descriptors
// spec §6 requires.
var (
	RSA1024SHA1    = KexAlgorithm{Name: "rsa1024-sha1", Hash: hashalg.SHA1}
	RSA2048SHA256  = KexAlgorithm{Name: "rsa2048-sha256", Hash: hashalg.SHA256}
)

// KexList is published in the same priority order the original PuTTY
// descriptor table uses: stronger method first.
var KexList = []KexAlgorithm{RSA2048SHA256, RSA1024SHA1}
