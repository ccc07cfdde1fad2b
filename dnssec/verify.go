package dnssec

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/dnscanon/dnscanon/rr"
)

// VerifyRRSet reconstructs the signed data for the RRset described by sig
// and checks signature over it with publicKey. The boolean is the one and
// only verification verdict. A non-nil error reports a structurally invalid
// input (bad label count, empty RRset, missing RDATA); it is never returned
// for a mere cryptographic mismatch, which is plain false.
func VerifyRRSet(publicKey []byte, owner rr.Name, class rr.DNSClass, sig *rr.SIG, records []rr.Record, signature []byte) (bool, error) {
	if sig == nil {
		return false, ErrNilSIG
	}
	if sig.Algorithm != rr.ECDSAP256SHA256 {
		// Identification only for everything else; we cannot verify it,
		// so the signature is not valid here.
		Warn(fmt.Sprintf("unsupported algorithm %s; refusing signature", sig.Algorithm))
		return false, nil
	}

	message, err := BuildSignedData(owner, class, sig, records)
	if err != nil {
		return false, err
	}

	return VerifySignature(publicKey, message, signature), nil
}

// VerifySignature checks a raw ECDSA P-256 signature (64-byte R then S) over
// message. A 64-byte key is taken as the raw X and Y coordinates and the
// uncompressed-point format byte 0x04 is synthesized; any other length must
// already be SEC1-encoded. Every failure mode, from a malformed key to a
// forged signature, collapses to false.
func VerifySignature(publicKey, message, signature []byte) bool {
	key, ok := parseP256Key(normalizeKey(publicKey))
	if !ok {
		return false
	}
	if len(signature) != 64 {
		return false
	}

	r := new(big.Int).SetBytes(signature[:32])
	s := new(big.Int).SetBytes(signature[32:])

	digest := sha256.Sum256(message)
	return ecdsa.Verify(key, digest[:], r, s)
}

// normalizeKey synthesizes the SEC1 uncompressed-point format byte for keys
// supplied as bare coordinates. DNSKEY RDATA stores ECDSA keys this way
// (RFC 6605 section 4).
func normalizeKey(publicKey []byte) []byte {
	if len(publicKey) == 64 {
		buf := make([]byte, 0, 65)
		buf = append(buf, 0x04)
		return append(buf, publicKey...)
	}
	return publicKey
}

func parseP256Key(sec1 []byte) (*ecdsa.PublicKey, bool) {
	if len(sec1) != 65 || sec1[0] != 0x04 {
		return nil, false
	}
	key := &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(sec1[1:33]),
		Y:     new(big.Int).SetBytes(sec1[33:]),
	}
	if !key.Curve.IsOnCurve(key.X, key.Y) {
		return nil, false
	}
	return key, true
}
