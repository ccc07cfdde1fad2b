package dnssec

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/dnscanon/dnscanon/rr"
)

const zoneName = "example.com."

// testKey wraps an ephemeral P-256 key in the two encodings the verifier
// deals with: the bare 64-octet DNSKEY form and SEC1 uncompressed form.
type testKey struct {
	private *ecdsa.PrivateKey
}

func newTestKey(t *testing.T) *testKey {
	t.Helper()
	private, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generating test key: %v", err)
	}
	return &testKey{private: private}
}

// publicRaw is the DNSKEY RDATA encoding: X and Y, 32 octets each, no
// format byte.
func (k *testKey) publicRaw() []byte {
	buf := make([]byte, 64)
	k.private.PublicKey.X.FillBytes(buf[:32])
	k.private.PublicKey.Y.FillBytes(buf[32:])
	return buf
}

// publicSEC1 is the uncompressed point with the 0x04 format byte.
func (k *testKey) publicSEC1() []byte {
	return append([]byte{0x04}, k.publicRaw()...)
}

// sign produces the DNSSEC wire signature: R then S, 32 octets each.
func (k *testKey) sign(t *testing.T, message []byte) []byte {
	t.Helper()
	digest := sha256.Sum256(message)
	r, s, err := ecdsa.Sign(rand.Reader, k.private, digest[:])
	if err != nil {
		t.Fatalf("signing test message: %v", err)
	}
	signature := make([]byte, 64)
	r.FillBytes(signature[:32])
	s.FillBytes(signature[32:])
	return signature
}

func mustName(t *testing.T, s string) rr.Name {
	t.Helper()
	n, err := rr.NameFromString(s)
	if err != nil {
		t.Fatalf("parsing name %q: %v", s, err)
	}
	return n
}

func testSIG(t *testing.T, labels uint8) *rr.SIG {
	t.Helper()
	return &rr.SIG{
		TypeCovered: rr.TypeTXT,
		Algorithm:   rr.ECDSAP256SHA256,
		Labels:      labels,
		OriginalTTL: 300,
		Expiration:  0x60000000,
		Inception:   0x5F000000,
		KeyTag:      0x1234,
		SignerName:  mustName(t, zoneName),
	}
}

func testTXTRecord(t *testing.T, owner string, ttl uint32, segments ...string) rr.Record {
	t.Helper()
	return rr.Record{
		Name:  mustName(t, owner),
		Type:  rr.TypeTXT,
		Class: rr.ClassIN,
		TTL:   ttl,
		Data:  rr.NewTXT(segments...),
	}
}
