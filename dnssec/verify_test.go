package dnssec

import (
	"crypto/ecdsa"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/dnscanon/dnscanon/rr"
	"github.com/miekg/dns"
)

func TestVerifySignatureRoundTrip(t *testing.T) {
	key := newTestKey(t)
	message := []byte("the quick brown fox")
	signature := key.sign(t, message)

	if !VerifySignature(key.publicRaw(), message, signature) {
		t.Fatal("a freshly produced signature must verify")
	}

	// Tampering with any byte of the message must fail the check.
	for _, i := range []int{0, len(message) / 2, len(message) - 1} {
		tampered := append([]byte(nil), message...)
		tampered[i] ^= 0x01
		if VerifySignature(key.publicRaw(), tampered, signature) {
			t.Errorf("signature verified over a message tampered at byte %d", i)
		}
	}

	// And so must a different key.
	other := newTestKey(t)
	if VerifySignature(other.publicRaw(), message, signature) {
		t.Error("signature verified under the wrong key")
	}
}

func TestVerifySignatureKeyNormalization(t *testing.T) {
	key := newTestKey(t)
	message := []byte("format byte synthesis")
	signature := key.sign(t, message)

	bare := VerifySignature(key.publicRaw(), message, signature)
	sec1 := VerifySignature(key.publicSEC1(), message, signature)
	if bare != sec1 || !bare {
		t.Errorf("64-byte and 0x04-prefixed keys must behave identically: bare=%t sec1=%t", bare, sec1)
	}
}

func TestVerifySignatureFailsClosed(t *testing.T) {
	key := newTestKey(t)
	message := []byte("fail closed")
	signature := key.sign(t, message)

	cases := map[string]struct {
		key []byte
		sig []byte
	}{
		"truncated key":       {key.publicRaw()[:63], signature},
		"oversized key":       {append(key.publicSEC1(), 0x00), signature},
		"wrong format byte":   {append([]byte{0x05}, key.publicRaw()...), signature},
		"off-curve key":       {make([]byte, 64), signature},
		"empty key":           {nil, signature},
		"truncated signature": {key.publicRaw(), signature[:63]},
		"oversized signature": {key.publicRaw(), append(signature, 0x00)},
		"empty signature":     {key.publicRaw(), nil},
		"zeroed signature":    {key.publicRaw(), make([]byte, 64)},
	}

	for name, c := range cases {
		if VerifySignature(c.key, message, c.sig) {
			t.Errorf("%s: malformed input must report false, never verify", name)
		}
	}
}

func TestVerifyRRSet(t *testing.T) {
	key := newTestKey(t)
	sig := testSIG(t, 2)
	owner := mustName(t, "sub.example.com.")
	records := []rr.Record{testTXTRecord(t, "sub.example.com.", 300, "proof")}

	message, err := BuildSignedData(owner, rr.ClassIN, sig, records)
	if err != nil {
		t.Fatalf("BuildSignedData returned unexpected error: %v", err)
	}
	signature := key.sign(t, message)
	sig.Signature = signature

	valid, err := VerifyRRSet(key.publicRaw(), owner, rr.ClassIN, sig, records, signature)
	if err != nil {
		t.Fatalf("VerifyRRSet returned unexpected error: %v", err)
	}
	if !valid {
		t.Fatal("a correctly signed rrset must verify")
	}

	// A record substitution is a cryptographic rejection: false, no error.
	forged := []rr.Record{testTXTRecord(t, "sub.example.com.", 300, "forged")}
	valid, err = VerifyRRSet(key.publicRaw(), owner, rr.ClassIN, sig, forged, signature)
	if err != nil {
		t.Fatalf("VerifyRRSet returned unexpected error: %v", err)
	}
	if valid {
		t.Fatal("a substituted rrset must not verify")
	}
}

func TestVerifyRRSetStructuralErrors(t *testing.T) {
	key := newTestKey(t)
	owner := mustName(t, "sub.example.com.")
	records := []rr.Record{testTXTRecord(t, "sub.example.com.", 300, "proof")}

	// Labels exceeding the owner's count is a structural refusal, distinct
	// from a cryptographic mismatch.
	sig := testSIG(t, 4)
	_, err := VerifyRRSet(key.publicRaw(), owner, rr.ClassIN, sig, records, make([]byte, 64))
	if !errors.Is(err, ErrInvalidLabelCount) {
		t.Errorf("expected ErrInvalidLabelCount, got %v", err)
	}

	_, err = VerifyRRSet(key.publicRaw(), owner, rr.ClassIN, nil, records, nil)
	if !errors.Is(err, ErrNilSIG) {
		t.Errorf("expected ErrNilSIG, got %v", err)
	}
}

func TestVerifyRRSetUnsupportedAlgorithm(t *testing.T) {
	key := newTestKey(t)
	owner := mustName(t, "sub.example.com.")
	records := []rr.Record{testTXTRecord(t, "sub.example.com.", 300, "proof")}

	sig := testSIG(t, 3)
	sig.Algorithm = rr.RSASHA256

	valid, err := VerifyRRSet(key.publicRaw(), owner, rr.ClassIN, sig, records, make([]byte, 64))
	if err != nil {
		t.Fatalf("VerifyRRSet returned unexpected error: %v", err)
	}
	if valid {
		t.Error("an algorithm we cannot verify must never report valid")
	}
}

// The reconstruction must byte-match an independent signer: sign with
// miekg/dns, verify with ours.
func TestVerifyRRSetInterop(t *testing.T) {
	signer, sig, records, signature := interopSign(t, "sub.example.com.", []string{"interop", "check"}, false)

	valid, err := VerifyRRSet(signer, mustName(t, "sub.example.com."), rr.ClassIN, sig, records, signature)
	if err != nil {
		t.Fatalf("VerifyRRSet returned unexpected error: %v", err)
	}
	if !valid {
		t.Fatal("a signature produced by miekg/dns must verify against our reconstruction")
	}
}

// A wildcard-synthesised answer: the zone signs *.example.com, the response
// carries sub.example.com, and the reconstruction must contract back.
func TestVerifyRRSetInteropWildcard(t *testing.T) {
	signer, sig, records, signature := interopSign(t, "sub.example.com.", []string{"wildcard"}, true)

	valid, err := VerifyRRSet(signer, mustName(t, "sub.example.com."), rr.ClassIN, sig, records, signature)
	if err != nil {
		t.Fatalf("VerifyRRSet returned unexpected error: %v", err)
	}
	if !valid {
		t.Fatal("a wildcard-contracted signature must verify against the expanded owner")
	}
}

// interopSign builds a TXT RRset and signs it with miekg/dns, returning the
// raw public key and our typed view of everything. With wildcard set, the
// zone-side owner is *.example.com while the returned records carry the
// expanded owner name.
func interopSign(t *testing.T, owner string, segments []string, wildcard bool) ([]byte, *rr.SIG, []rr.Record, []byte) {
	t.Helper()

	dnskey := &dns.DNSKEY{
		Hdr:       dns.RR_Header{Name: zoneName, Rrtype: dns.TypeDNSKEY, Class: dns.ClassINET, Ttl: 3600},
		Flags:     256,
		Protocol:  3,
		Algorithm: dns.ECDSAP256SHA256,
	}
	private, err := dnskey.Generate(256)
	if err != nil {
		t.Fatalf("generating dnskey: %v", err)
	}

	signingOwner := owner
	if wildcard {
		signingOwner = "*.example.com."
	}

	signed := make([]dns.RR, len(segments))
	for i, segment := range segments {
		signed[i] = &dns.TXT{
			Hdr: dns.RR_Header{Name: signingOwner, Rrtype: dns.TypeTXT, Class: dns.ClassINET, Ttl: 300},
			Txt: []string{segment},
		}
	}

	rrsig := &dns.RRSIG{
		Hdr:        dns.RR_Header{Name: signingOwner, Rrtype: dns.TypeRRSIG, Class: dns.ClassINET, Ttl: 300},
		Algorithm:  dns.ECDSAP256SHA256,
		OrigTtl:    300,
		Expiration: 0x60000000,
		Inception:  0x5F000000,
		KeyTag:     dnskey.KeyTag(),
		SignerName: zoneName,
	}
	if err := rrsig.Sign(private.(*ecdsa.PrivateKey), signed); err != nil {
		t.Fatalf("signing with miekg/dns: %v", err)
	}

	publicKey, err := base64.StdEncoding.DecodeString(dnskey.PublicKey)
	if err != nil {
		t.Fatalf("decoding dnskey public key: %v", err)
	}
	signature, err := base64.StdEncoding.DecodeString(rrsig.Signature)
	if err != nil {
		t.Fatalf("decoding rrsig signature: %v", err)
	}

	sig := &rr.SIG{
		TypeCovered: rr.TypeFromCode(rrsig.TypeCovered),
		Algorithm:   rr.ECDSAP256SHA256,
		Labels:      rrsig.Labels,
		OriginalTTL: rrsig.OrigTtl,
		Expiration:  rrsig.Expiration,
		Inception:   rrsig.Inception,
		KeyTag:      rrsig.KeyTag,
		SignerName:  mustName(t, rrsig.SignerName),
		Signature:   signature,
	}

	records := make([]rr.Record, len(segments))
	for i, segment := range segments {
		records[i] = testTXTRecord(t, owner, 300, segment)
	}

	return publicKey, sig, records, signature
}
