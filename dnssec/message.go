// Package dnssec reconstructs the RFC 4034 "signed data" octet stream for a
// resource-record set and verifies an ECDSA P-256 signature over it. Every
// function is a pure transform: no I/O, no retained state, deterministic
// output for identical inputs.
package dnssec

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/dnscanon/dnscanon/rr"
	"github.com/dnscanon/dnscanon/wire"
)

type Logger func(string)

// Default logging functions just black-hole the input.

var Debug Logger = func(s string) {}
var Warn Logger = func(s string) {}

// BuildSignedData reconstructs the exact byte stream the RRset signature was
// computed over (RFC 4034 section 3.1.8.1):
//
//	signed_data = RRSIG_RDATA | RR(1) | RR(2)...
//
// RRSIG_RDATA is the signature metadata with the signature itself excluded
// and the signer name in lowercase canonical form. Each RR(i) is the
// canonical owner name, type covered, class, the signature's original TTL,
// and the length-prefixed canonical RDATA. The RRset is ordered by canonical
// RDATA octets (section 6.3) and no name within the stream may be
// compressed.
func BuildSignedData(owner rr.Name, class rr.DNSClass, sig *rr.SIG, records []rr.Record) ([]byte, error) {
	canonicalOwner, err := DetermineName(owner, sig.Labels)
	if err != nil {
		return nil, err
	}

	rrset := selectRRSet(owner, class, sig.TypeCovered, records)
	if len(rrset) == 0 {
		return nil, fmt.Errorf("%w: owner %s class %s type %s", ErrEmptyRRSet, owner, class, sig.TypeCovered)
	}

	// Each record's RDATA goes through a scratch encoder first: the length
	// field must be known before the bytes are written, and canonical
	// ordering is defined over these very octets.
	rdatas := make([][]byte, len(rrset))
	for i, record := range rrset {
		if record.Data == nil {
			return nil, fmt.Errorf("%w: owner %s type %s", ErrMissingRData, record.Name, record.Type)
		}
		scratch := wire.NewEncoder()
		scratch.SetCanonical(true)
		if err := record.Data.Emit(scratch); err != nil {
			return nil, err
		}
		rdatas[i] = scratch.Bytes()
	}
	sort.SliceStable(rdatas, func(i, j int) bool {
		return bytes.Compare(rdatas[i], rdatas[j]) < 0
	})

	e := wire.NewEncoder()
	e.SetCanonical(true)

	if err := sig.EmitSignedPrefix(e); err != nil {
		return nil, err
	}

	loweredOwner := canonicalOwner.ToLower()
	for _, rdata := range rdatas {
		if err := loweredOwner.Emit(e, true); err != nil {
			return nil, err
		}
		e.EmitU16(sig.TypeCovered.Code())
		e.EmitU16(class.Code())
		e.EmitU32(sig.OriginalTTL)
		e.EmitU16(uint16(len(rdata)))
		e.EmitBytes(rdata)
	}

	return e.Bytes(), nil
}

// DetermineName computes the owner name the signature covers from the RRSIG
// Labels field (RFC 4034 section 3.1.8.1):
//
//   - equal label counts leave the name untouched;
//   - a smaller Labels value contracts the owner to "*." plus its rightmost
//     Labels labels (the record was synthesised from a wildcard);
//   - a larger Labels value means the record cannot have been produced by
//     this signature, and verification is refused.
func DetermineName(name rr.Name, numLabels uint8) (rr.Name, error) {
	fqdnLabels := name.NumLabels()

	if numLabels == fqdnLabels {
		return name, nil
	}

	if numLabels < fqdnLabels {
		star, err := rr.NameFromLabels([]rr.Label{rr.Wildcard()})
		if err != nil {
			return rr.Name{}, err
		}
		rightmost := name.TrimTo(int(numLabels))
		if rightmost.IsRoot() {
			return star, nil
		}
		return star.Append(rightmost)
	}

	return rr.Name{}, fmt.Errorf("%w: owner %s has %d labels, rrsig labels field is %d",
		ErrInvalidLabelCount, name, fqdnLabels, numLabels)
}

// selectRRSet picks the records forming the RRset under authentication:
// matching class, matching covered type, and an owner name equal to the
// queried one (case-insensitively).
func selectRRSet(owner rr.Name, class rr.DNSClass, covered rr.RecordType, records []rr.Record) []rr.Record {
	set := make([]rr.Record, 0, len(records))
	for _, record := range records {
		if record.Class == class && record.Type == covered && record.Name.Equal(owner) {
			set = append(set, record)
		}
	}
	return set
}
