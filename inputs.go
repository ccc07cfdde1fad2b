package dnscanon

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/dnscanon/dnscanon/dnssec"
	"github.com/dnscanon/dnscanon/rr"
	"github.com/hashicorp/go-multierror"
	"github.com/miekg/dns"
)

// Inputs is the complete, typed argument set for one verification call:
// exactly what the core's pure boundary consumes, with the resolver and
// wire parsing already dealt with.
type Inputs struct {
	Domain    string
	PublicKey []byte
	Owner     rr.Name
	Class     rr.DNSClass
	Sig       *rr.SIG
	Records   []rr.Record
	Signature []byte

	// Kept for reporting.
	TXT    []*dns.TXT
	RRSIG  *dns.RRSIG
	DNSKEY *dns.DNSKEY
}

// Verify runs the pure core over the inputs. The error channel carries
// structural problems only; a cryptographic mismatch is false with no error.
func (in *Inputs) Verify() (bool, error) {
	return dnssec.VerifyRRSet(in.PublicKey, in.Owner, in.Class, in.Sig, in.Records, in.Signature)
}

// GenerateInputs gathers everything needed to verify the TXT RRset of
// domain: the TXT records themselves, the RRSIG covering them, and the
// signer's DNSKEY whose key tag the RRSIG names.
func (c *Client) GenerateInputs(ctx context.Context, trace *Trace, domain string) (*Inputs, error) {
	txtMsg, err := c.lookup(ctx, trace, domain, dns.TypeTXT)
	if err != nil {
		return nil, err
	}
	txts := extractRecords[*dns.TXT](txtMsg.Answer)
	if len(txts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTXTRecords, domain)
	}

	rrsig := findCoveringRRSIG(txtMsg.Answer)
	if rrsig == nil {
		// Some resolvers strip RRSIGs from the answer; ask explicitly.
		sigMsg, err := c.lookup(ctx, trace, domain, dns.TypeRRSIG)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrNoCoveringRRSIG, domain, err)
		}
		rrsig = findCoveringRRSIG(sigMsg.Answer)
	}
	if rrsig == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCoveringRRSIG, domain)
	}

	key, err := c.findSignerKey(ctx, trace, rrsig)
	if err != nil {
		return nil, err
	}

	return buildInputs(domain, txts, rrsig, key)
}

// findSignerKey fetches the signer zone's DNSKEY RRset and picks the key the
// RRSIG identifies by key tag, algorithm and owner.
func (c *Client) findSignerKey(ctx context.Context, trace *Trace, rrsig *dns.RRSIG) (*dns.DNSKEY, error) {
	keyMsg, err := c.lookup(ctx, trace, rrsig.SignerName, dns.TypeDNSKEY)
	if err != nil {
		return nil, err
	}

	// https://datatracker.ietf.org/doc/html/rfc4035#section-5.3.1
	// More than one DNSKEY can share a tag; any of them may be the signer.
	// We take the first full match and leave trying the rest to the caller,
	// since the verification itself is single-key.
	for _, key := range extractRecords[*dns.DNSKEY](keyMsg.Answer) {
		if key.Algorithm == rrsig.Algorithm && key.KeyTag() == rrsig.KeyTag &&
			dns.CanonicalName(key.Header().Name) == dns.CanonicalName(rrsig.SignerName) {
			return key, nil
		}
	}
	return nil, fmt.Errorf("%w: tag %d in zone %s", ErrNoMatchingDNSKEY, rrsig.KeyTag, rrsig.SignerName)
}

func findCoveringRRSIG(answer []dns.RR) *dns.RRSIG {
	for _, sig := range extractRecords[*dns.RRSIG](answer) {
		if sig.TypeCovered == dns.TypeTXT {
			return sig
		}
	}
	return nil
}

// buildInputs converts the miekg/dns records into the core's typed model.
// Conversion failures across the records are aggregated, so one bad record
// reports alongside the rest.
func buildInputs(domain string, txts []*dns.TXT, rrsig *dns.RRSIG, key *dns.DNSKEY) (*Inputs, error) {
	var errs *multierror.Error

	owner, err := rr.NameFromString(dns.Fqdn(domain))
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("%w: owner %s: %w", ErrUnsupportedRecord, domain, err))
	}

	sig, err := convertRRSIG(rrsig)
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	records := make([]rr.Record, 0, len(txts))
	for _, txt := range txts {
		record, err := convertTXT(txt)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		records = append(records, record)
	}

	publicKey, err := base64.StdEncoding.DecodeString(key.PublicKey)
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("%w: dnskey public key: %w", ErrUnsupportedRecord, err))
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	// The resolver's key tag and ours are computed independently; a mismatch
	// means one of us mis-serialized the RDATA.
	if tag := convertDNSKEY(key, publicKey).KeyTag(); tag != key.KeyTag() {
		return nil, fmt.Errorf("%w: computed %d, record says %d", ErrKeyTagMismatch, tag, key.KeyTag())
	}

	return &Inputs{
		Domain:    domain,
		PublicKey: publicKey,
		Owner:     owner,
		Class:     rr.ClassIN,
		Sig:       sig,
		Records:   records,
		Signature: sig.Signature,
		TXT:       txts,
		RRSIG:     rrsig,
		DNSKEY:    key,
	}, nil
}

func convertRRSIG(rrsig *dns.RRSIG) (*rr.SIG, error) {
	algorithm, err := rr.AlgorithmFromCode(rrsig.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedRecord, err)
	}
	signerName, err := rr.NameFromString(rrsig.SignerName)
	if err != nil {
		return nil, fmt.Errorf("%w: signer name %s: %w", ErrUnsupportedRecord, rrsig.SignerName, err)
	}
	signature, err := base64.StdEncoding.DecodeString(rrsig.Signature)
	if err != nil {
		return nil, fmt.Errorf("%w: rrsig signature: %w", ErrUnsupportedRecord, err)
	}
	return &rr.SIG{
		TypeCovered: rr.TypeFromCode(rrsig.TypeCovered),
		Algorithm:   algorithm,
		Labels:      rrsig.Labels,
		OriginalTTL: rrsig.OrigTtl,
		Expiration:  rrsig.Expiration,
		Inception:   rrsig.Inception,
		KeyTag:      rrsig.KeyTag,
		SignerName:  signerName,
		Signature:   signature,
	}, nil
}

func convertTXT(txt *dns.TXT) (rr.Record, error) {
	name, err := rr.NameFromString(txt.Hdr.Name)
	if err != nil {
		return rr.Record{}, fmt.Errorf("%w: txt owner %s: %w", ErrUnsupportedRecord, txt.Hdr.Name, err)
	}
	class, err := rr.ClassFromCode(txt.Hdr.Class)
	if err != nil {
		return rr.Record{}, fmt.Errorf("%w: %w", ErrUnsupportedRecord, err)
	}
	return rr.Record{
		Name:  name,
		Type:  rr.TypeTXT,
		Class: class,
		TTL:   txt.Hdr.Ttl,
		Data:  rr.NewTXT(txt.Txt...),
	}, nil
}

func convertDNSKEY(key *dns.DNSKEY, publicKey []byte) *rr.DNSKEY {
	algorithm, err := rr.AlgorithmFromCode(key.Algorithm)
	if err != nil {
		// findSignerKey only returns keys matching the RRSIG's algorithm,
		// which convertRRSIG has already vetted.
		return &rr.DNSKEY{PublicKey: publicKey}
	}
	return &rr.DNSKEY{
		ZoneKey:          key.Flags&0x0100 != 0,
		SecureEntryPoint: key.Flags&0x0001 != 0,
		Revoke:           key.Flags&0x0080 != 0,
		Algorithm:        algorithm,
		PublicKey:        publicKey,
	}
}

func extractRecords[T dns.RR](records []dns.RR) []T {
	r := make([]T, 0, len(records))
	for _, record := range records {
		if typedRecord, ok := record.(T); ok {
			r = append(r, typedRecord)
		}
	}
	return r
}
