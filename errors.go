package dnscanon

import "errors"

var (
	ErrExchangeFailed    = errors.New("exchange with resolver failed over both udp and tcp")
	ErrEmptyResponse     = errors.New("resolver returned an empty response")
	ErrNoTXTRecords      = errors.New("no txt records found for domain")
	ErrNoCoveringRRSIG   = errors.New("no rrsig found covering the txt rrset")
	ErrNoMatchingDNSKEY  = errors.New("no dnskey found matching the rrsig's key tag")
	ErrKeyTagMismatch    = errors.New("computed key tag does not match the resolver's record")
	ErrUnsupportedRecord = errors.New("record cannot be converted for verification")
)
