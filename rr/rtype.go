package rr

import "fmt"

// RecordType is a record type code. Unlike DNSClass, the protocol allows
// codes we do not model, so any 16-bit value is representable; unnamed codes
// render in the RFC 3597 TYPEnnn form.
type RecordType uint16

const (
	TypeTXT    RecordType = 16
	TypeSIG    RecordType = 24
	TypeOPT    RecordType = 41
	TypeDS     RecordType = 43
	TypeRRSIG  RecordType = 46
	TypeDNSKEY RecordType = 48
)

// TypeFromCode is total: unrecognised codes pass through as their numeric
// value.
func TypeFromCode(code uint16) RecordType {
	return RecordType(code)
}

func (t RecordType) Code() uint16 {
	return uint16(t)
}

func (t RecordType) String() string {
	switch t {
	case TypeTXT:
		return "TXT"
	case TypeSIG:
		return "SIG"
	case TypeOPT:
		return "OPT"
	case TypeDS:
		return "DS"
	case TypeRRSIG:
		return "RRSIG"
	case TypeDNSKEY:
		return "DNSKEY"
	}
	return fmt.Sprintf("TYPE%d", uint16(t))
}
