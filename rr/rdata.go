package rr

import "github.com/dnscanon/dnscanon/wire"

// RData is a typed record payload. The union is closed to the types this
// package defines; dispatch is on the record's declared type.
type RData interface {
	// Type is the record type the payload belongs to.
	Type() RecordType
	// Emit writes the payload's canonical wire form.
	Emit(e *wire.Encoder) error

	isRData()
}

// Record is a single resource record. Data may be nil for records obtained
// without their payload; such a record can never participate in signature
// verification.
type Record struct {
	Name  Name
	Type  RecordType
	Class DNSClass
	TTL   uint32
	Data  RData
}
