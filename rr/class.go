package rr

import "fmt"

// DNSClass is a record class with its 16-bit wire code. The set is closed:
// the classes below are the only constructible values.
type DNSClass uint16

const (
	ClassIN   DNSClass = 1   // Internet
	ClassCH   DNSClass = 3   // Chaos
	ClassHS   DNSClass = 4   // Hesiod
	ClassNONE DNSClass = 254 // QCLASS NONE
	ClassANY  DNSClass = 255 // QCLASS * (ANY)
)

// ClassFromCode maps a wire code to its class, rejecting codes outside the
// closed set.
func ClassFromCode(code uint16) (DNSClass, error) {
	c := DNSClass(code)
	switch c {
	case ClassIN, ClassCH, ClassHS, ClassNONE, ClassANY:
		return c, nil
	}
	return 0, fmt.Errorf("unknown dns class code %d", code)
}

func (c DNSClass) Code() uint16 {
	return uint16(c)
}

func (c DNSClass) String() string {
	switch c {
	case ClassIN:
		return "IN"
	case ClassCH:
		return "CH"
	case ClassHS:
		return "HS"
	case ClassNONE:
		return "NONE"
	case ClassANY:
		return "ANY"
	}
	return fmt.Sprintf("CLASS%d", uint16(c))
}
