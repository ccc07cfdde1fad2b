package dnssec

import "errors"

var (
	ErrInvalidLabelCount = errors.New("rrsig labels field exceeds the owner name's label count")
	ErrEmptyRRSet        = errors.New("no records match the rrset being authenticated")
	ErrMissingRData      = errors.New("record in the rrset has no rdata")
	ErrNilSIG            = errors.New("nil signature metadata")
)
