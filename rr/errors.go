package rr

import "errors"

var (
	ErrLabelEmpty     = errors.New("label requires a minimum length of 1")
	ErrLabelTooLong   = errors.New("label exceeds maximum length of 63 octets")
	ErrMalformedLabel = errors.New("malformed label")

	ErrNameTooLong   = errors.New("name exceeds maximum encoded length of 255 octets")
	ErrTooManyLabels = errors.New("name exceeds maximum of 255 labels")
	ErrMalformedName = errors.New("malformed name")

	ErrMissingRData = errors.New("record has no rdata")
)
