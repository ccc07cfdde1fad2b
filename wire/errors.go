package wire

import "errors"

var (
	ErrCharacterDataTooLong = errors.New("character data exceeds 255 octets")
)
