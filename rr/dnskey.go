package rr

import "github.com/dnscanon/dnscanon/wire"

// DNSKEY flag bits within the 16-bit Flags field (RFC 4034 section 2.1.1,
// RFC 5011 for REVOKE).
const (
	dnskeyFlagZoneKey          = 0x0100
	dnskeyFlagRevoke           = 0x0080
	dnskeyFlagSecureEntryPoint = 0x0001
)

// The Protocol field is fixed at 3; any other value makes the key unusable
// for DNSSEC (RFC 4034 section 2.1.2).
const dnskeyProtocol = 3

// DNSKEY is a public-key payload (RFC 4034 section 2).
type DNSKEY struct {
	ZoneKey          bool
	SecureEntryPoint bool
	Revoke           bool
	Algorithm        Algorithm
	PublicKey        []byte
}

func (k *DNSKEY) Type() RecordType {
	return TypeDNSKEY
}

// Flags packs the bit fields into the wire Flags value.
func (k *DNSKEY) Flags() uint16 {
	var flags uint16
	if k.ZoneKey {
		flags |= dnskeyFlagZoneKey
	}
	if k.Revoke {
		flags |= dnskeyFlagRevoke
	}
	if k.SecureEntryPoint {
		flags |= dnskeyFlagSecureEntryPoint
	}
	return flags
}

func (k *DNSKEY) Emit(e *wire.Encoder) error {
	e.EmitU16(k.Flags())
	e.EmitU8(dnskeyProtocol)
	e.EmitU8(k.Algorithm.Code())
	e.EmitBytes(k.PublicKey)
	return nil
}

// KeyTag computes the RFC 4034 Appendix B checksum over the RDATA, used to
// pick which key among several signed an RRset.
func (k *DNSKEY) KeyTag() uint16 {
	e := wire.NewEncoder()
	_ = k.Emit(e)

	var acc uint32
	for i, b := range e.Bytes() {
		if i&1 == 1 {
			acc += uint32(b)
		} else {
			acc += uint32(b) << 8
		}
	}
	acc += acc >> 16 & 0xFFFF
	return uint16(acc & 0xFFFF)
}

func (k *DNSKEY) isRData() {}
