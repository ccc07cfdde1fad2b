package rr

import "github.com/dnscanon/dnscanon/wire"

// SIG carries the signature metadata and signature bytes for an RRset
// (RFC 4034 section 3.1; SIG and RRSIG share the wire layout).
type SIG struct {
	TypeCovered RecordType
	Algorithm   Algorithm
	// Labels is the RRSIG Labels field: the owner-name label count with any
	// leading wildcard excluded. It drives wildcard contraction during
	// signed-data reconstruction.
	Labels      uint8
	OriginalTTL uint32
	Expiration  uint32
	Inception   uint32
	KeyTag      uint16
	SignerName  Name
	Signature   []byte
}

func (s *SIG) Type() RecordType {
	return TypeSIG
}

// Emit writes the full RDATA, signature included. The signer name is always
// canonical: compression is forced off and the stored case is kept, since
// case folding of RDATA names belongs to the signing path, not the record
// itself.
func (s *SIG) Emit(e *wire.Encoder) error {
	if err := s.emitMetadata(e); err != nil {
		return err
	}
	e.EmitBytes(s.Signature)
	return nil
}

// emitMetadata writes every RDATA field up to, and excluding, the signature
// bytes. This prefix is exactly what RFC 4034 section 3.1.8.1 places at the
// front of the signed data.
func (s *SIG) emitMetadata(e *wire.Encoder) error {
	e.EmitU16(s.TypeCovered.Code())
	e.EmitU8(s.Algorithm.Code())
	e.EmitU8(s.Labels)
	e.EmitU32(s.OriginalTTL)
	e.EmitU32(s.Expiration)
	e.EmitU32(s.Inception)
	e.EmitU16(s.KeyTag)
	return s.SignerName.Emit(e, true)
}

// EmitSignedPrefix writes the RRSIG_RDATA portion of the signed data: the
// metadata fields with the signer name lowercased (RFC 4034 section 6.2
// rule 3).
func (s *SIG) EmitSignedPrefix(e *wire.Encoder) error {
	lowered := *s
	lowered.SignerName = s.SignerName.ToLower()
	return lowered.emitMetadata(e)
}

func (s *SIG) isRData() {}

// RRSIG is the DNSSEC-bis rendition of SIG. Layout and canonicalization
// rules are identical; the distinct type exists so a record's declared type
// and payload stay consistent.
type RRSIG struct {
	SIG
}

func (s *RRSIG) Type() RecordType {
	return TypeRRSIG
}
