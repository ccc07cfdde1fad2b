// Package rr models DNS names, resource records and the minimal set of RDATA
// types needed to reconstruct and authenticate a signed RRset: TXT, DNSKEY
// and SIG/RRSIG.
package rr

import (
	"fmt"
	"strings"
)

const wildcardLabel = "*"

// Label is a single component of a domain name: 1 to 63 octets
// (RFC 2181 section 11). Equality is ASCII case-insensitive; the stored
// bytes preserve the original case for display.
type Label struct {
	data []byte
}

// LabelFromBytes validates the length bounds and copies the given bytes.
func LabelFromBytes(b []byte) (Label, error) {
	if len(b) == 0 {
		return Label{}, ErrLabelEmpty
	}
	if len(b) > 63 {
		return Label{}, fmt.Errorf("%w: %d octets", ErrLabelTooLong, len(b))
	}
	data := make([]byte, len(b))
	copy(data, b)
	return Label{data: data}, nil
}

// LabelFromString parses an unescaped ASCII label. The wildcard "*" is
// accepted as a whole label; otherwise characters are restricted to
// alphanumerics, underscore, and non-leading dash.
func LabelFromString(s string) (Label, error) {
	if len(s) > 63 {
		return Label{}, fmt.Errorf("%w: %d octets", ErrLabelTooLong, len(s))
	}
	if s == wildcardLabel {
		return Wildcard(), nil
	}
	if len(s) == 0 {
		return Label{}, ErrLabelEmpty
	}
	for i := 0; i < len(s); i++ {
		if !isSafeASCII(s[i], i == 0) {
			return Label{}, fmt.Errorf("%w: %q", ErrMalformedLabel, s)
		}
	}
	return LabelFromBytes([]byte(s))
}

// Wildcard returns the "*" label.
func Wildcard() Label {
	return Label{data: []byte(wildcardLabel)}
}

func (l Label) IsWildcard() bool {
	return string(l.data) == wildcardLabel
}

func (l Label) Bytes() []byte {
	return l.data
}

func (l Label) Len() int {
	return len(l.data)
}

// ToLower returns a copy with ASCII letters folded to lowercase.
func (l Label) ToLower() Label {
	lower := make([]byte, len(l.data))
	for i, b := range l.data {
		lower[i] = toLowerByte(b)
	}
	return Label{data: lower}
}

// Equal reports case-insensitive equality, matching DNS name comparison
// rules (RFC 4343).
func (l Label) Equal(other Label) bool {
	if len(l.data) != len(other.data) {
		return false
	}
	for i := range l.data {
		if toLowerByte(l.data[i]) != toLowerByte(other.data[i]) {
			return false
		}
	}
	return true
}

// WriteEscaped renders the label as presentation text: printable safe bytes
// verbatim, printable-but-special bytes as \c, and everything else as a \DDD
// octal escape. This path is diagnostic only and plays no part in signing.
func (l Label) WriteEscaped(sb *strings.Builder) {
	for i, b := range l.data {
		switch {
		case isSafeASCII(b, i == 0):
			sb.WriteByte(b)
		case b > 0x20 && b < 0x7f:
			sb.WriteByte('\\')
			sb.WriteByte(b)
		default:
			fmt.Fprintf(sb, "\\%03o", b)
		}
	}
}

// String returns the escaped presentation form.
func (l Label) String() string {
	var sb strings.Builder
	l.WriteEscaped(&sb)
	return sb.String()
}

func isSafeASCII(b byte, first bool) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '-':
		return !first
	case b == '_':
		return true
	case b == '*':
		return first
	}
	return false
}

func toLowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
