package rr

import (
	"fmt"
	"strings"

	"github.com/dnscanon/dnscanon/wire"
)

// Name is an ordered sequence of labels forming a domain name. Labels are
// stored back to back in a flat buffer, with labelEnds marking the offset
// one past each label. A Name is a value: transformations return new
// instances and never mutate in place.
type Name struct {
	fqdn      bool
	labelData []byte
	labelEnds []uint8
}

// Root returns the root name ".": zero labels, fully qualified.
func Root() Name {
	return Name{fqdn: true}
}

// NameFromLabels builds a fully qualified name from the given labels,
// validating the 255-label and 255-octet encoded-length bounds.
func NameFromLabels(labels []Label) (Name, error) {
	n := Name{fqdn: true}
	for _, l := range labels {
		var err error
		if n, err = n.appendLabel(l); err != nil {
			return Name{}, err
		}
	}
	return n, nil
}

// NameFromString parses presentation-format text. Escapes \c and \DDD
// (octal) are decoded, dots separate labels, and a trailing dot marks the
// name fully qualified. Without a trailing dot the name remains relative.
func NameFromString(s string) (Name, error) {
	return parseName(s, nil)
}

// NameFromStringWithOrigin parses as NameFromString, then appends origin to
// a relative result, marking it fully qualified.
func NameFromStringWithOrigin(s string, origin Name) (Name, error) {
	return parseName(s, &origin)
}

func (n Name) IsFQDN() bool {
	return n.fqdn
}

func (n Name) IsRoot() bool {
	return len(n.labelEnds) == 0 && n.fqdn
}

// IsWildcard reports whether the leftmost label is "*".
func (n Name) IsWildcard() bool {
	return len(n.labelEnds) > 0 && string(n.labelAt(0)) == wildcardLabel
}

// LabelCount is the raw number of labels, wildcard included.
func (n Name) LabelCount() int {
	return len(n.labelEnds)
}

// NumLabels counts labels for RRSIG Labels-field arithmetic: a leading
// wildcard label is excluded (RFC 4034 section 3.1.3).
func (n Name) NumLabels() uint8 {
	num := uint8(len(n.labelEnds))
	if n.IsWildcard() {
		num--
	}
	return num
}

// Labels returns the labels in order, leftmost first.
func (n Name) Labels() []Label {
	labels := make([]Label, len(n.labelEnds))
	for i := range n.labelEnds {
		labels[i] = Label{data: n.labelAt(i)}
	}
	return labels
}

func (n Name) labelAt(i int) []byte {
	start := 0
	if i > 0 {
		start = int(n.labelEnds[i-1])
	}
	return n.labelData[start:n.labelEnds[i]]
}

// TrimTo returns the rightmost count labels as a new Name, preserving the
// fully-qualified flag. A count of zero (or fewer) yields the root.
func (n Name) TrimTo(count int) Name {
	if count >= len(n.labelEnds) {
		return n
	}
	if count <= 0 {
		return Name{fqdn: n.fqdn}
	}
	skip := len(n.labelEnds) - count
	start := int(n.labelEnds[skip-1])
	trimmed := Name{fqdn: n.fqdn}
	trimmed.labelData = append(trimmed.labelData, n.labelData[start:]...)
	for _, end := range n.labelEnds[skip:] {
		trimmed.labelEnds = append(trimmed.labelEnds, end-uint8(start))
	}
	return trimmed
}

// Append concatenates other's labels onto n, adopting other's
// fully-qualified flag. Fails if the combined name breaches the length
// bounds.
func (n Name) Append(other Name) (Name, error) {
	combined := Name{fqdn: other.fqdn}
	combined.labelData = append(combined.labelData, n.labelData...)
	combined.labelEnds = append(combined.labelEnds, n.labelEnds...)
	for i := range other.labelEnds {
		var err error
		l := Label{data: other.labelAt(i)}
		if combined, err = combined.appendLabelKeepFlag(l); err != nil {
			return Name{}, err
		}
	}
	return combined, nil
}

// ToLower returns the name with every stored label byte ASCII-folded.
// DNSSEC canonical form folds the owner and signer names this way.
func (n Name) ToLower() Name {
	lower := Name{fqdn: n.fqdn}
	lower.labelData = make([]byte, len(n.labelData))
	for i, b := range n.labelData {
		lower.labelData[i] = toLowerByte(b)
	}
	lower.labelEnds = append(lower.labelEnds, n.labelEnds...)
	return lower
}

// Equal reports case-insensitive equality over labels and the
// fully-qualified flag.
func (n Name) Equal(other Name) bool {
	if n.fqdn != other.fqdn || len(n.labelEnds) != len(other.labelEnds) {
		return false
	}
	if len(n.labelData) != len(other.labelData) {
		return false
	}
	for i := range n.labelData {
		if toLowerByte(n.labelData[i]) != toLowerByte(other.labelData[i]) {
			return false
		}
	}
	for i := range n.labelEnds {
		if n.labelEnds[i] != other.labelEnds[i] {
			return false
		}
	}
	return true
}

// EncodedLen is the wire length of the name when written without
// compression: one length octet per label, the label bytes, and the root
// terminator.
func (n Name) EncodedLen() int {
	return len(n.labelData) + len(n.labelEnds) + 1
}

// String renders the presentation form, with a trailing dot when fully
// qualified. The root renders as ".".
func (n Name) String() string {
	if n.IsRoot() {
		return "."
	}
	var sb strings.Builder
	for i := range n.labelEnds {
		if i > 0 {
			sb.WriteByte('.')
		}
		Label{data: n.labelAt(i)}.WriteEscaped(&sb)
	}
	if n.fqdn {
		sb.WriteByte('.')
	}
	return sb.String()
}

// Emit writes the name in wire form. In canonical mode (either via the
// argument or the encoder's flag) compression pointers are never produced
// and no new suffixes are recorded; otherwise a previously written matching
// suffix is replaced by a 14-bit back reference (RFC 1035 section 4.1.4).
func (n Name) Emit(e *wire.Encoder, canonical bool) error {
	if n.EncodedLen() > 255 {
		return fmt.Errorf("%w: %d octets", ErrNameTooLong, n.EncodedLen())
	}
	canonical = canonical || e.Canonical()

	labelOffsets := make([]int, 0, len(n.labelEnds))
	for i := range n.labelEnds {
		label := n.labelAt(i)
		if len(label) > 63 {
			return fmt.Errorf("%w: %d octets", ErrLabelTooLong, len(label))
		}
		labelOffsets = append(labelOffsets, e.Offset())
		e.EmitU8(uint8(len(label)))
		e.EmitBytes(label)
	}
	end := e.Offset()

	for _, offset := range labelOffsets {
		ptr, found := e.FindSuffix(offset, end)
		switch {
		case found && !canonical:
			// Reuse the earlier occurrence: drop this suffix and point back.
			e.Truncate(offset)
			e.EmitU16(0xC000 | ptr)
			return nil
		case found:
			// Canonical form forbids pointers inside signed data; the full
			// name stays written out.
		case !canonical:
			e.RecordSuffix(offset, end)
		}
	}

	// Terminating root label.
	e.EmitU8(0)
	return nil
}

func (n Name) appendLabel(l Label) (Name, error) {
	return n.appendLabelKeepFlag(l)
}

func (n Name) appendLabelKeepFlag(l Label) (Name, error) {
	if len(n.labelEnds) >= 255 {
		return Name{}, ErrTooManyLabels
	}
	if n.EncodedLen()+l.Len()+1 > 255 {
		return Name{}, fmt.Errorf("%w: appending label %q", ErrNameTooLong, l.String())
	}
	next := Name{fqdn: n.fqdn}
	next.labelData = append(next.labelData, n.labelData...)
	next.labelData = append(next.labelData, l.data...)
	next.labelEnds = append(next.labelEnds, n.labelEnds...)
	next.labelEnds = append(next.labelEnds, uint8(len(next.labelData)))
	return next, nil
}

// parseName is a character-class state machine over the input: plain label
// bytes, "\c" single-character escapes, and "\DDD" three-digit octal
// escapes.
func parseName(s string, origin *Name) (Name, error) {
	name := Name{}
	if s == "." {
		return Root(), nil
	}

	const (
		stateLabel = iota
		stateEscape
		stateOctal
	)

	var (
		state   = stateLabel
		current []byte
		octal   int
		digits  int
		fqdn    bool
	)

	endLabel := func() error {
		if len(current) == 0 {
			return fmt.Errorf("%w: empty label in %q", ErrMalformedName, s)
		}
		label, err := LabelFromBytes(current)
		if err != nil {
			return err
		}
		name, err = name.appendLabel(label)
		current = current[:0]
		return err
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch state {
		case stateLabel:
			switch c {
			case '.':
				if err := endLabel(); err != nil {
					return Name{}, err
				}
				if i == len(s)-1 {
					fqdn = true
				}
			case '\\':
				state = stateEscape
			default:
				if c < 0x20 || c > 0x7e {
					return Name{}, fmt.Errorf("%w: non-printable byte %#x in %q", ErrMalformedName, c, s)
				}
				current = append(current, c)
			}
		case stateEscape:
			switch {
			case c >= '0' && c <= '7':
				state = stateOctal
				octal = int(c - '0')
				digits = 1
			case c == '8' || c == '9':
				return Name{}, fmt.Errorf("%w: bad octal escape in %q", ErrMalformedName, s)
			default:
				current = append(current, c)
				state = stateLabel
			}
		case stateOctal:
			if c < '0' || c > '7' {
				return Name{}, fmt.Errorf("%w: bad octal escape in %q", ErrMalformedName, s)
			}
			octal = octal<<3 | int(c-'0')
			digits++
			if digits == 3 {
				if octal > 0xff {
					return Name{}, fmt.Errorf("%w: octal escape out of range in %q", ErrMalformedName, s)
				}
				current = append(current, byte(octal))
				state = stateLabel
			}
		}
	}

	if state != stateLabel {
		return Name{}, fmt.Errorf("%w: unterminated escape in %q", ErrMalformedName, s)
	}
	if len(current) > 0 {
		if err := endLabel(); err != nil {
			return Name{}, err
		}
	}

	name.fqdn = fqdn
	if !fqdn && origin != nil {
		return name.Append(*origin)
	}
	return name, nil
}
