package rr

import "github.com/dnscanon/dnscanon/wire"

// TXT holds one or more <character-string>s (RFC 1035 section 3.3.14).
type TXT struct {
	Data [][]byte
}

// NewTXT builds a TXT payload from text segments.
func NewTXT(segments ...string) *TXT {
	data := make([][]byte, len(segments))
	for i, s := range segments {
		data[i] = []byte(s)
	}
	return &TXT{Data: data}
}

func (t *TXT) Type() RecordType {
	return TypeTXT
}

// Emit writes each character-string in order, length-prefixed.
func (t *TXT) Emit(e *wire.Encoder) error {
	for _, segment := range t.Data {
		if err := e.EmitCharacterData(segment); err != nil {
			return err
		}
	}
	return nil
}

func (t *TXT) isRData() {}
