package rr

import "fmt"

// Algorithm is a DNSSEC signing algorithm with its 8-bit wire code
// (RFC 4034 Appendix A). The set is closed: supporting a new algorithm is a
// construction-time decision, not a runtime surprise. Only ECDSAP256SHA256
// is verifiable here; the rest exist for identification.
type Algorithm uint8

const (
	RSASHA1         Algorithm = 5
	RSASHA256       Algorithm = 8
	RSASHA512       Algorithm = 10
	ECDSAP256SHA256 Algorithm = 13
	ECDSAP384SHA384 Algorithm = 14
	ED25519         Algorithm = 15
)

// AlgorithmFromCode maps a wire code to its algorithm, rejecting codes
// outside the closed set.
func AlgorithmFromCode(code uint8) (Algorithm, error) {
	a := Algorithm(code)
	switch a {
	case RSASHA1, RSASHA256, RSASHA512, ECDSAP256SHA256, ECDSAP384SHA384, ED25519:
		return a, nil
	}
	return 0, fmt.Errorf("unknown dnssec algorithm code %d", code)
}

func (a Algorithm) Code() uint8 {
	return uint8(a)
}

func (a Algorithm) String() string {
	switch a {
	case RSASHA1:
		return "RSASHA1"
	case RSASHA256:
		return "RSASHA256"
	case RSASHA512:
		return "RSASHA512"
	case ECDSAP256SHA256:
		return "ECDSAP256SHA256"
	case ECDSAP384SHA384:
		return "ECDSAP384SHA384"
	case ED25519:
		return "ED25519"
	}
	return fmt.Sprintf("ALG%d", uint8(a))
}
