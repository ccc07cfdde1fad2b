package dnscanon

import (
	"encoding/hex"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/miekg/dns"
)

// Report renders the fetched record details and the verdict as an aligned
// table, mirroring what the record holder published.
func (in *Inputs) Report(valid bool) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Domain:\t%s\n", in.Domain)
	fmt.Fprintf(w, "Verified:\t%t\n", valid)
	fmt.Fprintf(w, "\t\n")

	for i, txt := range in.TXT {
		fmt.Fprintf(w, "TXT[%d] Owner:\t%s\n", i, txt.Hdr.Name)
		fmt.Fprintf(w, "TXT[%d] TTL:\t%d\n", i, txt.Hdr.Ttl)
		fmt.Fprintf(w, "TXT[%d] Data:\t%q\n", i, strings.Join(txt.Txt, " "))
	}
	fmt.Fprintf(w, "\t\n")

	fmt.Fprintf(w, "RRSIG Type Covered:\t%s\n", dns.TypeToString[in.RRSIG.TypeCovered])
	fmt.Fprintf(w, "RRSIG Algorithm:\t%s\n", dns.AlgorithmToString[in.RRSIG.Algorithm])
	fmt.Fprintf(w, "RRSIG Labels:\t%d\n", in.RRSIG.Labels)
	fmt.Fprintf(w, "RRSIG Original TTL:\t%d\n", in.RRSIG.OrigTtl)
	fmt.Fprintf(w, "RRSIG Expiration:\t%s\n", dns.TimeToString(in.RRSIG.Expiration))
	fmt.Fprintf(w, "RRSIG Inception:\t%s\n", dns.TimeToString(in.RRSIG.Inception))
	fmt.Fprintf(w, "RRSIG Key Tag:\t%d\n", in.RRSIG.KeyTag)
	fmt.Fprintf(w, "RRSIG Signer Name:\t%s\n", in.RRSIG.SignerName)
	fmt.Fprintf(w, "RRSIG Signature:\t%s\n", hex.EncodeToString(in.Signature))
	fmt.Fprintf(w, "\t\n")

	fmt.Fprintf(w, "DNSKEY Flags:\t%d\n", in.DNSKEY.Flags)
	fmt.Fprintf(w, "DNSKEY Key Tag:\t%d\n", in.DNSKEY.KeyTag())
	fmt.Fprintf(w, "DNSKEY Algorithm:\t%s\n", dns.AlgorithmToString[in.DNSKEY.Algorithm])
	fmt.Fprintf(w, "DNSKEY Public Key:\t%s\n", hex.EncodeToString(in.PublicKey))

	w.Flush()
	return sb.String()
}

// Dump is a full debug rendering of the typed inputs.
func (in *Inputs) Dump() string {
	return spew.Sdump(in)
}
