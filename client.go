package dnscanon

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/miekg/dns"
)

type dnsClient interface {
	ExchangeContext(context.Context, *dns.Msg, string) (*dns.Msg, time.Duration, error)
}

// dnsClientFactory defines a factory function for creating a DNS client.
type dnsClientFactory func(protocol string) dnsClient

// Client performs the DNSSEC-aware lookups against a single recursive
// resolver. It asks for recursion with the DO bit set so responses carry the
// RRSIGs we need.
type Client struct {
	ResolverAddr string
	TimeoutUDP   time.Duration
	TimeoutTCP   time.Duration
	Attempts     int

	dnsClientFactory dnsClientFactory
}

func NewClient(resolverAddr string) *Client {
	if resolverAddr == "" {
		resolverAddr = DefaultResolverAddr
	}
	return &Client{
		ResolverAddr: resolverAddr,
		TimeoutUDP:   DefaultTimeoutUDP,
		TimeoutTCP:   DefaultTimeoutTCP,
		Attempts:     DefaultLookupAttempts,
	}
}

func (c *Client) defaultDnsClientFactory(protocol string) dnsClient {
	timeout := c.TimeoutUDP
	if protocol == "tcp" {
		timeout = c.TimeoutTCP
	}
	return &dns.Client{Net: protocol, Timeout: timeout}
}

// lookup queries for one name/type, retrying transient failures and falling
// back from udp to tcp when the response is truncated.
func (c *Client) lookup(ctx context.Context, trace *Trace, name string, qtype uint16) (*dns.Msg, error) {
	factory := c.defaultDnsClientFactory
	if c.dnsClientFactory != nil {
		factory = c.dnsClientFactory
	}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), qtype)
	m.RecursionDesired = true
	m.SetEdns0(DefaultUDPSize, true)

	var response *dns.Msg
	err := retry.Do(
		func() error {
			for _, protocol := range []string{"udp", "tcp"} {
				client := factory(protocol)
				in, duration, err := client.ExchangeContext(ctx, m, c.ResolverAddr)

				Query(fmt.Sprintf(
					"%s: queried %s for %s/%s over %s in %s",
					trace.ShortID(), c.ResolverAddr, name, dns.TypeToString[qtype], protocol, duration,
				))

				if err != nil {
					Warn(fmt.Sprintf("%s: %s exchange error: %s", trace.ShortID(), protocol, err))
					continue
				}
				if in.Truncated && protocol == "udp" {
					Debug(fmt.Sprintf("%s: response truncated, retrying over tcp", trace.ShortID()))
					continue
				}
				response = in
				return nil
			}
			return fmt.Errorf("%w: %s/%s via %s", ErrExchangeFailed, name, dns.TypeToString[qtype], c.ResolverAddr)
		},
		retry.Attempts(uint(c.Attempts)),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	if response == nil || len(response.Answer) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrEmptyResponse, name, dns.TypeToString[qtype])
	}
	return response, nil
}
