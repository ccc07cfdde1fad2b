package dnscanon

import (
	"context"
	"time"

	"github.com/miekg/dns"
)

type mockDnsClient struct {
	mockExchange func(context.Context, *dns.Msg, string) (*dns.Msg, time.Duration, error)
}

func (m *mockDnsClient) ExchangeContext(ctx context.Context, msg *dns.Msg, addr string) (*dns.Msg, time.Duration, error) {
	return m.mockExchange(ctx, msg, addr)
}

// mockClient returns a Client whose exchanges are routed per protocol.
func mockClient(clients map[string]dnsClient) *Client {
	c := NewClient("192.0.2.1:53")
	c.Attempts = 1
	c.dnsClientFactory = func(protocol string) dnsClient {
		return clients[protocol]
	}
	return c
}

func testTXT(name, segment string) *dns.TXT {
	return &dns.TXT{
		Hdr: dns.RR_Header{Name: name, Rrtype: dns.TypeTXT, Class: dns.ClassINET, Ttl: 300},
		Txt: []string{segment},
	}
}

// answeringClient serves canned answers keyed on qtype over udp, the common
// case for the happy-path tests.
func answeringClient(answers map[uint16][]dns.RR) *Client {
	udp := &mockDnsClient{
		mockExchange: func(_ context.Context, q *dns.Msg, _ string) (*dns.Msg, time.Duration, error) {
			r := new(dns.Msg)
			r.SetReply(q)
			r.Answer = answers[q.Question[0].Qtype]
			return r, time.Millisecond, nil
		},
	}
	return mockClient(map[string]dnsClient{"udp": udp})
}
