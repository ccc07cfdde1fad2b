// Package dnscanon fetches a TXT RRset, the RRSIG covering it and the
// signer's DNSKEY from a recursive resolver, and feeds them to the dnssec
// package for offline signature verification. This is the only layer that
// performs I/O; the core packages underneath are pure.
package dnscanon

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dnscanon/dnscanon/dnssec"
)

const (
	DefaultResolverAddr = "8.8.8.8:53"

	DefaultTimeoutUDP = 1500 * time.Millisecond
	DefaultTimeoutTCP = 3 * time.Second

	// DefaultLookupAttempts bounds retries per lookup. Lookups are the only
	// transient failure mode in the system; verification itself never
	// retries.
	DefaultLookupAttempts = 3

	// DefaultUDPSize is the EDNS0 advertised payload size. The DO bit is
	// always set, as unsigned responses are useless to us.
	DefaultUDPSize = 4096
)

type Logger func(string)

// Default logging functions just black-hole the input.

var Query Logger = func(s string) {}
var Debug Logger = func(s string) {}
var Info Logger = func(s string) {}
var Warn Logger = func(s string) {}

// Config is the optional TOML file the CLI loads. Zero values fall back to
// the defaults above.
type Config struct {
	Resolver       string `toml:"resolver"`
	TimeoutUDPMs   int    `toml:"timeout_udp_ms"`
	TimeoutTCPMs   int    `toml:"timeout_tcp_ms"`
	LookupAttempts int    `toml:"lookup_attempts"`
}

// LoadConfig reads and decodes the TOML file at path.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config %s: %w", path, err)
	}
	return cfg, nil
}

// NewClientFromConfig applies the config over the defaults.
func NewClientFromConfig(cfg Config) *Client {
	client := NewClient(cfg.Resolver)
	if cfg.TimeoutUDPMs > 0 {
		client.TimeoutUDP = time.Duration(cfg.TimeoutUDPMs) * time.Millisecond
	}
	if cfg.TimeoutTCPMs > 0 {
		client.TimeoutTCP = time.Duration(cfg.TimeoutTCPMs) * time.Millisecond
	}
	if cfg.LookupAttempts > 0 {
		client.Attempts = cfg.LookupAttempts
	}
	return client
}

func init() {
	dnssec.Debug = func(s string) {
		Debug(s)
	}
	dnssec.Warn = func(s string) {
		Warn(s)
	}
}
