package types

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// An Endpoint is the network address of a monitored game server.
type Endpoint struct {
	Host string `json:"host" bson:"host"`
	Port int    `json:"port" bson:"port"`
}

// ParseEndpoint parses "host" or "host:port". A missing port falls back to
// defaultPort.
func ParseEndpoint(address string, defaultPort int) (Endpoint, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Endpoint{}, fmt.Errorf("empty address: %w", ErrConfiguration)
	}

	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		// No port, or a bare IPv6 address.
		host = strings.Trim(address, "[]")
		portStr = strconv.Itoa(defaultPort)
	}

	if host == "" || strings.ContainsAny(host, " /") {
		return Endpoint{}, fmt.Errorf("invalid host in %q: %w", address, ErrConfiguration)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return Endpoint{}, fmt.Errorf("invalid port in %q: %w", address, ErrConfiguration)
	}

	return Endpoint{Host: strings.ToLower(host), Port: port}, nil
}

func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// SampleID is the key historic samples for this endpoint are stored under.
func (e Endpoint) SampleID(kind ProtocolKind) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(kind.String()+"/"+e.String()))
}
