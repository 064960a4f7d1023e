package portscan

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/projectdiscovery/lanscan/pkg/types"
)

// DefaultTimeout bounds a single TCP connect attempt
const DefaultTimeout = 300 * time.Millisecond

// Prober checks whether one TCP port accepts connections
type Prober interface {
	Probe(ctx context.Context, addr types.Address, port int) bool
}

// ConnectProber performs a full TCP connect. Refused, filtered, timed out and
// failed attempts are all reported as closed.
type ConnectProber struct {
	dialer net.Dialer
}

// NewConnectProber creates a prober with the given dial timeout
func NewConnectProber(timeout time.Duration) *ConnectProber {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ConnectProber{dialer: net.Dialer{Timeout: timeout}}
}

// Probe reports whether addr:port accepted a connection. The connection is
// closed before returning.
func (p *ConnectProber) Probe(ctx context.Context, addr types.Address, port int) bool {
	conn, err := p.dialer.DialContext(ctx, "tcp4", net.JoinHostPort(addr.String(), strconv.Itoa(port)))
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// ProbeTCP is a one-shot connect probe with its own timeout
func ProbeTCP(ctx context.Context, addr types.Address, port int, timeout time.Duration) bool {
	return NewConnectProber(timeout).Probe(ctx, addr, port)
}
