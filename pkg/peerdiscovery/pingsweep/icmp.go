package pingsweep

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/projectdiscovery/lanscan/pkg/types"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

var echoPayload = []byte("HELLO-R-U-THERE")

// ICMPProber sends one ICMP echo request per probe on its own socket, so
// concurrent probes never compete for replies.
type ICMPProber struct {
	timeout    time.Duration
	privileged bool
	id         int
	seq        atomic.Uint32
}

// NewICMPProber creates a prober using a raw socket when running privileged
func NewICMPProber(timeout time.Duration) *ICMPProber {
	return &ICMPProber{
		timeout:    timeout,
		privileged: isPrivileged(),
		id:         os.Getpid() & 0xffff,
	}
}

// Check opens and closes a socket to verify ICMP is usable
func (p *ICMPProber) Check() error {
	conn, err := p.listen()
	if err != nil {
		return err
	}
	return conn.Close()
}

func (p *ICMPProber) listen() (*icmp.PacketConn, error) {
	if p.privileged {
		return icmp.ListenPacket("ip4:icmp", "0.0.0.0")
	}
	return icmp.ListenPacket("udp4", "0.0.0.0")
}

// Probe sends one echo request to addr and waits for the matching reply
func (p *ICMPProber) Probe(ctx context.Context, addr types.Address) types.ProbeOutcome {
	if err := ctx.Err(); err != nil {
		return types.OutcomeError(err.Error())
	}

	conn, err := p.listen()
	if err != nil {
		return types.OutcomeError(fmt.Sprintf("could not open icmp socket: %v", err))
	}
	defer func() {
		_ = conn.Close()
	}()

	deadline := time.Now().Add(p.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return types.OutcomeError(err.Error())
	}
	// unblock the read as soon as the caller gives up
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	seq := int(p.seq.Add(1) & 0xffff)
	msg := &icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{
			ID:   p.id,
			Seq:  seq,
			Data: echoPayload,
		},
	}
	msgBytes, err := msg.Marshal(nil)
	if err != nil {
		return types.OutcomeError(fmt.Sprintf("failed to marshal ICMP message: %v", err))
	}

	target := addr.IP()
	var dst net.Addr = &net.IPAddr{IP: target}
	if !p.privileged {
		dst = &net.UDPAddr{IP: target}
	}
	if _, err := conn.WriteTo(msgBytes, dst); err != nil {
		return classify(ctx, err)
	}

	reply := make([]byte, 1500)
	for {
		n, peer, err := conn.ReadFrom(reply)
		if err != nil {
			return classify(ctx, err)
		}
		if outcome, done := p.match(reply[:n], peer, target, seq); done {
			return outcome
		}
	}
}

// match inspects one received packet. done is false for packets that belong
// to somebody else.
func (p *ICMPProber) match(packet []byte, peer net.Addr, target net.IP, seq int) (types.ProbeOutcome, bool) {
	rm, err := icmp.ParseMessage(ipv4.ICMPTypeEchoReply.Protocol(), packet)
	if err != nil {
		return types.ProbeOutcome{}, false
	}

	switch rm.Type {
	case ipv4.ICMPTypeEchoReply:
		echo, ok := rm.Body.(*icmp.Echo)
		if !ok || echo.Seq != seq || !peerIP(peer).Equal(target) {
			return types.ProbeOutcome{}, false
		}
		// the kernel rewrites the identifier of unprivileged sockets
		if p.privileged && echo.ID != p.id {
			return types.ProbeOutcome{}, false
		}
		return types.OutcomeReachable(), true
	case ipv4.ICMPTypeDestinationUnreachable:
		body, ok := rm.Body.(*icmp.DstUnreach)
		if !ok {
			return types.ProbeOutcome{}, false
		}
		header, err := ipv4.ParseHeader(body.Data)
		if err != nil || !header.Dst.Equal(target) {
			return types.ProbeOutcome{}, false
		}
		return types.OutcomeUnreachable(), true
	default:
		return types.ProbeOutcome{}, false
	}
}

func peerIP(addr net.Addr) net.IP {
	switch v := addr.(type) {
	case *net.IPAddr:
		return v.IP
	case *net.UDPAddr:
		return v.IP
	default:
		return nil
	}
}
