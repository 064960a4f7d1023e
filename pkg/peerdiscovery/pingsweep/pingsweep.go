package pingsweep

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lanscan/pkg/types"
)

// DefaultTimeout bounds a single reachability probe
const DefaultTimeout = time.Second

// Method selects the reachability prober implementation
type Method string

const (
	MethodAuto    Method = "auto"
	MethodICMP    Method = "icmp"
	MethodCommand Method = "command"
)

// Prober performs a single reachability check. Implementations must return
// within the configured timeout (plus scheduling slack) and never panic on
// network failures; failures become ProbeError outcomes.
type Prober interface {
	Probe(ctx context.Context, addr types.Address) types.ProbeOutcome
}

// New returns the prober for method
func New(method Method, timeout time.Duration) (Prober, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	switch method {
	case MethodICMP:
		prober := NewICMPProber(timeout)
		if err := prober.Check(); err != nil {
			return nil, fmt.Errorf("icmp prober unavailable: %w", err)
		}
		return prober, nil
	case MethodCommand:
		return NewCommandProber(timeout), nil
	case MethodAuto, "":
		prober := NewICMPProber(timeout)
		if err := prober.Check(); err != nil {
			gologger.Verbose().Msgf("icmp socket unavailable (%v), falling back to ping command", err)
			return NewCommandProber(timeout), nil
		}
		gologger.Verbose().Msgf("using icmp prober (privileged=%v)", prober.privileged)
		return prober, nil
	default:
		return nil, fmt.Errorf("unknown ping method %q", method)
	}
}

// classify maps a socket error to an outcome
func classify(ctx context.Context, err error) types.ProbeOutcome {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(ctxErr, context.DeadlineExceeded) {
		return types.OutcomeError(ctxErr.Error())
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return types.OutcomeTimedOut()
	}
	if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return types.OutcomeTimedOut()
	}
	if errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return types.OutcomeUnreachable()
	}
	return types.OutcomeError(err.Error())
}
