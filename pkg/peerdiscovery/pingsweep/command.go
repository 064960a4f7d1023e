package pingsweep

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/projectdiscovery/lanscan/pkg/types"
	osutils "github.com/projectdiscovery/utils/os"
)

// CommandProber runs the system ping command once per probe
type CommandProber struct {
	timeout time.Duration
	// argv builds the command line for an address
	argv func(ip string) []string
}

// NewCommandProber creates a prober bounded by timeout
func NewCommandProber(timeout time.Duration) *CommandProber {
	return &CommandProber{
		timeout: timeout,
		argv:    pingArgs,
	}
}

func pingArgs(ip string) []string {
	count := "-c"
	if osutils.IsWindows() {
		count = "-n"
	}
	return []string{"ping", count, "1", ip}
}

// Probe runs the command and maps exit status 0 to Reachable. The process is
// killed once the timeout elapses.
func (p *CommandProber) Probe(ctx context.Context, addr types.Address) types.ProbeOutcome {
	if err := ctx.Err(); err != nil {
		return types.OutcomeError(err.Error())
	}

	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	args := p.argv(addr.String())
	cmd := exec.CommandContext(probeCtx, args[0], args[1:]...)
	cmd.WaitDelay = 100 * time.Millisecond

	err := cmd.Run()
	switch {
	case err == nil:
		return types.OutcomeReachable()
	case errors.Is(probeCtx.Err(), context.DeadlineExceeded):
		return types.OutcomeTimedOut()
	case ctx.Err() != nil:
		return types.OutcomeError(ctx.Err().Error())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return types.OutcomeUnreachable()
	}
	return types.OutcomeError(err.Error())
}
