// Package scanner discovers live hosts over an address range and, for each
// live host, resolves its name and enumerates open TCP ports.
//
// Every address of the requested range appears exactly once in the returned
// report, in ascending order, whatever order the probes complete in. Probe
// failures are recorded per address and never abort the scan; only an
// invalid ScanConfig does, before any probing starts.
package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lanscan/pkg/peerdiscovery/common"
	"github.com/projectdiscovery/lanscan/pkg/peerdiscovery/pingsweep"
	"github.com/projectdiscovery/lanscan/pkg/peerdiscovery/portscan"
	"github.com/projectdiscovery/lanscan/pkg/peerdiscovery/prescan"
	"github.com/projectdiscovery/lanscan/pkg/peerdiscovery/resolver"
	"github.com/projectdiscovery/lanscan/pkg/types"
	syncutil "github.com/projectdiscovery/utils/sync"
	"github.com/rs/xid"
)

// DefaultHostConcurrency caps in-flight reachability probes per scan
const DefaultHostConcurrency = 50

// Pinger is the reachability prober used by the scanner
type Pinger interface {
	Probe(ctx context.Context, addr types.Address) types.ProbeOutcome
}

// Resolver is the hostname resolver used by the scanner
type Resolver interface {
	Resolve(ctx context.Context, addr types.Address) (string, bool)
}

// Options tunes the engine. The zero value of any field selects its default.
type Options struct {
	HostConcurrency int
	PortConcurrency int
	PingMethod      pingsweep.Method
	PingTimeout     time.Duration
	PortTimeout     time.Duration
	Resolver        resolver.Options
	// DisableResolve leaves every hostname absent
	DisableResolve bool
	// DisablePrescan submits addresses in ascending order instead of by
	// likelihood of being online
	DisablePrescan bool
	// OnHost is called from worker goroutines once per address when its
	// record is finalized. It must be safe for concurrent use.
	OnHost func(types.HostRecord)

	// Optional collaborators, mainly for tests
	Pinger     Pinger
	HostLookup Resolver
	PortProber portscan.Prober
}

// Scanner is the host scan orchestrator
type Scanner struct {
	options  *Options
	pinger   Pinger
	resolver Resolver
	ports    *portscan.Scanner
}

// New builds a scanner, creating default collaborators where none are given.
// options is copied and never modified.
func New(opts *Options) (*Scanner, error) {
	options := &Options{}
	if opts != nil {
		*options = *opts
	}
	if options.HostConcurrency <= 0 {
		options.HostConcurrency = DefaultHostConcurrency
	}

	s := &Scanner{options: options}

	s.pinger = options.Pinger
	if s.pinger == nil {
		pinger, err := pingsweep.New(options.PingMethod, options.PingTimeout)
		if err != nil {
			return nil, fmt.Errorf("could not create reachability prober: %w", err)
		}
		s.pinger = pinger
	}

	switch {
	case options.DisableResolve:
		s.resolver = nil
	case options.HostLookup != nil:
		s.resolver = options.HostLookup
	default:
		s.resolver = resolver.New(options.Resolver)
	}

	prober := options.PortProber
	if prober == nil {
		prober = portscan.NewConnectProber(options.PortTimeout)
	}
	s.ports = portscan.New(prober, options.PortConcurrency)

	return s, nil
}

// Scan probes every address of cfg and returns the complete report. The only
// error is a *types.ConfigError (or a failure to set up the pool), returned
// before any probe is sent.
func (s *Scanner) Scan(ctx context.Context, cfg types.ScanConfig) (*types.ScanReport, error) {
	addrs, err := common.ExpandRange(cfg)
	if err != nil {
		return nil, err
	}

	awg, err := syncutil.New(syncutil.WithSize(s.options.HostConcurrency))
	if err != nil {
		return nil, fmt.Errorf("failed to create adaptive waitgroup: %w", err)
	}

	report := &types.ScanReport{
		ID:        xid.New().String(),
		Config:    cfg,
		StartedAt: time.Now(),
	}
	ports := cfg.PortSet()

	order := prescan.Sequential(len(addrs))
	if !s.options.DisablePrescan {
		order = prescan.Order(addrs)
	}

	gologger.Verbose().Msgf("scan %s: %d addresses, port scan=%v (%d ports)", report.ID, len(addrs), cfg.DoPortScan, ports.Len())

	// slot i belongs to addrs[i]; each is written by exactly one task
	slots := make([]hostTask, len(addrs))
	for _, idx := range order {
		slots[idx].addr = addrs[idx]
		awg.Add()
		go func(task *hostTask) {
			defer awg.Done()
			s.run(ctx, task, cfg.DoPortScan, ports)
		}(&slots[idx])
	}
	awg.Wait()

	report.Hosts = make([]types.HostRecord, len(slots))
	for i := range slots {
		report.Hosts[i] = slots[i].record
	}
	report.FinishedAt = time.Now()
	return report, nil
}

// run drives one address from Pending to Finalized
func (s *Scanner) run(ctx context.Context, task *hostTask, portScan bool, ports types.PortSet) {
	defer func() {
		if r := recover(); r != nil {
			// keep whatever the task learned, but never leave the slot unfinished
			task.record.Outcome = types.OutcomeError(fmt.Sprintf("panic: %v", r))
			task.record.Reachable = false
			task.record.Hostname = ""
			task.record.OpenPorts = []int{}
			task.state = types.StateFinalized
		}
		s.notify(task.record)
	}()

	task.record = types.HostRecord{Address: task.addr, OpenPorts: []int{}}

	task.advance(types.StateProbing)
	outcome := s.pinger.Probe(ctx, task.addr)
	task.record.Outcome = outcome

	if !outcome.IsReachable() {
		task.advance(types.StateUnreachable)
		if outcome.Status == types.ProbeError {
			gologger.Verbose().Msgf("%s: probe error: %s", task.addr, outcome.Detail)
		}
		task.advance(types.StateFinalized)
		return
	}

	task.advance(types.StateReachable)
	task.record.Reachable = true

	if s.resolver != nil {
		task.advance(types.StateResolving)
		if name, ok := s.resolver.Resolve(ctx, task.addr); ok {
			task.record.Hostname = name
		}
	}

	if portScan {
		task.advance(types.StatePortScanning)
		open, err := s.ports.Scan(ctx, task.addr, ports)
		if err != nil {
			gologger.Verbose().Msgf("%s: port scan failed: %v", task.addr, err)
		} else {
			task.record.OpenPorts = open
		}
	}

	task.advance(types.StateFinalized)
}

// notify hands a finalized record to OnHost. A panicking callback is logged
// and does not affect the scan.
func (s *Scanner) notify(record types.HostRecord) {
	if s.options.OnHost == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			gologger.Verbose().Msgf("%s: host callback failed: %v", record.Address, r)
		}
	}()
	s.options.OnHost(record)
}
