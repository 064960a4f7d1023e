// Package portscan enumerates open TCP ports on a single host by fanning
// connect probes out across a bounded pool.
package portscan

import (
	"context"
	"fmt"
	"sort"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lanscan/pkg/types"
	syncutil "github.com/projectdiscovery/utils/sync"
)

// DefaultConcurrency caps in-flight probes per host
const DefaultConcurrency = 100

// Scanner runs port probes for one address at a time
type Scanner struct {
	prober      Prober
	concurrency int
}

// New creates a scanner; concurrency <= 0 selects DefaultConcurrency
func New(prober Prober, concurrency int) *Scanner {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Scanner{prober: prober, concurrency: concurrency}
}

// Scan probes every port of ports on addr and returns the open ones in
// ascending order. The result is never nil. A panicking probe counts as
// closed and does not abort the scan.
func (s *Scanner) Scan(ctx context.Context, addr types.Address, ports types.PortSet) ([]int, error) {
	candidates := ports.Ports()
	if len(candidates) == 0 {
		return []int{}, nil
	}

	awg, err := syncutil.New(syncutil.WithSize(s.concurrency))
	if err != nil {
		return nil, fmt.Errorf("failed to create adaptive waitgroup: %w", err)
	}

	// one slot per port, each written by exactly one goroutine
	open := make([]bool, len(candidates))
	for i, port := range candidates {
		awg.Add()
		go func(slot, port int) {
			defer awg.Done()
			open[slot] = s.probe(ctx, addr, port)
		}(i, port)
	}
	awg.Wait()

	result := make([]int, 0)
	for i, isOpen := range open {
		if isOpen {
			result = append(result, candidates[i])
		}
	}
	sort.Ints(result)
	return result, nil
}

func (s *Scanner) probe(ctx context.Context, addr types.Address, port int) (isOpen bool) {
	defer func() {
		if r := recover(); r != nil {
			gologger.Verbose().Msgf("port probe %s:%d failed: %v", addr, port, r)
			isOpen = false
		}
	}()
	return s.prober.Probe(ctx, addr, port)
}
