// Package resolver performs best-effort reverse name resolution for scanned
// addresses. Failures never surface as errors: an address without a PTR
// record simply has no hostname.
package resolver

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/projectdiscovery/gcache"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lanscan/pkg/types"
)

const (
	// DefaultTimeout bounds one reverse lookup
	DefaultTimeout = 2 * time.Second
	// DefaultCacheSize is the number of addresses kept in the LRU
	DefaultCacheSize = 1024
)

// Options configures a Resolver
type Options struct {
	// Servers are DNS servers queried in order ("host" or "host:port").
	// The system resolver is used when empty.
	Servers   []string
	Timeout   time.Duration
	CacheSize int
}

// Resolver reverse-resolves addresses and caches positive and negative answers
type Resolver struct {
	timeout time.Duration
	cache   gcache.Cache[string, string]
	lookup  func(ctx context.Context, ip string) ([]string, error)
}

// New creates a resolver from options
func New(options Options) *Resolver {
	if options.Timeout <= 0 {
		options.Timeout = DefaultTimeout
	}
	if options.CacheSize <= 0 {
		options.CacheSize = DefaultCacheSize
	}

	r := &Resolver{
		timeout: options.Timeout,
		cache: gcache.New[string, string](options.CacheSize).
			LRU().
			Expiration(time.Hour).
			Build(),
		lookup: net.DefaultResolver.LookupAddr,
	}
	if len(options.Servers) > 0 {
		r.lookup = newDNSLookup(options.Servers, options.Timeout)
	}
	return r
}

// Resolve returns the first name for addr, or false when none is known
func (r *Resolver) Resolve(ctx context.Context, addr types.Address) (string, bool) {
	key := addr.String()
	if name, err := r.cache.Get(key); err == nil {
		return name, name != ""
	}

	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var name string
	names, err := r.lookup(lookupCtx, key)
	if err != nil {
		gologger.Debug().Msgf("reverse lookup for %s failed: %v", key, err)
	} else if len(names) > 0 {
		name = strings.TrimSuffix(names[0], ".")
	}

	// a canceled caller says nothing about the address, so don't remember it
	if ctx.Err() == nil {
		_ = r.cache.Set(key, name)
	}
	return name, name != ""
}

// newDNSLookup queries PTR records from servers in order until one answers
func newDNSLookup(servers []string, timeout time.Duration) func(ctx context.Context, ip string) ([]string, error) {
	normalized := make([]string, 0, len(servers))
	for _, server := range servers {
		if _, _, err := net.SplitHostPort(server); err != nil {
			server = net.JoinHostPort(server, "53")
		}
		normalized = append(normalized, server)
	}
	client := &dns.Client{Timeout: timeout}

	return func(ctx context.Context, ip string) ([]string, error) {
		arpa, err := dns.ReverseAddr(ip)
		if err != nil {
			return nil, err
		}
		msg := new(dns.Msg)
		msg.SetQuestion(arpa, dns.TypePTR)

		var lastErr error
		for _, server := range normalized {
			in, _, err := client.ExchangeContext(ctx, msg, server)
			if err != nil {
				lastErr = err
				continue
			}
			var names []string
			for _, rr := range in.Answer {
				if ptr, ok := rr.(*dns.PTR); ok {
					names = append(names, ptr.Ptr)
				}
			}
			if len(names) > 0 || in.Rcode == dns.RcodeNameError {
				return names, nil
			}
		}
		return nil, lastErr
	}
}
