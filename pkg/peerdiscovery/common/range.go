package common

import (
	"fmt"
	"net"

	"github.com/projectdiscovery/lanscan/pkg/types"
	"github.com/projectdiscovery/mapcidr"
)

// ExpandRange returns every address of cfg in ascending order. The config is
// validated first so the result always has cfg.Size() entries. Every failure
// is a *types.ConfigError.
func ExpandRange(cfg types.ScanConfig) ([]types.Address, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := cfg.Address(0)
	if err != nil {
		return nil, &types.ConfigError{Field: "prefix", Message: err.Error()}
	}
	cidr := base.String() + "/24"
	ips, err := mapcidr.IPAddresses(cidr)
	if err != nil {
		return nil, &types.ConfigError{Field: "prefix", Message: fmt.Sprintf("failed to expand %s: %v", cidr, err)}
	}

	// index the /24 by host octet so the selection does not depend on the
	// order mapcidr returns
	var network [256]*types.Address
	for _, ipStr := range ips {
		addr, ok := types.AddressFromIP(net.ParseIP(ipStr))
		if !ok {
			continue
		}
		network[addr.Last()] = &addr
	}

	addrs := make([]types.Address, 0, cfg.Size())
	for octet := cfg.StartOctet; octet <= cfg.EndOctet; octet++ {
		if network[octet] == nil {
			return nil, &types.ConfigError{Field: "range", Message: fmt.Sprintf("%s.%d is missing from %s", cfg.BaseNetworkPrefix, octet, cidr)}
		}
		addrs = append(addrs, *network[octet])
	}
	return addrs, nil
}
