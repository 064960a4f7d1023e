package common

import (
	"net"
	"slices"
	"strings"

	"github.com/projectdiscovery/lanscan/pkg/types"
	psnet "github.com/shirou/gopsutil/v3/net"
)

// LocalPrefixes returns the 3-octet prefixes of every private IPv4 /24 bound
// to an up, non-loopback interface, in interface order without duplicates.
func LocalPrefixes() ([]string, error) {
	interfaces, err := psnet.Interfaces()
	if err != nil {
		return nil, err
	}

	var prefixes []string
	seen := make(map[string]struct{})

	for _, iface := range interfaces {
		if slices.Contains(iface.Flags, "loopback") || !slices.Contains(iface.Flags, "up") {
			continue
		}

		for _, addr := range iface.Addrs {
			prefix, ok := privatePrefix(addr.Addr)
			if !ok {
				continue
			}
			if _, exists := seen[prefix]; exists {
				continue
			}
			seen[prefix] = struct{}{}
			prefixes = append(prefixes, prefix)
		}
	}

	return prefixes, nil
}

// DetectPrefix returns the first local prefix, or DefaultNetworkPrefix when
// none can be found
func DetectPrefix() string {
	prefixes, err := LocalPrefixes()
	if err != nil || len(prefixes) == 0 {
		return types.DefaultNetworkPrefix
	}
	return prefixes[0]
}

// privatePrefix accepts "a.b.c.d/nn" or a bare address
func privatePrefix(value string) (string, bool) {
	var ip net.IP
	if strings.Contains(value, "/") {
		parsed, _, err := net.ParseCIDR(value)
		if err != nil {
			return "", false
		}
		ip = parsed
	} else {
		ip = net.ParseIP(value)
	}

	ip4 := ip.To4()
	if ip4 == nil || !ip4.IsPrivate() {
		return "", false
	}
	addr, _ := types.AddressFromIP(ip4)
	return prefixOf(addr), true
}

func prefixOf(addr types.Address) string {
	s := addr.String()
	return s[:strings.LastIndex(s, ".")]
}
