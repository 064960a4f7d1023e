package prescan

import (
	"github.com/projectdiscovery/lanscan/pkg/peerdiscovery/common"
	"github.com/projectdiscovery/lanscan/pkg/types"
)

const (
	PriorityGateway   = 100
	PriorityReserved  = 90
	PriorityEarlyDHCP = 80
	PriorityDHCPPeak  = 70
	PriorityDHCPPool  = 50
	PriorityLongTail  = 20
	PriorityExcluded  = 0
)

type octetRange struct {
	low, high byte
	priority  int
}

// tiers is matched in order; the first range containing the octet wins
var tiers = []octetRange{
	{1, 1, PriorityGateway},
	{254, 254, PriorityGateway},
	{2, 5, PriorityReserved},
	{250, 253, PriorityReserved},
	{6, 10, PriorityEarlyDHCP},
	{50, 50, PriorityDHCPPeak},
	{100, 100, PriorityDHCPPeak},
	{150, 150, PriorityDHCPPeak},
	{51, 99, PriorityDHCPPool},
	{101, 149, PriorityDHCPPool},
	{151, 200, PriorityDHCPPool},
}

// Priority scores addr by its host octet
func Priority(addr types.Address) int {
	if common.IsNetworkOrBroadcast(addr) {
		return PriorityExcluded
	}
	last := addr.Last()
	for _, tier := range tiers {
		if last >= tier.low && last <= tier.high {
			return tier.priority
		}
	}
	return PriorityLongTail
}
