package prescan

import (
	"sort"

	"github.com/projectdiscovery/lanscan/pkg/types"
)

// Order returns the indexes of addrs sorted by priority (high to low), then
// by address for a stable result. Every index appears exactly once.
func Order(addrs []types.Address) []int {
	order := make([]int, len(addrs))
	priorities := make([]int, len(addrs))
	for i, addr := range addrs {
		order[i] = i
		priorities[i] = Priority(addr)
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if priorities[a] != priorities[b] {
			return priorities[a] > priorities[b]
		}
		return addrs[a].Compare(addrs[b]) < 0
	})
	return order
}

// Sequential returns the identity order 0..n-1
func Sequential(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
