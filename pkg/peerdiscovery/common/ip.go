package common

import "github.com/projectdiscovery/lanscan/pkg/types"

// IsNetworkOrBroadcast reports whether addr is the network (.0) or broadcast
// (.255) address of its /24. Such addresses are still probed when requested.
func IsNetworkOrBroadcast(addr types.Address) bool {
	last := addr.Last()
	return last == 0 || last == 255
}
