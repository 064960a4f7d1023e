package scanner

import (
	"fmt"

	"github.com/projectdiscovery/lanscan/pkg/types"
)

// transitions lists the legal successors of each state
var transitions = map[types.HostState][]types.HostState{
	types.StatePending:      {types.StateProbing},
	types.StateProbing:      {types.StateUnreachable, types.StateReachable},
	types.StateUnreachable:  {types.StateFinalized},
	types.StateReachable:    {types.StateResolving, types.StatePortScanning, types.StateFinalized},
	types.StateResolving:    {types.StatePortScanning, types.StateFinalized},
	types.StatePortScanning: {types.StateFinalized},
}

// hostTask is the isolated result slot of one address
type hostTask struct {
	addr   types.Address
	state  types.HostState
	record types.HostRecord
}

// advance moves the task to next. An illegal move is a programming error.
func (t *hostTask) advance(next types.HostState) {
	if !canTransition(t.state, next) {
		panic(fmt.Sprintf("%s: illegal state transition %s -> %s", t.addr, t.state, next))
	}
	t.state = next
}

func canTransition(from, to types.HostState) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
