package types

import "encoding/json"

// OutcomeStatus tags the result of a single reachability probe
type OutcomeStatus int

const (
	Reachable OutcomeStatus = iota
	Unreachable
	TimedOut
	ProbeError
)

func (s OutcomeStatus) String() string {
	switch s {
	case Reachable:
		return "reachable"
	case Unreachable:
		return "unreachable"
	case TimedOut:
		return "timed-out"
	case ProbeError:
		return "error"
	default:
		return "unknown"
	}
}

func (s OutcomeStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ProbeOutcome is the tagged result of one probe. Detail is only set for
// ProbeError outcomes.
type ProbeOutcome struct {
	Status OutcomeStatus `json:"status"`
	Detail string        `json:"detail,omitempty"`
}

// OutcomeReachable reports a positive answer
func OutcomeReachable() ProbeOutcome {
	return ProbeOutcome{Status: Reachable}
}

// OutcomeUnreachable reports a completed probe with a negative answer
func OutcomeUnreachable() ProbeOutcome {
	return ProbeOutcome{Status: Unreachable}
}

// OutcomeTimedOut reports a probe that exceeded its deadline
func OutcomeTimedOut() ProbeOutcome {
	return ProbeOutcome{Status: TimedOut}
}

// OutcomeError reports a probe that could not be carried out
func OutcomeError(detail string) ProbeOutcome {
	return ProbeOutcome{Status: ProbeError, Detail: detail}
}

// IsReachable is true only for Reachable. TimedOut, Unreachable and
// ProbeError all count as not reachable in reports.
func (o ProbeOutcome) IsReachable() bool {
	return o.Status == Reachable
}

func (o ProbeOutcome) String() string {
	if o.Detail != "" {
		return o.Status.String() + ": " + o.Detail
	}
	return o.Status.String()
}
