// Package pingsweep answers one question per address: does it respond to a
// reachability check within the timeout?
//
// Two probers are provided:
//   - ICMPProber: sends a single ICMP echo request. A raw socket is used when
//     the process is privileged, otherwise an unprivileged datagram ICMP
//     socket (Linux ping_group_range, macOS).
//   - CommandProber: runs the system ping command once, bounded by the timeout.
//
// New(MethodAuto, timeout) picks ICMP when a socket can be opened and falls
// back to the command otherwise.
//
// Example usage:
//
//	prober, err := pingsweep.New(pingsweep.MethodAuto, time.Second)
//	outcome := prober.Probe(ctx, addr)
//	if outcome.IsReachable() { ... }
//
// Limitations:
//   - Hosts with ICMP disabled or firewalled report TimedOut
//   - Only IPv4 is supported
package pingsweep
