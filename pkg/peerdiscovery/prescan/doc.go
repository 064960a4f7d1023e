// Package prescan orders the addresses of a /24 by how likely they are to be
// online, so the host pool probes gateways and early DHCP leases first.
//
// Priority tiers (0-100), by host octet:
//   - 100: .1, .254 (routers/gateways)
//   - 90:  .2-.5, .250-.253 (reserved infrastructure)
//   - 80:  .6-.10 (early DHCP)
//   - 70:  .50, .100, .150 (DHCP peaks)
//   - 50:  .51-.99, .101-.149, .151-.200 (main DHCP pool)
//   - 20:  everything else (long tail)
//   - 0:   .0, .255 (network/broadcast)
//
// Ordering only changes when probes are submitted; it never drops addresses.
package prescan
