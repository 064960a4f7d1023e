package types

import (
	"fmt"
	"strings"
)

// DefaultNetworkPrefix is used when no base prefix is supplied
const DefaultNetworkPrefix = "172.16.172"

// ScanConfig describes one scan. It is treated as immutable once a scan starts.
type ScanConfig struct {
	BaseNetworkPrefix string `json:"base_network_prefix" yaml:"prefix"`
	StartOctet        int    `json:"start_octet" yaml:"start"`
	EndOctet          int    `json:"end_octet" yaml:"end"`
	DoPortScan        bool   `json:"do_port_scan" yaml:"port_scan"`
	ScanAllPorts      bool   `json:"scan_all_ports" yaml:"all_ports"`
	// Ports replaces the well-known list when not empty. ScanAllPorts wins over it.
	Ports PortSet `json:"ports,omitempty" yaml:"-"`
}

// ConfigError is returned for invalid scan configuration. It is the only
// error that aborts a scan, and it always does so before any probing.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "invalid scan config: " + e.Message
	}
	return fmt.Sprintf("invalid scan config: %s: %s", e.Field, e.Message)
}

// Validate checks the prefix format and the octet range
func (c ScanConfig) Validate() error {
	parts := strings.Split(c.BaseNetworkPrefix, ".")
	if len(parts) != 3 {
		return &ConfigError{Field: "prefix", Message: fmt.Sprintf("%q must have exactly 3 octets", c.BaseNetworkPrefix)}
	}
	for _, part := range parts {
		if _, err := parseOctet(part); err != nil {
			return &ConfigError{Field: "prefix", Message: err.Error()}
		}
	}
	if c.StartOctet < 0 || c.StartOctet > 255 {
		return &ConfigError{Field: "start", Message: fmt.Sprintf("%d out of range [0,255]", c.StartOctet)}
	}
	if c.EndOctet < 0 || c.EndOctet > 255 {
		return &ConfigError{Field: "end", Message: fmt.Sprintf("%d out of range [0,255]", c.EndOctet)}
	}
	if c.StartOctet > c.EndOctet {
		return &ConfigError{Field: "range", Message: fmt.Sprintf("start %d is greater than end %d", c.StartOctet, c.EndOctet)}
	}
	return nil
}

// Size is the number of addresses covered by the range
func (c ScanConfig) Size() int {
	return c.EndOctet - c.StartOctet + 1
}

// Address returns the address for host octet n
func (c ScanConfig) Address(n int) (Address, error) {
	return ParseAddress(fmt.Sprintf("%s.%d", c.BaseNetworkPrefix, n))
}

// PortSet returns the ports probed on live hosts for this config
func (c ScanConfig) PortSet() PortSet {
	switch {
	case c.ScanAllPorts:
		return AllPorts()
	case !c.Ports.IsEmpty():
		return c.Ports
	default:
		return WellKnownPorts()
	}
}
