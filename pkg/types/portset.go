package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	MinPort = 1
	MaxPort = 65535
)

// DefaultPorts is the well-known list probed unless a full scan is requested
var DefaultPorts = []int{
	21, 22, 23, 25, 53, 80, 110, 135, 139, 143,
	443, 445, 993, 995, 1723, 3306, 3389, 5900, 8080,
}

// PortSet is an ascending, deduplicated sequence of TCP ports
type PortSet struct {
	ports []int
}

// NewPortSet sorts and deduplicates ports. Any value outside [1,65535]
// yields a ConfigError.
func NewPortSet(ports ...int) (PortSet, error) {
	seen := make(map[int]struct{}, len(ports))
	out := make([]int, 0, len(ports))
	for _, port := range ports {
		if port < MinPort || port > MaxPort {
			return PortSet{}, &ConfigError{Field: "ports", Message: fmt.Sprintf("port %d out of range [%d,%d]", port, MinPort, MaxPort)}
		}
		if _, ok := seen[port]; ok {
			continue
		}
		seen[port] = struct{}{}
		out = append(out, port)
	}
	sort.Ints(out)
	return PortSet{ports: out}, nil
}

// WellKnownPorts returns the default port set
func WellKnownPorts() PortSet {
	ports := make([]int, len(DefaultPorts))
	copy(ports, DefaultPorts)
	sort.Ints(ports)
	return PortSet{ports: ports}
}

// AllPorts returns every port from 1 to 65535
func AllPorts() PortSet {
	ports := make([]int, 0, MaxPort)
	for port := MinPort; port <= MaxPort; port++ {
		ports = append(ports, port)
	}
	return PortSet{ports: ports}
}

// ParsePortSet reads a comma separated list of ports and inclusive ranges,
// for example "22,80,8000-8100".
func ParsePortSet(expr string) (PortSet, error) {
	var ports []int
	for _, item := range strings.Split(expr, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		low, high, isRange := strings.Cut(item, "-")
		start, err := parsePort(low)
		if err != nil {
			return PortSet{}, err
		}
		end := start
		if isRange {
			if end, err = parsePort(high); err != nil {
				return PortSet{}, err
			}
			if start > end {
				return PortSet{}, &ConfigError{Field: "ports", Message: fmt.Sprintf("invalid port range %q", item)}
			}
		}
		for port := start; port <= end; port++ {
			ports = append(ports, port)
		}
	}
	if len(ports) == 0 {
		return PortSet{}, &ConfigError{Field: "ports", Message: "empty port list"}
	}
	return NewPortSet(ports...)
}

func parsePort(value string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || port < MinPort || port > MaxPort {
		return 0, &ConfigError{Field: "ports", Message: fmt.Sprintf("invalid port %q", value)}
	}
	return port, nil
}

// Ports returns a copy of the ports in ascending order
func (p PortSet) Ports() []int {
	out := make([]int, len(p.ports))
	copy(out, p.ports)
	return out
}

func (p PortSet) Len() int {
	return len(p.ports)
}

func (p PortSet) IsEmpty() bool {
	return len(p.ports) == 0
}

func (p PortSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Ports())
}

func (p *PortSet) UnmarshalJSON(data []byte) error {
	var ports []int
	if err := json.Unmarshal(data, &ports); err != nil {
		return err
	}
	set, err := NewPortSet(ports...)
	if err != nil {
		return err
	}
	*p = set
	return nil
}
