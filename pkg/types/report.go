package types

import (
	"strconv"
	"strings"
	"time"
)

const (
	// HostnamePlaceholder is exported when a reachable host has no name
	HostnamePlaceholder = "Hostname not found"
	// NoPortsPlaceholder is exported when no port was found open
	NoPortsPlaceholder = "None"
)

// HostState is the lifecycle of one address inside a scan
type HostState int

const (
	StatePending HostState = iota
	StateProbing
	StateUnreachable
	StateReachable
	StateResolving
	StatePortScanning
	StateFinalized
)

func (s HostState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateProbing:
		return "probing"
	case StateUnreachable:
		return "unreachable"
	case StateReachable:
		return "reachable"
	case StateResolving:
		return "resolving"
	case StatePortScanning:
		return "port-scanning"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// HostRecord is the finalized result for one address. Hostname and OpenPorts
// are only populated for reachable hosts; OpenPorts is never nil.
type HostRecord struct {
	Address   Address      `json:"address"`
	Reachable bool         `json:"reachable"`
	Hostname  string       `json:"hostname,omitempty"`
	OpenPorts []int        `json:"open_ports"`
	Outcome   ProbeOutcome `json:"outcome"`
}

// HasHostname reports whether reverse resolution produced a name
func (h HostRecord) HasHostname() bool {
	return h.Hostname != ""
}

// ScanReport holds one record per requested address in ascending address order
type ScanReport struct {
	ID         string       `json:"id"`
	Config     ScanConfig   `json:"config"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Hosts      []HostRecord `json:"hosts"`
}

// Len returns the number of records
func (r *ScanReport) Len() int {
	return len(r.Hosts)
}

// Duration is the wall clock time of the scan
func (r *ScanReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// ReachableHosts returns the reachable subset, preserving order
func (r *ScanReport) ReachableHosts() []HostRecord {
	var out []HostRecord
	for _, host := range r.Hosts {
		if host.Reachable {
			out = append(out, host)
		}
	}
	return out
}

// ExportRow is the flat tuple handed to file writers
type ExportRow struct {
	Address   string
	Hostname  string
	OpenPorts string
}

// Fields returns the row as a string slice in column order
func (e ExportRow) Fields() []string {
	return []string{e.Address, e.Hostname, e.OpenPorts}
}

// ExportRows translates the report into rows. Unreachable hosts are skipped
// unless includeUnreachable is set.
func (r *ScanReport) ExportRows(includeUnreachable bool) []ExportRow {
	rows := make([]ExportRow, 0, len(r.Hosts))
	for _, host := range r.Hosts {
		if !host.Reachable && !includeUnreachable {
			continue
		}
		rows = append(rows, host.ExportRow())
	}
	return rows
}

// ExportRow converts a single record, substituting placeholders
func (h HostRecord) ExportRow() ExportRow {
	row := ExportRow{
		Address:   h.Address.String(),
		Hostname:  HostnamePlaceholder,
		OpenPorts: NoPortsPlaceholder,
	}
	if h.HasHostname() {
		row.Hostname = h.Hostname
	}
	if len(h.OpenPorts) > 0 {
		ports := make([]string, 0, len(h.OpenPorts))
		for _, port := range h.OpenPorts {
			ports = append(ports, strconv.Itoa(port))
		}
		row.OpenPorts = strings.Join(ports, ", ")
	}
	return row
}
