//go:build windows

package pingsweep

import "golang.org/x/sys/windows"

// isPrivileged reports whether the process token is elevated. Windows has no
// unprivileged ICMP socket, so a non elevated process falls back to the
// ping command.
func isPrivileged() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
