package types

import (
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Address is an immutable dotted-quad IPv4 address
type Address struct {
	octets [4]byte
}

// ParseAddress validates a dotted-quad string and returns its Address.
// Every one of the four octets must be a decimal number in [0,255].
func ParseAddress(value string) (Address, error) {
	parts := strings.Split(value, ".")
	if len(parts) != 4 {
		return Address{}, fmt.Errorf("invalid address %q: expected 4 octets", value)
	}
	var addr Address
	for i, part := range parts {
		octet, err := parseOctet(part)
		if err != nil {
			return Address{}, fmt.Errorf("invalid address %q: %w", value, err)
		}
		addr.octets[i] = byte(octet)
	}
	return addr, nil
}

// AddressFrom builds an Address from its four octets
func AddressFrom(a, b, c, d byte) Address {
	return Address{octets: [4]byte{a, b, c, d}}
}

// AddressFromIP converts a net.IP, returning false for non IPv4 values
func AddressFromIP(ip net.IP) (Address, bool) {
	ip4 := ip.To4()
	if ip4 == nil {
		return Address{}, false
	}
	return AddressFrom(ip4[0], ip4[1], ip4[2], ip4[3]), true
}

// Octets returns a copy of the four octets
func (a Address) Octets() [4]byte {
	return a.octets
}

// Last returns the host octet
func (a Address) Last() byte {
	return a.octets[3]
}

// IP returns the address as a net.IP
func (a Address) IP() net.IP {
	return net.IPv4(a.octets[0], a.octets[1], a.octets[2], a.octets[3]).To4()
}

// Compare returns -1, 0 or 1 depending on the numeric ordering of a and b
func (a Address) Compare(b Address) int {
	for i := range a.octets {
		switch {
		case a.octets[i] < b.octets[i]:
			return -1
		case a.octets[i] > b.octets[i]:
			return 1
		}
	}
	return 0
}

func (a Address) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", a.octets[0], a.octets[1], a.octets[2], a.octets[3])
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	parsed, err := ParseAddress(value)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// parseOctet accepts plain decimal digits only, so "+1", " 1" and "010" are
// rejected
func parseOctet(value string) (int, error) {
	if value == "" {
		return 0, fmt.Errorf("empty octet")
	}
	if len(value) > 1 && value[0] == '0' {
		return 0, fmt.Errorf("octet %q has a leading zero", value)
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("octet %q is not a number", value)
		}
	}
	octet, err := strconv.Atoi(value)
	if err != nil || octet > 255 {
		return 0, fmt.Errorf("octet %q out of range [0,255]", value)
	}
	return octet, nil
}
