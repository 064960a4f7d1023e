package common

import (
	"errors"
	"testing"

	"github.com/projectdiscovery/lanscan/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestExpandRange(t *testing.T) {
	tests := []struct {
		name      string
		cfg       types.ScanConfig
		wantFirst string
		wantLast  string
		wantCount int
		wantErr   bool
	}{
		{
			name:      "three hosts",
			cfg:       types.ScanConfig{BaseNetworkPrefix: "10.0.0", StartOctet: 1, EndOctet: 3},
			wantFirst: "10.0.0.1",
			wantLast:  "10.0.0.3",
			wantCount: 3,
		},
		{
			name:      "full range includes network and broadcast",
			cfg:       types.ScanConfig{BaseNetworkPrefix: "192.168.1", StartOctet: 0, EndOctet: 255},
			wantFirst: "192.168.1.0",
			wantLast:  "192.168.1.255",
			wantCount: 256,
		},
		{
			name:      "single host",
			cfg:       types.ScanConfig{BaseNetworkPrefix: "172.16.172", StartOctet: 5, EndOctet: 5},
			wantFirst: "172.16.172.5",
			wantLast:  "172.16.172.5",
			wantCount: 1,
		},
		{
			name:    "inverted range",
			cfg:     types.ScanConfig{BaseNetworkPrefix: "10.0.0", StartOctet: 200, EndOctet: 50},
			wantErr: true,
		},
		{
			name:    "bad prefix",
			cfg:     types.ScanConfig{BaseNetworkPrefix: "10.0.300", StartOctet: 1, EndOctet: 2},
			wantErr: true,
		},
		{
			name:    "leading zero prefix",
			cfg:     types.ScanConfig{BaseNetworkPrefix: "010.0.0", StartOctet: 1, EndOctet: 3},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addrs, err := ExpandRange(tt.cfg)
			if tt.wantErr {
				var cfgErr *types.ConfigError
				require.True(t, errors.As(err, &cfgErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Len(t, addrs, tt.wantCount)
			require.Equal(t, tt.wantFirst, addrs[0].String())
			require.Equal(t, tt.wantLast, addrs[len(addrs)-1].String())
			for i := 1; i < len(addrs); i++ {
				require.Equal(t, -1, addrs[i-1].Compare(addrs[i]), "addresses must be ascending")
			}
		})
	}
}

func TestPrivatePrefix(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"192.168.1.23/24", "192.168.1", true},
		{"10.20.30.40/8", "10.20.30", true},
		{"172.16.172.9", "172.16.172", true},
		{"8.8.8.8/32", "", false},
		{"fe80::1/64", "", false},
		{"garbage", "", false},
	}
	for _, tt := range tests {
		got, ok := privatePrefix(tt.in)
		require.Equal(t, tt.wantOK, ok, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}
}

func TestIsNetworkOrBroadcast(t *testing.T) {
	require.True(t, IsNetworkOrBroadcast(types.AddressFrom(10, 0, 0, 0)))
	require.True(t, IsNetworkOrBroadcast(types.AddressFrom(10, 0, 0, 255)))
	require.False(t, IsNetworkOrBroadcast(types.AddressFrom(10, 0, 0, 1)))
}
