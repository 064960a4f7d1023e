package runner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/logrusorgru/aurora/v4"
	"github.com/projectdiscovery/lanscan/pkg/types"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func defaultOptions() *Options {
	return &Options{
		Prefix:     types.DefaultNetworkPrefix,
		Start:      1,
		End:        254,
		PingMethod: "auto",
		Format:     "csv",
	}
}

func TestScanConfig(t *testing.T) {
	options := defaultOptions()
	options.Prefix = "10.0.0"
	options.Start = 5
	options.End = 5

	cfg, err := options.ScanConfig()
	require.NoError(t, err)
	require.Equal(t, "10.0.0", cfg.BaseNetworkPrefix)
	require.Equal(t, 1, cfg.Size())
	require.False(t, cfg.DoPortScan)
}

func TestScanConfigPortsImplyPortScan(t *testing.T) {
	options := defaultOptions()
	options.Ports = "22,8000-8002"

	cfg, err := options.ScanConfig()
	require.NoError(t, err)
	require.True(t, cfg.DoPortScan)
	require.Equal(t, []int{22, 8000, 8001, 8002}, cfg.PortSet().Ports())

	options = defaultOptions()
	options.AllPorts = true
	cfg, err = options.ScanConfig()
	require.NoError(t, err)
	require.True(t, cfg.DoPortScan)
	require.Equal(t, 65535, cfg.PortSet().Len())
}

func TestScanConfigInvalid(t *testing.T) {
	options := defaultOptions()
	options.Start = 200
	options.End = 50

	_, err := options.ScanConfig()
	var cfgErr *types.ConfigError
	require.True(t, errors.As(err, &cfgErr))

	options = defaultOptions()
	options.Ports = "99999"
	_, err = options.ScanConfig()
	require.True(t, errors.As(err, &cfgErr))
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *Options)
		wantErr bool
	}{
		{name: "defaults", mutate: func(o *Options) {}},
		{name: "verbose and silent", mutate: func(o *Options) { o.Verbose, o.Silent = true, true }, wantErr: true},
		{name: "bad format", mutate: func(o *Options) { o.Format = "xml" }, wantErr: true},
		{name: "bad ping method", mutate: func(o *Options) { o.PingMethod = "arp" }, wantErr: true},
		{name: "bad range", mutate: func(o *Options) { o.End = 300 }, wantErr: true},
		{name: "json format", mutate: func(o *Options) { o.Format = "JSON" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := defaultOptions()
			tt.mutate(options)
			err := options.validateOptions()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateOptionsOutputEnablesExport(t *testing.T) {
	options := defaultOptions()
	options.Output = "out.csv"
	require.NoError(t, options.validateOptions())
	require.True(t, options.Export)
}

func TestLoadConfigFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lanscan.yaml")
	content := `prefix: 192.168.10
start: 10
end: 20
port_scan: true
ports: "22,80"
resolvers:
  - 10.0.0.53
  - 10.0.0.53
ping_timeout: 250ms
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	options := defaultOptions()
	require.NoError(t, options.loadConfigFrom(path))
	require.Equal(t, "192.168.10", options.Prefix)
	require.Equal(t, 10, options.Start)
	require.Equal(t, 20, options.End)
	require.True(t, options.PortScan)
	require.Equal(t, 250*time.Millisecond, options.PingTimeout)
	require.Equal(t, []string{"10.0.0.53"}, options.resolvers())
	// keys absent from the file keep their flag values
	require.Equal(t, "csv", options.Format)

	require.Error(t, options.loadConfigFrom(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestScannerOptions(t *testing.T) {
	options := defaultOptions()
	options.HostConcurrency = 8
	options.Resolvers = []string{" 1.1.1.1 ", "", "8.8.8.8", "1.1.1.1"}
	options.NoResolve = true

	scanOptions := options.scannerOptions()
	require.Equal(t, 8, scanOptions.HostConcurrency)
	require.Equal(t, []string{"1.1.1.1", "8.8.8.8"}, scanOptions.Resolver.Servers)
	require.True(t, scanOptions.DisableResolve)
	require.Nil(t, scanOptions.OnHost)
}

func TestFormatRecord(t *testing.T) {
	au = aurora.New(aurora.WithColors(false))

	require.Equal(t, "[+] 10.0.0.2 is reachable | Hostname: printer | Open ports: 80, 631", formatRecord(types.HostRecord{
		Address:   types.AddressFrom(10, 0, 0, 2),
		Reachable: true,
		Hostname:  "printer",
		OpenPorts: []int{80, 631},
		Outcome:   types.OutcomeReachable(),
	}))
	require.Equal(t, "[+] 10.0.0.3 is reachable | Hostname: Hostname not found", formatRecord(types.HostRecord{
		Address:   types.AddressFrom(10, 0, 0, 3),
		Reachable: true,
		OpenPorts: []int{},
		Outcome:   types.OutcomeReachable(),
	}))
	require.Equal(t, "[-] 10.0.0.4 is not reachable (timed-out)", formatRecord(types.HostRecord{
		Address:   types.AddressFrom(10, 0, 0, 4),
		OpenPorts: []int{},
		Outcome:   types.OutcomeTimedOut(),
	}))
}

func TestRunnerExport(t *testing.T) {
	options := defaultOptions()
	options.Format = "json"
	options.Output = filepath.Join(t.TempDir(), "results", "scan.json")

	r, err := NewRunner(options)
	require.NoError(t, err)

	report := &types.ScanReport{
		ID: "test",
		Hosts: []types.HostRecord{
			{Address: types.AddressFrom(10, 0, 0, 1), OpenPorts: []int{}, Outcome: types.OutcomeUnreachable()},
			{Address: types.AddressFrom(10, 0, 0, 2), Reachable: true, OpenPorts: []int{22}, Outcome: types.OutcomeReachable()},
		},
	}
	require.NoError(t, r.export(report))

	data, err := os.ReadFile(options.Output)
	require.NoError(t, err)
	hosts := gjson.GetBytes(data, "hosts")
	require.Len(t, hosts.Array(), 1)
	require.Equal(t, "10.0.0.2", hosts.Get("0.address").String())
}

func TestNewRunnerNilOptions(t *testing.T) {
	_, err := NewRunner(nil)
	require.Error(t, err)
}
