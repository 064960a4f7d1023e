package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/projectdiscovery/lanscan/pkg/types"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func sampleReport() *types.ScanReport {
	start := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	return &types.ScanReport{
		ID:         "csbvq8aab5l7d2qf4m3g",
		Config:     types.ScanConfig{BaseNetworkPrefix: "10.0.0", StartOctet: 1, EndOctet: 3, DoPortScan: true},
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Second),
		Hosts: []types.HostRecord{
			{Address: types.AddressFrom(10, 0, 0, 1), OpenPorts: []int{}, Outcome: types.OutcomeTimedOut()},
			{Address: types.AddressFrom(10, 0, 0, 2), Reachable: true, Hostname: "nas.lan", OpenPorts: []int{22, 445}, Outcome: types.OutcomeReachable()},
			{Address: types.AddressFrom(10, 0, 0, 3), Reachable: true, OpenPorts: []int{}, Outcome: types.OutcomeReachable()},
		},
	}
}

func TestWriteCSVReachableOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleReport(), false))

	want := "IP Address,Hostname,Open Ports\n" +
		"10.0.0.2,nas.lan,\"22, 445\"\n" +
		"10.0.0.3,Hostname not found,None\n"
	require.Equal(t, want, buf.String())
}

func TestWriteCSVAll(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleReport(), true))
	require.Contains(t, buf.String(), "10.0.0.1,Hostname not found,None\n")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleReport(), true))

	doc := buf.Bytes()
	require.True(t, gjson.ValidBytes(doc))
	require.Equal(t, "csbvq8aab5l7d2qf4m3g", gjson.GetBytes(doc, "id").String())
	require.Equal(t, "10.0.0", gjson.GetBytes(doc, "config.base_network_prefix").String())
	require.Equal(t, int64(3), gjson.GetBytes(doc, "hosts.#").Int())
	require.Equal(t, "timed-out", gjson.GetBytes(doc, "hosts.0.outcome.status").String())
	require.Equal(t, "nas.lan", gjson.GetBytes(doc, "hosts.1.hostname").String())
	var ports []int64
	for _, port := range gjson.GetBytes(doc, "hosts.1.open_ports").Array() {
		ports = append(ports, port.Int())
	}
	require.Equal(t, []int64{22, 445}, ports)
	openPorts := gjson.GetBytes(doc, "hosts.2.open_ports")
	require.True(t, openPorts.IsArray())
	require.Empty(t, openPorts.Array())
}

func TestWriteJSONReachableOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleReport(), false))
	require.Equal(t, int64(2), gjson.GetBytes(buf.Bytes(), "hosts.#").Int())
	require.Equal(t, "10.0.0.2", gjson.GetBytes(buf.Bytes(), "hosts.0.address").String())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	require.Error(t, err)
}

func TestNextFilename(t *testing.T) {
	dir := t.TempDir()
	require.Equal(t, filepath.Join(dir, "scan_result_1.csv"), NextFilename(dir, DefaultBaseName, FormatCSV))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "scan_result_1.csv"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scan_result_2.csv"), nil, 0o644))
	require.Equal(t, filepath.Join(dir, "scan_result_3.csv"), NextFilename(dir, DefaultBaseName, FormatCSV))
	require.Equal(t, filepath.Join(dir, "scan_result_1.json"), NextFilename(dir, DefaultBaseName, FormatJSON))
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	written, err := ToFile(path, FormatCSV, sampleReport(), false)
	require.NoError(t, err)
	require.Equal(t, path, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "10.0.0.2,nas.lan")
}
