// Package export writes scan reports to CSV or JSON files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/projectdiscovery/lanscan/pkg/types"
	fileutil "github.com/projectdiscovery/utils/file"
)

// Format is an export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// DefaultBaseName is the stem used for generated filenames
const DefaultBaseName = "scan_result"

// CSVHeader is the first row of every CSV export
var CSVHeader = []string{"IP Address", "Hostname", "Open Ports"}

// ParseFormat validates a format name
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(value)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", value)
	}
}

// WriteCSV writes the header followed by one line per row
func WriteCSV(w io.Writer, rows []types.ExportRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row.Fields()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteJSON writes the full report. Unreachable hosts are dropped unless
// includeUnreachable is set.
func WriteJSON(w io.Writer, report *types.ScanReport, includeUnreachable bool) error {
	out := *report
	if !includeUnreachable {
		out.Hosts = report.ReachableHosts()
		if out.Hosts == nil {
			out.Hosts = []types.HostRecord{}
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// Write serialises report in format to w
func Write(w io.Writer, format Format, report *types.ScanReport, includeUnreachable bool) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, report.ExportRows(includeUnreachable))
	case FormatJSON:
		return WriteJSON(w, report, includeUnreachable)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// NextFilename returns the first "<base>_<n>.<ext>" in dir that does not
// exist yet, counting from 1
func NextFilename(dir, base string, format Format) string {
	for counter := 1; ; counter++ {
		path := filepath.Join(dir, fmt.Sprintf("%s_%d.%s", base, counter, format))
		if !fileutil.FileExists(path) {
			return path
		}
	}
}

// ToFile writes report to path, creating parent directories as needed. When
// path is empty a fresh name is picked in the working directory. The path
// written is returned.
func ToFile(path string, format Format, report *types.ScanReport, includeUnreachable bool) (string, error) {
	if path == "" {
		path = NextFilename(".", DefaultBaseName, format)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("could not create %s: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create %s: %w", path, err)
	}
	if err := Write(file, format, report, includeUnreachable); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("could not write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("could not close %s: %w", path, err)
	}
	return path, nil
}
