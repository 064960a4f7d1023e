package runner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lanscan/pkg/export"
	"github.com/projectdiscovery/lanscan/pkg/scanner"
	"github.com/projectdiscovery/lanscan/pkg/types"
	errorutil "github.com/projectdiscovery/utils/errors"
)

// Runner contains the internal logic of the program
type Runner struct {
	options *Options
}

// NewRunner instance
func NewRunner(options *Options) (*Runner, error) {
	if options == nil {
		return nil, fmt.Errorf("options are required")
	}
	return &Runner{options: options}, nil
}

// Run scans the configured range, prints the results and exports them when asked
func (r *Runner) Run(ctx context.Context) error {
	cfg, err := r.options.ScanConfig()
	if err != nil {
		return errorutil.NewWithErr(err).Msgf("invalid scan configuration")
	}

	scanOptions := r.options.scannerOptions()
	scanOptions.OnHost = r.onHost
	engine, err := scanner.New(scanOptions)
	if err != nil {
		return errorutil.NewWithErr(err).Msgf("could not create scanner")
	}

	gologger.Info().Msgf("Scanning %s.%d-%d (%s addresses)", cfg.BaseNetworkPrefix, cfg.StartOctet, cfg.EndOctet, humanize.Comma(int64(cfg.Size())))
	if cfg.DoPortScan {
		gologger.Info().Msgf("Port scan enabled on %s ports per reachable host", humanize.Comma(int64(cfg.PortSet().Len())))
	}

	report, err := engine.Scan(ctx, cfg)
	if err != nil {
		return errorutil.NewWithErr(err).Msgf("scan failed")
	}

	r.printSummary(report)

	if !r.options.Export {
		return nil
	}
	return r.export(report)
}

// onHost prints one finalized address. It runs on scanner worker goroutines.
func (r *Runner) onHost(record types.HostRecord) {
	gologger.Silent().Msg(formatRecord(record))
}

func formatRecord(record types.HostRecord) string {
	if !record.Reachable {
		return fmt.Sprintf("[%s] %s is not reachable (%s)", au.Red("-"), record.Address, record.Outcome)
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("[%s] %s is reachable | Hostname: %s", au.Green("+"), au.Bold(record.Address), record.ExportRow().Hostname))
	if len(record.OpenPorts) > 0 {
		ports := make([]string, 0, len(record.OpenPorts))
		for _, port := range record.OpenPorts {
			ports = append(ports, fmt.Sprint(port))
		}
		builder.WriteString(fmt.Sprintf(" | Open ports: %s", au.Cyan(strings.Join(ports, ", "))))
	}
	return builder.String()
}

func (r *Runner) printSummary(report *types.ScanReport) {
	reachable := report.ReachableHosts()
	openPorts := 0
	for _, host := range reachable {
		openPorts += len(host.OpenPorts)
	}

	gologger.Info().Msgf("Scan %s finished in %s: %s/%s addresses reachable, %s open ports",
		report.ID,
		report.Duration().Round(time.Millisecond),
		humanize.Comma(int64(len(reachable))),
		humanize.Comma(int64(report.Len())),
		humanize.Comma(int64(openPorts)),
	)
}

func (r *Runner) export(report *types.ScanReport) error {
	format, err := export.ParseFormat(r.options.Format)
	if err != nil {
		return errorutil.NewWithErr(err).Msgf("could not export results")
	}
	path, err := export.ToFile(r.options.Output, format, report, r.options.ExportAll)
	if err != nil {
		return errorutil.NewWithErr(err).Msgf("could not export results")
	}
	gologger.Info().Msgf("Results exported to %s", path)
	return nil
}
