package runner

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/logrusorgru/aurora/v4"
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	"github.com/projectdiscovery/lanscan/pkg/export"
	"github.com/projectdiscovery/lanscan/pkg/peerdiscovery/common"
	"github.com/projectdiscovery/lanscan/pkg/peerdiscovery/pingsweep"
	"github.com/projectdiscovery/lanscan/pkg/peerdiscovery/portscan"
	"github.com/projectdiscovery/lanscan/pkg/peerdiscovery/resolver"
	"github.com/projectdiscovery/lanscan/pkg/scanner"
	"github.com/projectdiscovery/lanscan/pkg/types"
	"github.com/projectdiscovery/lanscan/pkg/version"
	envutil "github.com/projectdiscovery/utils/env"
	fileutil "github.com/projectdiscovery/utils/file"
	sliceutil "github.com/projectdiscovery/utils/slice"
)

var au = aurora.New(aurora.WithColors(true))

var (
	PrefixEnv    = envutil.GetEnvOrDefault("LANSCAN_PREFIX", types.DefaultNetworkPrefix)
	ResolversEnv = envutil.GetEnvOrDefault("LANSCAN_RESOLVERS", "")
)

// Options contains the configuration options for a scan run
type Options struct {
	ConfigFile string `yaml:"-"`

	Prefix     string `yaml:"prefix"`
	Start      int    `yaml:"start"`
	End        int    `yaml:"end"`
	AutoPrefix bool   `yaml:"auto_prefix"`

	PortScan bool   `yaml:"port_scan"`
	AllPorts bool   `yaml:"all_ports"`
	Ports    string `yaml:"ports"`

	HostConcurrency int           `yaml:"host_concurrency"`
	PortConcurrency int           `yaml:"port_concurrency"`
	PingTimeout     time.Duration `yaml:"ping_timeout"`
	PortTimeout     time.Duration `yaml:"port_timeout"`
	PingMethod      string        `yaml:"ping_method"`
	NoPrescan       bool          `yaml:"no_prescan"`

	Resolvers       goflags.StringSlice `yaml:"resolvers"`
	NoResolve       bool                `yaml:"no_resolve"`
	ResolverTimeout time.Duration       `yaml:"resolver_timeout"`

	Export    bool   `yaml:"export"`
	Output    string `yaml:"output"`
	Format    string `yaml:"format"`
	ExportAll bool   `yaml:"export_all"`

	Verbose bool `yaml:"verbose"`
	Silent  bool `yaml:"silent"`
	NoColor bool `yaml:"no_color"`
	Version bool `yaml:"-"`
}

// ParseOptions parses the command line flags provided by a user
func ParseOptions() *Options {
	options := &Options{}
	flagSet := goflags.NewFlagSet()

	flagSet.SetDescription(`lanscan discovers live hosts on a /24 network and enumerates their open tcp ports`)

	defaultResolvers := goflags.StringSlice{}
	if ResolversEnv != "" {
		defaultResolvers = strings.Split(ResolversEnv, ",")
	}

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&options.Prefix, "prefix", "p", PrefixEnv, "first three octets of the network to scan (e.g. 192.168.1)"),
		flagSet.IntVarP(&options.Start, "start", "s", 1, "first host octet to scan"),
		flagSet.IntVarP(&options.End, "end", "e", 254, "last host octet to scan"),
		flagSet.BoolVarP(&options.AutoPrefix, "auto-prefix", "ap", false, "detect the prefix from the local private interfaces"),
	)

	flagSet.CreateGroup("scan", "Scan",
		flagSet.BoolVarP(&options.PortScan, "port-scan", "ps", false, "scan tcp ports of reachable hosts"),
		flagSet.BoolVarP(&options.AllPorts, "all-ports", "pa", false, "scan every tcp port (1-65535) instead of the well-known list"),
		flagSet.StringVar(&options.Ports, "ports", "", "custom ports to scan (e.g. 22,80,8000-8100)"),
		flagSet.BoolVarP(&options.NoPrescan, "no-prescan", "np", false, "probe addresses in ascending order"),
	)

	flagSet.CreateGroup("tuning", "Tuning",
		flagSet.IntVarP(&options.HostConcurrency, "host-concurrency", "hc", scanner.DefaultHostConcurrency, "maximum in-flight reachability probes"),
		flagSet.IntVarP(&options.PortConcurrency, "port-concurrency", "pc", portscan.DefaultConcurrency, "maximum in-flight port probes per host"),
		flagSet.DurationVarP(&options.PingTimeout, "ping-timeout", "pt", pingsweep.DefaultTimeout, "timeout of a single reachability probe"),
		flagSet.DurationVarP(&options.PortTimeout, "port-timeout", "tt", portscan.DefaultTimeout, "timeout of a single tcp connect"),
		flagSet.StringVarP(&options.PingMethod, "ping-method", "pm", string(pingsweep.MethodAuto), "reachability prober (auto, icmp, command)"),
	)

	flagSet.CreateGroup("resolver", "Resolver",
		flagSet.StringSliceVarP(&options.Resolvers, "resolver", "r", defaultResolvers, "dns servers used for reverse lookups (comma separated)", goflags.CommaSeparatedStringSliceOptions),
		flagSet.BoolVarP(&options.NoResolve, "no-resolve", "nr", false, "skip hostname resolution"),
		flagSet.DurationVarP(&options.ResolverTimeout, "resolver-timeout", "rt", resolver.DefaultTimeout, "timeout of a single reverse lookup"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVar(&options.Export, "export", false, "export results to a file"),
		flagSet.StringVarP(&options.Output, "output", "o", "", "export file path (default scan_result_N.<format>)"),
		flagSet.StringVarP(&options.Format, "format", "f", string(export.FormatCSV), "export format (csv, json)"),
		flagSet.BoolVarP(&options.ExportAll, "export-all", "ea", false, "include unreachable addresses in the export"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&options.ConfigFile, "config", "", "yaml configuration file"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVar(&options.Version, "version", false, "show version of the project"),
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "show verbose output"),
		flagSet.BoolVar(&options.Silent, "silent", false, "show only results in output"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "disable output content coloring (ANSI escape codes)"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}

	if options.ConfigFile != "" {
		if err := options.loadConfigFrom(options.ConfigFile); err != nil {
			gologger.Fatal().Msgf("Could not read config file %s: %s\n", options.ConfigFile, err)
		}
	}

	options.configureOutput()

	showBanner()

	if options.Version {
		gologger.Info().Msgf("Current Version: %s\n", version.GetVersion())
		os.Exit(0)
	}

	if err := options.validateOptions(); err != nil {
		gologger.Fatal().Msgf("Program exiting: %s\n", err)
	}

	return options
}

// configureOutput configures the output on the screen
func (options *Options) configureOutput() {
	if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if options.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
		au = aurora.New(aurora.WithColors(false))
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
}

// loadConfigFrom merges a yaml file into options. Keys present in the file
// override the flag values.
func (options *Options) loadConfigFrom(location string) error {
	if !fileutil.FileExists(location) {
		return fmt.Errorf("%s does not exist", location)
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return err
	}
	return fileutil.Unmarshal(fileutil.YAML, data, options)
}

// validateOptions checks the flag combinations that ScanConfig cannot
func (options *Options) validateOptions() error {
	if options.Verbose && options.Silent {
		return fmt.Errorf("verbose and silent can't be used together")
	}
	if _, err := export.ParseFormat(options.Format); err != nil {
		return err
	}
	switch pingsweep.Method(options.PingMethod) {
	case pingsweep.MethodAuto, pingsweep.MethodICMP, pingsweep.MethodCommand:
	default:
		return fmt.Errorf("unknown ping method %q", options.PingMethod)
	}
	if options.Output != "" {
		options.Export = true
	}
	_, err := options.ScanConfig()
	return err
}

// ScanConfig builds the validated scan request
func (options *Options) ScanConfig() (types.ScanConfig, error) {
	prefix := options.Prefix
	if options.AutoPrefix {
		prefix = common.DetectPrefix()
		gologger.Verbose().Msgf("using detected prefix %s", prefix)
	}

	cfg := types.ScanConfig{
		BaseNetworkPrefix: prefix,
		StartOctet:        options.Start,
		EndOctet:          options.End,
		DoPortScan:        options.PortScan,
		ScanAllPorts:      options.AllPorts,
	}
	if options.Ports != "" {
		ports, err := types.ParsePortSet(options.Ports)
		if err != nil {
			return types.ScanConfig{}, err
		}
		cfg.Ports = ports
		cfg.DoPortScan = true
	}
	if options.AllPorts {
		cfg.DoPortScan = true
	}
	if err := cfg.Validate(); err != nil {
		return types.ScanConfig{}, err
	}
	return cfg, nil
}

// resolvers returns the configured dns servers, trimmed and deduplicated
func (options *Options) resolvers() []string {
	var servers []string
	for _, server := range options.Resolvers {
		if server = strings.TrimSpace(server); server != "" {
			servers = append(servers, server)
		}
	}
	return sliceutil.Dedupe(servers)
}

// scannerOptions maps the cli options onto the engine tuning knobs
func (options *Options) scannerOptions() *scanner.Options {
	return &scanner.Options{
		HostConcurrency: options.HostConcurrency,
		PortConcurrency: options.PortConcurrency,
		PingMethod:      pingsweep.Method(options.PingMethod),
		PingTimeout:     options.PingTimeout,
		PortTimeout:     options.PortTimeout,
		Resolver: resolver.Options{
			Servers: options.resolvers(),
			Timeout: options.ResolverTimeout,
		},
		DisableResolve: options.NoResolve,
		DisablePrescan: options.NoPrescan,
	}
}
