package cliapp

import "flag"

const versionString = "1.0.0"
const defaultConfigPath = "./docwatch.toml"

type cliOptions struct {
	configPath  string
	metricsAddr string
	watch       bool
	scaffold    bool
	baseline    bool
	force       bool
	dryRun      bool
	plain       bool
	verbose     bool
	version     bool
	args        []string
}

func parseOptions(args []string) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("docwatch", flag.ContinueOnError)

	fs.StringVar(&opts.configPath, "config", defaultConfigPath, "Path to config file")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address in watch mode (e.g. :9090)")
	fs.BoolVar(&opts.watch, "watch", false, "Re-run validation whenever a pair file changes")
	fs.BoolVar(&opts.scaffold, "scaffold", false, "Suggest @docs annotations for unlinked functions")
	fs.BoolVar(&opts.baseline, "baseline", false, "Record current findings as accepted debt")
	fs.BoolVar(&opts.force, "force", false, "Apply all scaffold suggestions without confirmation")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Show scaffold changes without writing files")
	fs.BoolVar(&opts.plain, "plain", false, "Disable colored output")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	opts.args = fs.Args()
	return opts, nil
}
