package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/flight505/storygen/pkg/inventory"
	"github.com/flight505/storygen/pkg/scanner"
	"github.com/flight505/storygen/pkg/util"
)

type scanOptions struct {
	include  string
	exclude  string
	workers  int
	asJSON   bool
	output   string
	quiet    bool
	logLevel string
}

func scanFlags(opts *scanOptions) *flag.FlagSet {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	fs.StringVar(&opts.include, "include", "", "comma-separated include glob patterns")
	fs.StringVar(&opts.exclude, "exclude", "", "comma-separated extra exclude glob patterns")
	fs.IntVar(&opts.workers, "workers", 0, "worker pool size (0 = auto)")
	fs.BoolVar(&opts.asJSON, "json", false, "print full scan result as JSON")
	fs.StringVar(&opts.output, "output", "", "write the component inventory to this JSON file")
	fs.BoolVar(&opts.quiet, "quiet", false, "suppress the progress bar")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	return fs
}

func runScan(args []string) {
	var cli scanOptions
	fs := scanFlags(&cli)
	fs.Parse(args)

	if fs.NArg() != 1 {
		fatalf("usage: storygen scan [flags] <project-root>")
	}
	root := fs.Arg(0)
	logger := newLogger(resolveLogLevel(cli.logLevel))

	opts := scanner.Options{
		Include: resolvePatterns(splitCSV(cli.include), func(c *ProjectConfig) []string { return c.Include }),
		Exclude: resolvePatterns(splitCSV(cli.exclude), func(c *ProjectConfig) []string { return c.Exclude }),
		Workers: resolveWorkers(cli.workers),
	}

	var bar *progressbar.ProgressBar
	if !cli.quiet && !cli.asJSON {
		opts.Progress = func(done, total int, filePath string) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("Parsing components"),
					progressbar.OptionSetWidth(40),
					progressbar.OptionShowCount(),
					progressbar.OptionShowIts(),
					progressbar.OptionSetItsString("files/s"),
					progressbar.OptionThrottle(65*time.Millisecond),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionOnCompletion(func() {
						fmt.Fprintln(os.Stderr)
					}),
				)
			}
			bar.Add(1)
		}
	}

	sources := util.NewSourceCache(util.SourceCacheConfig{Logger: logger})
	defer sources.Close()

	result, err := scanner.New(sources, logger).Scan(root, opts)
	if err != nil {
		fatalf("scan failed: %v", err)
	}

	savedTo := resolveInventoryPath(cli.output)
	if savedTo != "" {
		inv := inventory.New(inventory.Config{MaxEntries: len(result.Components) + 1}, logger)
		for _, meta := range result.Components {
			src, rerr := sources.Read(meta.FilePath)
			if rerr != nil {
				continue
			}
			inv.Add(meta, src)
		}
		if err := inv.SaveToFile(savedTo); err != nil {
			fatalf("save inventory: %v", err)
		}
	}

	if cli.asJSON {
		printJSON(result)
		return
	}
	printScanSummary(result)
	if savedTo != "" {
		fmt.Printf("  Inventory:       %s\n", savedTo)
	}
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
