package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/flight505/storygen/pkg/inventory"
	"github.com/flight505/storygen/pkg/scanner"
	"github.com/flight505/storygen/pkg/story"
	"github.com/flight505/storygen/pkg/util"
)

func runWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	generate := fs.Bool("generate", false, "regenerate story files when components change")
	levelFlag := fs.String("level", "", "story level used with -generate")
	templateDir := fs.String("templates", "", "directory of template overrides")
	debounce := fs.Int("debounce", 200, "debounce window in milliseconds")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fatalf("usage: storygen watch [flags] <project-root>")
	}
	root := fs.Arg(0)
	logger := newLogger(resolveLogLevel(*logLevel))

	levelName := resolveLevel(*levelFlag)
	level, ok := story.ParseLevel(levelName)
	if !ok {
		fatalf("unknown level %q (want full, standard, basic or minimal)", levelName)
	}

	sources := util.NewSourceCache(util.SourceCacheConfig{Logger: logger})
	defer sources.Close()

	inv := inventory.New(inventory.Config{}, logger)

	// Prime the inventory with the current project state so change
	// detection works from the first event.
	result, err := scanner.New(sources, logger).Scan(root, scanner.Options{})
	if err != nil {
		fatalf("initial scan failed: %v", err)
	}
	for _, meta := range result.Components {
		src, rerr := sources.Read(meta.FilePath)
		if rerr != nil {
			continue
		}
		inv.Add(meta, src)
	}
	fmt.Fprintf(os.Stderr, "watching %s (%d components)\n", root, inv.Len())

	var emitter *story.Emitter
	if *generate {
		emitter = story.NewEmitter(story.Options{
			Level:       level,
			TemplateDir: resolveTemplateDir(*templateDir),
			Logger:      logger,
		})
	}

	watcher, err := inventory.NewWatcher(inv, sources, emitter, inventory.WatchOptions{
		DebounceMs:   *debounce,
		AutoGenerate: *generate,
	}, logger)
	if err != nil {
		fatalf("create watcher: %v", err)
	}
	if err := watcher.Start(root); err != nil {
		fatalf("start watcher: %v", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	if err := watcher.Stop(); err != nil {
		fatalf("stop watcher: %v", err)
	}
}
