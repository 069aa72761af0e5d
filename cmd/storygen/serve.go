package main

import (
	"flag"
	"os"

	"github.com/flight505/storygen/pkg/inventory"
	mcpserver "github.com/flight505/storygen/pkg/mcp"
	"github.com/flight505/storygen/pkg/mcplog"
	"github.com/flight505/storygen/pkg/scanner"
	"github.com/flight505/storygen/pkg/story"
	"github.com/flight505/storygen/pkg/util"
)

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	levelFlag := fs.String("level", "", "default story level: full, standard, basic or minimal")
	templateDir := fs.String("templates", "", "directory of template overrides")
	inventoryPath := fs.String("inventory", "", "inventory JSON file to preload")
	mcpLogPath := fs.String("mcp-log", "", "JSONL tool-call log path (empty = disabled)")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.Parse(args)

	logger := newLogger(resolveLogLevel(*logLevel))

	levelName := resolveLevel(*levelFlag)
	level, ok := story.ParseLevel(levelName)
	if !ok {
		fatalf("unknown level %q (want full, standard, basic or minimal)", levelName)
	}

	inv := inventory.New(inventory.Config{}, logger)
	if path := resolveInventoryPath(*inventoryPath); path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := inv.LoadFromFile(path); err != nil {
				logger.Warn("failed to preload inventory", "path", path, "error", err)
			} else {
				logger.Info("inventory preloaded", "path", path, "components", inv.Len())
			}
		}
	}

	toolLog, err := mcplog.NewLogger(resolveMCPLogPath(*mcpLogPath))
	if err != nil {
		fatalf("open mcp log: %v", err)
	}
	if toolLog != nil {
		defer toolLog.Close()
	}

	sources := util.NewSourceCache(util.SourceCacheConfig{Logger: logger})
	defer sources.Close()

	srv := mcpserver.NewServer(mcpserver.Config{
		Inventory: inv,
		Scanner:   scanner.New(sources, logger),
		Emitter: story.NewEmitter(story.Options{
			Level:       level,
			TemplateDir: resolveTemplateDir(*templateDir),
			Logger:      logger,
		}),
		ToolLog: toolLog,
		Logger:  logger,
	})

	logger.Info("mcp server starting", "level", level)
	if err := srv.ServeStdio(); err != nil {
		fatalf("server error: %v", err)
	}
}
