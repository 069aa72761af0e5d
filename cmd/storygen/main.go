package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/flight505/storygen/pkg/parser"
	"github.com/flight505/storygen/pkg/util"
	"github.com/flight505/storygen/pkg/variants"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]
	switch command {
	case "parse":
		runParse(args)
	case "variants":
		runVariants(args)
	case "generate":
		runGenerate(args)
	case "scan":
		runScan(args)
	case "watch":
		runWatch(args)
	case "serve":
		runServe(args)
	case "version":
		fmt.Printf("storygen %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: storygen <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  parse      Parse a component file and print its metadata")
	fmt.Println("  variants   Infer story variants for a component")
	fmt.Println("  generate   Generate a Storybook story file for a component")
	fmt.Println("  scan       Scan a project tree for components")
	fmt.Println("  watch      Watch a project and keep stories in sync")
	fmt.Println("  serve      Start the MCP server on stdin/stdout")
	fmt.Println("  version    Print version")
	fmt.Println("  help       Show this help message")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func newLogger(levelFlag string) *slog.Logger {
	cfg := util.DefaultLoggerConfig()
	if levelFlag != "" {
		cfg.Level = util.LogLevel(levelFlag)
	}
	return util.NewLogger(cfg)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatalf("marshal output: %v", err)
	}
	fmt.Println(string(data))
}

func runParse(args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "print metadata as JSON instead of a table")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fatalf("usage: storygen parse [flags] <component-file>")
	}

	meta, err := parser.ParseFile(fs.Arg(0))
	if err != nil {
		fatalf("parse failed: %v", err)
	}

	if *asJSON {
		printJSON(meta)
		return
	}
	printMetadataHuman(meta)
}

func runVariants(args []string) {
	fs := flag.NewFlagSet("variants", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "print variants as JSON instead of a table")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fatalf("usage: storygen variants [flags] <component-file>")
	}

	meta, err := parser.ParseFile(fs.Arg(0))
	if err != nil {
		fatalf("parse failed: %v", err)
	}
	vars := variants.Infer(meta)

	if *asJSON {
		printJSON(vars)
		return
	}
	printVariantsHuman(meta.Name, vars)
}
