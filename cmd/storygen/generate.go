package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/flight505/storygen/pkg/parser"
	"github.com/flight505/storygen/pkg/story"
	"github.com/flight505/storygen/pkg/variants"
)

type generateOptions struct {
	level        string
	output       string
	templateDir  string
	variantSpecs string
	dryRun       bool
	logLevel     string
}

func generateFlags(opts *generateOptions) *flag.FlagSet {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	fs.StringVar(&opts.level, "level", "", "story level: full, standard, basic or minimal")
	fs.StringVar(&opts.output, "output", "", "output path (default: <component>.stories.<ext> next to the component)")
	fs.StringVar(&opts.templateDir, "templates", "", "directory of template overrides")
	fs.StringVar(&opts.variantSpecs, "variant", "", "semicolon-separated variant specs (Name:prop=value,...) overriding inference")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "print the story to stdout instead of writing a file")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	return fs
}

func runGenerate(args []string) {
	var opts generateOptions
	fs := generateFlags(&opts)
	fs.Parse(args)

	if fs.NArg() != 1 {
		fatalf("usage: storygen generate [flags] <component-file>")
	}
	path := fs.Arg(0)
	logger := newLogger(resolveLogLevel(opts.logLevel))

	levelName := resolveLevel(opts.level)
	level, ok := story.ParseLevel(levelName)
	if !ok {
		fatalf("unknown level %q (want full, standard, basic or minimal)", levelName)
	}

	meta, err := parser.ParseFile(path)
	if err != nil {
		fatalf("parse failed: %v", err)
	}

	var vars []variants.Variant
	if opts.variantSpecs != "" {
		specs := strings.Split(opts.variantSpecs, ";")
		for i := range specs {
			specs[i] = strings.TrimSpace(specs[i])
		}
		parsed, errs := variants.ParseSpecs(specs)
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "warning: %v\n", e)
		}
		if len(parsed) == 0 {
			fatalf("no valid variant specs given")
		}
		vars = parsed
	} else {
		vars = variants.Infer(meta)
	}

	emitter := story.NewEmitter(story.Options{
		Level:       level,
		TemplateDir: resolveTemplateDir(opts.templateDir),
		Logger:      logger,
	})

	content, err := emitter.Emit(meta, vars)
	if err != nil {
		fatalf("generate failed: %v", err)
	}

	if opts.dryRun {
		fmt.Print(content)
		return
	}

	outPath := opts.output
	if outPath == "" {
		outPath = story.DefaultOutputPath(path)
	}
	if err := story.WriteStory(outPath, content); err != nil {
		fatalf("write failed: %v", err)
	}
	fmt.Printf("wrote %s (%d variants, level %s)\n", outPath, len(vars), level)
}
