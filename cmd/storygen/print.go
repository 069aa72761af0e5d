package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/flight505/storygen/pkg/component"
	"github.com/flight505/storygen/pkg/scanner"
	"github.com/flight505/storygen/pkg/variants"
)

// printMetadataHuman prints a human-readable component summary to stdout.
func printMetadataHuman(meta *component.Metadata) {
	fmt.Printf("%s  [%s/%s]\n", meta.Name, meta.Framework, meta.ComponentType)
	fmt.Printf("  %s\n", meta.FilePath)

	var traits []string
	if meta.HasChildren {
		traits = append(traits, "renders children")
	}
	if meta.ExportsDefault {
		traits = append(traits, "default export")
	}
	if len(traits) > 0 {
		fmt.Printf("  %s\n", strings.Join(traits, ", "))
	}

	fmt.Println()
	printPropsTable(meta.Props)
}

// printPropsTable renders the props table with dynamic column widths.
func printPropsTable(props []component.PropDefinition) {
	if len(props) == 0 {
		fmt.Println("Props  (none)")
		return
	}

	fmt.Println("Props")

	nameW := len("NAME")
	typeW := len("TYPE")
	defW := len("DEFAULT")
	for _, p := range props {
		if len(p.Name) > nameW {
			nameW = len(p.Name)
		}
		if len(p.Type.Raw) > typeW {
			typeW = len(p.Type.Raw)
		}
		def := p.DefaultValue
		if def == "" {
			def = "-"
		}
		if len(def) > defW {
			defW = len(def)
		}
	}

	sepLen := nameW + typeW + 5 + defW + 4
	fmt.Printf("  %-*s  %-*s  %-3s  %-*s\n", nameW, "NAME", typeW, "TYPE", "REQ", defW, "DEFAULT")
	fmt.Printf("  %s\n", strings.Repeat("-", sepLen))

	for _, p := range props {
		req := "no"
		if p.Required {
			req = "yes"
		}
		def := p.DefaultValue
		if def == "" {
			def = "-"
		}
		fmt.Printf("  %-*s  %-*s  %-3s  %-*s\n", nameW, p.Name, typeW, p.Type.Raw, req, defW, def)

		if p.Type.IsUnion() && len(p.Type.Values) > 0 {
			fmt.Printf("  %s  values: %s\n", strings.Repeat(" ", nameW), strings.Join(p.Type.Values, " | "))
		}
	}
}

// printVariantsHuman prints inferred variants as a table.
func printVariantsHuman(componentName string, vars []variants.Variant) {
	fmt.Printf("Variants for %s\n", componentName)
	if len(vars) == 0 {
		fmt.Println("  (none)")
		return
	}

	nameW := len("NAME")
	for _, v := range vars {
		if len(v.Name) > nameW {
			nameW = len(v.Name)
		}
	}

	for _, v := range vars {
		args := make([]string, 0, len(v.Args))
		for _, key := range sortedKeys(v.Args) {
			args = append(args, fmt.Sprintf("%s=%v", key, v.Args[key]))
		}
		argStr := strings.Join(args, " ")
		if argStr == "" {
			argStr = "(no args)"
		}
		fmt.Printf("  %-*s  P%d  %s\n", nameW, v.Name, v.Priority, argStr)
		if v.Description != "" {
			fmt.Printf("  %s      %s\n", strings.Repeat(" ", nameW), v.Description)
		}
	}
}

// printScanSummary prints the post-scan report.
func printScanSummary(result *scanner.Result) {
	fmt.Println()
	fmt.Printf("Scan complete: %d components from %d files (%.1fs)\n",
		result.Stats.FilesParsed,
		result.Stats.FilesDiscovered,
		result.Stats.TotalTime.Seconds())
	fmt.Printf("  Props extracted: %d\n", result.Stats.PropsExtracted)
	if result.Stats.FilesFailed > 0 {
		fmt.Printf("  Failed files:    %d\n", result.Stats.FilesFailed)
		for _, fe := range result.Errors {
			fmt.Printf("    %s: %v\n", fe.FilePath, fe.Err)
		}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
