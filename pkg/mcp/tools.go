package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func parseComponentTool() mcp.Tool {
	return mcp.NewTool("parse_component",
		mcp.WithDescription("Parse a UI component file (.tsx/.jsx/.ts/.js/.vue/.svelte) and return its metadata: name, framework, props with types, children usage, export form."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the component source file"),
		),
	)
}

func inferVariantsTool() mcp.Tool {
	return mcp.NewTool("infer_variants",
		mcp.WithDescription("Parse a component file and infer story variants from its props: enum values, size unions, boolean states and component-type specific variants, priority-ordered."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the component source file"),
		),
	)
}

func generateStoryTool() mcp.Tool {
	return mcp.NewTool("generate_story",
		mcp.WithDescription("Generate a complete Storybook CSF3 story file for a component. Returns the story source; optionally writes it next to the component."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the component source file"),
		),
		mcp.WithString("level",
			mcp.Description("Story completeness level: full, standard, basic or minimal (default full)"),
		),
		mcp.WithString("variants",
			mcp.Description("Semicolon-separated explicit variant specs (Name:prop=value,prop=value) overriding inference"),
		),
		mcp.WithBoolean("write",
			mcp.Description("Write the story file next to the component instead of only returning it"),
		),
	)
}

func scanProjectTool() mcp.Tool {
	return mcp.NewTool("scan_project",
		mcp.WithDescription("Scan a project tree for UI components, parse them in parallel, and record them in the component inventory. Returns a scan summary with per-file errors."),
		mcp.WithString("root",
			mcp.Required(),
			mcp.Description("Project root directory to scan"),
		),
		mcp.WithString("include",
			mcp.Description("Comma-separated include glob patterns (default: all supported extensions)"),
		),
		mcp.WithString("exclude",
			mcp.Description("Comma-separated extra exclude glob patterns"),
		),
	)
}

func listComponentsTool() mcp.Tool {
	return mcp.NewTool("list_components",
		mcp.WithDescription("List components from the inventory populated by scan_project, optionally filtered by framework, component type or name keyword."),
		mcp.WithString("framework",
			mcp.Description("Filter by framework: react, vue or svelte"),
		),
		mcp.WithString("type",
			mcp.Description("Filter by component type (button, input, modal, ...)"),
		),
		mcp.WithString("keyword",
			mcp.Description("Case-insensitive substring match on component names"),
		),
	)
}
