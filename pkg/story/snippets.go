package story

import (
	"strings"

	"github.com/flight505/storygen/pkg/component"
)

// Interaction and accessibility snippets are process-wide read-only lookup
// tables keyed by component type. Loaded once, never mutated.

var interactionSnippets = map[component.ComponentType]string{
	component.TypeButton: `const button = canvas.getByRole('button');
    await expect(button).toBeInTheDocument();
    await userEvent.click(button);
    if (args.onClick) {
      await expect(args.onClick).toHaveBeenCalled();
    }
    await expect(button).not.toBeDisabled();`,
	component.TypeInput: `const input = canvas.getByRole('textbox');
    await expect(input).toBeInTheDocument();
    await userEvent.type(input, 'Test input');
    await expect(input).toHaveValue('Test input');`,
	component.TypeCheckbox: `const checkbox = canvas.getByRole('checkbox');
    await expect(checkbox).toBeInTheDocument();
    await userEvent.click(checkbox);
    await expect(checkbox).toBeChecked();`,
	component.TypeSelect: `const select = canvas.getByRole('combobox');
    await expect(select).toBeInTheDocument();
    await userEvent.selectOptions(select, 'option1');`,
}

var a11yRuleSets = map[component.ComponentType][]string{
	component.TypeButton: {
		"{ id: 'button-name', enabled: true }",
		"{ id: 'color-contrast', enabled: true }",
	},
	component.TypeInput: {
		"{ id: 'label', enabled: true }",
		"{ id: 'color-contrast', enabled: true }",
	},
	component.TypeModal: {
		"{ id: 'aria-dialog-name', enabled: true }",
		"{ id: 'focus-trap', enabled: true }",
	},
}

var a11ySnippets = map[component.ComponentType]string{
	component.TypeButton: `const button = canvas.getByRole('button');
    button.focus();
    await expect(button).toHaveFocus();
    await userEvent.keyboard('{Enter}');`,
	component.TypeInput: `const input = canvas.getByRole('textbox');
    await expect(input).toHaveAccessibleName();
    input.focus();
    await expect(input).toHaveFocus();`,
}

func interactionSnippet(t component.ComponentType) string {
	if s, ok := interactionSnippets[t]; ok {
		return s
	}
	return "// Component-specific interaction test"
}

func a11yRules(t component.ComponentType) string {
	rules, ok := a11yRuleSets[t]
	if !ok {
		rules = []string{"{ id: 'color-contrast', enabled: true }"}
	}
	return strings.Join(rules, ",\n          ")
}

func a11ySnippet(t component.ComponentType) string {
	if s, ok := a11ySnippets[t]; ok {
		return s
	}
	return "// Component-specific accessibility test"
}
