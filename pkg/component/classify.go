package component

import "strings"

// classificationRules is the ordered (keywords, category) table used by
// Classify. Evaluated top to bottom, first match wins. The table is
// read-only configuration data: loaded once, never mutated.
var classificationRules = []struct {
	category ComponentType
	keywords []string
}{
	// Form inputs.
	{TypeButton, []string{"button", "btn"}},
	{TypeInput, []string{"input", "textfield", "textarea"}},
	{TypeSelect, []string{"select", "dropdown", "combo"}},
	{TypeCheckbox, []string{"checkbox", "check"}},
	{TypeRadio, []string{"radio"}},
	{TypeSwitch, []string{"switch", "toggle"}},
	// Layout.
	{TypeCard, []string{"card"}},
	{TypeModal, []string{"modal", "dialog"}},
	{TypeSidebar, []string{"sidebar", "drawer"}},
	{TypeLayout, []string{"container", "box", "grid"}},
	// Data display.
	{TypeTable, []string{"table", "datagrid"}},
	{TypeList, []string{"list"}},
	{TypeChart, []string{"chart", "graph"}},
	{TypeBadge, []string{"badge", "tag", "chip"}},
	{TypeAvatar, []string{"avatar"}},
	// Feedback.
	{TypeAlert, []string{"alert", "notification"}},
	{TypeToast, []string{"toast", "snackbar"}},
	{TypeProgress, []string{"progress", "loader", "spinner"}},
	// Navigation.
	{TypeMenu, []string{"menu", "nav"}},
	{TypeTabs, []string{"tab"}},
	{TypeBreadcrumb, []string{"breadcrumb"}},
	{TypePagination, []string{"pagination", "pager"}},
}

// Classify assigns a coarse component category from the component name and
// its prop set. Name keywords are checked first in table order; when none
// match, a small set of prop-signal checks runs before falling back to
// TypeOther. The result is a best-effort hint, never a guarantee.
func Classify(name string, props []PropDefinition) ComponentType {
	lower := strings.ToLower(name)
	for _, rule := range classificationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}

	has := func(name string) bool {
		for i := range props {
			if strings.EqualFold(props[i].Name, name) {
				return true
			}
		}
		return false
	}
	switch {
	case has("isOpen") && has("onClose"):
		return TypeModal
	case has("columns") && (has("rows") || has("data")):
		return TypeTable
	}
	return TypeOther
}
