// Package component defines the semantic model produced by the structural
// parser: component metadata, prop definitions, and the coarse component
// classification used by downstream stages.
package component

// Framework identifies which front-end ecosystem a component belongs to.
// It is always derived from the file extension, never from content sniffing.
type Framework string

const (
	FrameworkReact  Framework = "react"
	FrameworkVue    Framework = "vue"
	FrameworkSvelte Framework = "svelte"
)

// PropKind is the coarse semantic kind of a prop's declared type.
type PropKind string

const (
	// KindString covers plain string types.
	KindString PropKind = "string"
	// KindNumber covers numeric types.
	KindNumber PropKind = "number"
	// KindBoolean covers boolean types.
	KindBoolean PropKind = "boolean"
	// KindUnion is an enumerated literal union, e.g. 'small' | 'large'.
	KindUnion PropKind = "union"
	// KindFunction covers callbacks and event handlers.
	KindFunction PropKind = "function"
	// KindRenderable covers framework child-content types (ReactNode,
	// JSX.Element, slots) that cannot be round-tripped into a literal.
	KindRenderable PropKind = "renderable"
	// KindRaw is the passthrough kind used when recognition fails. The
	// original type text is preserved in PropType.Raw.
	KindRaw PropKind = "raw"
)

// PropType is the semantic type descriptor for one prop.
//
// Raw always carries the type text as it appeared in source (or the runtime
// type name for frameworks without static annotations), so downstream
// heuristics can consult it even when Kind is recognized.
type PropType struct {
	Kind   PropKind `json:"kind"`
	Raw    string   `json:"raw"`
	Values []string `json:"values,omitempty"`
}

// IsUnion reports whether the type is an enumerated literal union with at
// least one extracted value.
func (t PropType) IsUnion() bool {
	return t.Kind == KindUnion && len(t.Values) > 0
}

// PropDefinition is one declared component input.
type PropDefinition struct {
	Name         string   `json:"name"`
	Type         PropType `json:"type"`
	Required     bool     `json:"required"`
	DefaultValue string   `json:"default_value,omitempty"`
	Description  string   `json:"description,omitempty"`
}

// ComponentType is the coarse category assigned by classification.
// Classification is heuristic and never guaranteed correct.
type ComponentType string

const (
	TypeButton     ComponentType = "button"
	TypeInput      ComponentType = "input"
	TypeSelect     ComponentType = "select"
	TypeCheckbox   ComponentType = "checkbox"
	TypeRadio      ComponentType = "radio"
	TypeSwitch     ComponentType = "switch"
	TypeCard       ComponentType = "card"
	TypeModal      ComponentType = "modal"
	TypeSidebar    ComponentType = "sidebar"
	TypeLayout     ComponentType = "layout"
	TypeTable      ComponentType = "table"
	TypeList       ComponentType = "list"
	TypeChart      ComponentType = "chart"
	TypeBadge      ComponentType = "badge"
	TypeAvatar     ComponentType = "avatar"
	TypeAlert      ComponentType = "alert"
	TypeToast      ComponentType = "toast"
	TypeProgress   ComponentType = "progress"
	TypeMenu       ComponentType = "menu"
	TypeTabs       ComponentType = "tabs"
	TypeBreadcrumb ComponentType = "breadcrumb"
	TypePagination ComponentType = "pagination"
	TypeOther      ComponentType = "other"
)

// Metadata is the parsed description of one component file.
//
// A Metadata value is created fresh per parse invocation and is never
// mutated afterwards; downstream stages only read it.
type Metadata struct {
	Name           string           `json:"name"`
	FilePath       string           `json:"file_path"`
	Framework      Framework        `json:"framework"`
	Props          []PropDefinition `json:"props"`
	ComponentType  ComponentType    `json:"component_type"`
	HasChildren    bool             `json:"has_children"`
	ExportsDefault bool             `json:"exports_default"`
}

// Prop returns the prop with the given name, or nil.
func (m *Metadata) Prop(name string) *PropDefinition {
	for i := range m.Props {
		if m.Props[i].Name == name {
			return &m.Props[i]
		}
	}
	return nil
}

// HasProp reports whether a prop with the given name exists.
func (m *Metadata) HasProp(name string) bool {
	return m.Prop(name) != nil
}
