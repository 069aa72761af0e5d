package variants

import (
	"fmt"
	"strconv"
	"strings"
)

// InvalidSpecError reports one malformed ad hoc variant spec entry.
// Entries are independent: callers report each error and keep processing
// the remaining entries.
type InvalidSpecError struct {
	Spec   string
	Reason string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid variant spec %q: %s", e.Spec, e.Reason)
}

// ParseSpec parses one ad hoc variant spec of the form
//
//	Name:prop=value,prop2=value2
//
// Values are typed by shape: true/false become booleans, numeric text
// becomes a number, everything else stays a string. Priority is always
// PriorityHigh; hand-written variants outrank inferred ones.
func ParseSpec(spec string) (Variant, error) {
	name, rest, found := strings.Cut(spec, ":")
	if !found {
		return Variant{}, &InvalidSpecError{Spec: spec, Reason: "expected Name:prop=value[,prop=value...]"}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Variant{}, &InvalidSpecError{Spec: spec, Reason: "variant name is empty"}
	}

	args := make(map[string]any)
	for _, pair := range strings.Split(rest, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return Variant{}, &InvalidSpecError{Spec: spec, Reason: fmt.Sprintf("malformed pair %q", pair)}
		}
		args[key] = typedValue(strings.TrimSpace(value))
	}

	return Variant{
		Name:        name,
		Description: "User-specified variant",
		Args:        args,
		Priority:    PriorityHigh,
	}, nil
}

// ParseSpecs parses a batch of specs, returning every valid variant and
// every per-entry error. A bad entry never blocks the rest.
func ParseSpecs(specs []string) ([]Variant, []error) {
	var out []Variant
	var errs []error
	for _, spec := range specs {
		v, err := ParseSpec(spec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, v)
	}
	return out, errs
}

func typedValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return strings.Trim(s, `'"`)
}
