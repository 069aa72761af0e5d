package story

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FormatArgValue serializes a variant arg as a source literal: quoted
// strings, bare booleans and numbers. Unknown value types fall back to
// their quoted string form so generated output stays syntactically valid.
func FormatArgValue(v any) string {
	switch val := v.(type) {
	case string:
		return "'" + strings.ReplaceAll(val, "'", `\'`) + "'"
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return "'" + strings.ReplaceAll(fmt.Sprint(val), "'", `\'`) + "'"
	}
}

// sortedArgKeys returns arg keys in lexical order for reproducible output.
func sortedArgKeys(args map[string]any) []string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
