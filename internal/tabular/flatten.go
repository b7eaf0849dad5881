package tabular

import (
	"sort"
	"strings"
)

// Flatten converts a possibly nested row into a single-level mapping
// of dotted key paths to string values. Array-valued leaves join with
// "|"; every value is coerced to a string. The result feeds the
// header/row pairs of the delimited-text exports.
func Flatten(row Row) map[string]string {
	out := make(map[string]string)
	flattenInto(row, "", out)
	return out
}

func flattenInto(row Row, prefix string, out map[string]string) {
	for key, value := range row {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flattenInto(v, path, out)
		case []any:
			parts := make([]string, len(v))
			for i, item := range v {
				parts[i] = stringify(item)
			}
			out[path] = strings.Join(parts, "|")
		default:
			out[path] = stringify(value)
		}
	}
}

// FlattenHeaders returns the union of flattened keys across rows in
// sorted order, so every export has a deterministic column layout even
// when individual rows omit fields.
func FlattenHeaders(rows []Row) []string {
	seen := make(map[string]struct{})
	var headers []string
	for _, row := range rows {
		for key := range Flatten(row) {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			headers = append(headers, key)
		}
	}
	sort.Strings(headers)
	return headers
}
