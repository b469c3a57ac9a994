package cache

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// CreateKey canonicalizes params into a cache key: keys are sorted
// ascending, empty/absent values are dropped, and each remaining value is
// rendered through a stable JSON encoding. Two parameter sets that are
// semantically equal — including differing only in key order — produce
// identical keys.
func CreateKey(prefix string, params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if isEmptyValue(v) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(prefix)
	for _, k := range keys {
		b.WriteByte(':')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(stableJSON(params[k]))
	}
	return b.String()
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []int:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case int:
		return false
	case float64:
		return false
	case bool:
		return false
	default:
		return false
	}
}

// stableJSON renders v as JSON; slices of comparable scalars are sorted
// first so element ordering differences within a slice never change the
// output.
func stableJSON(v any) string {
	switch t := v.(type) {
	case []int:
		sorted := append([]int(nil), t...)
		sort.Ints(sorted)
		b, _ := json.Marshal(sorted)
		return string(b)
	case []string:
		sorted := append([]string(nil), t...)
		sort.Strings(sorted)
		b, _ := json.Marshal(sorted)
		return string(b)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
