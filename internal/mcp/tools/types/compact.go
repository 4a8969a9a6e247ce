package types

// compact removes nil, false, empty-string and empty-collection values from m
// in place and returns it. Numeric zeros are kept: a retreat cost of 0 is data.
func compact(m map[string]any) map[string]any {
	for k, v := range m {
		if isEmpty(v) {
			delete(m, k)
		}
	}
	return m
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case []map[string]any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
