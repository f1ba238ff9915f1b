package discord

func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	copied := make(map[string]any, len(m))
	for key, value := range m {
		copied[key] = deepCopyValue(value)
	}

	return copied
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyMap(t)
	case []any:
		copied := make([]any, len(t))
		for i, item := range t {
			copied[i] = deepCopyValue(item)
		}
		return copied
	default:
		return v
	}
}

// lessID compares two decimal snowflake ids numerically without parsing.
func lessID(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}

	return a < b
}
