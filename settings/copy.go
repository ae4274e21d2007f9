package settings

import "fmt"

// copyMap deep-copies a decoded YAML mapping so callers cannot reach resolver state.
func copyMap(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))

	for key, value := range src {
		dst[key] = copyValue(value)
	}

	return dst
}

func copyValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return copyMap(typed)
	case map[any]any:
		dst := make(map[string]any, len(typed))
		for key, nested := range typed {
			dst[fmt.Sprint(key)] = copyValue(nested)
		}

		return dst
	case []any:
		dst := make([]any, len(typed))
		for i, nested := range typed {
			dst[i] = copyValue(nested)
		}

		return dst
	default:
		return value
	}
}
