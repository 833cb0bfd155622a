package merge

// Merge combines an existing settings value with an incoming one. Structured
// values (maps) blend key by key, with nested maps merged recursively. A
// structured incoming value wins over a scalar existing one. Scalars, strings
// and arrays in incoming replace the existing value wholesale. Neither input
// is mutated; the result shares no maps or slices with either.
func Merge(existing, incoming any) any {
	in, ok := incoming.(map[string]any)
	if !ok {
		return Clone(incoming)
	}
	ex, ok := existing.(map[string]any)
	if !ok {
		return Clone(in)
	}
	out := make(map[string]any, len(ex)+len(in))
	for k, v := range ex {
		out[k] = Clone(v)
	}
	for k, v := range in {
		if cur, found := out[k]; found {
			out[k] = Merge(cur, v)
			continue
		}
		out[k] = Clone(v)
	}
	return out
}

// Clone deep-copies a JSON-like value (scalars, strings, []any, map[string]any).
// Scalar values are returned as-is.
func Clone(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = Clone(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = Clone(elem)
		}
		return out
	default:
		return v
	}
}
