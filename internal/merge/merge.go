// Package merge deep-extends values decoded from JSON.
package merge

// Extend merges src into dst and returns the result. Objects are merged key by
// key and arrays index by index, recursively; for any other pair src wins,
// including an explicit null member. A nil root src leaves dst unchanged.
// dst maps and slices are modified in place.
func Extend(dst, src any) any {
	switch s := src.(type) {
	case nil:
		return dst
	case map[string]any:
		d, ok := dst.(map[string]any)
		if !ok {
			d = make(map[string]any, len(s))
		}
		for k, v := range s {
			if v == nil {
				d[k] = nil
				continue
			}
			d[k] = Extend(d[k], v)
		}
		return d
	case []any:
		d, ok := dst.([]any)
		if !ok {
			d = make([]any, 0, len(s))
		}
		for i, v := range s {
			if i < len(d) {
				d[i] = Extend(d[i], v)
				continue
			}
			d = append(d, Extend(nil, v))
		}
		return d
	default:
		return src
	}
}
