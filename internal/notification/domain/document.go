package domain

// Document is the decoded field set of a store document. Values keep the
// shapes produced by the Firestore client: string, bool, int64, float64,
// time.Time, []interface{} and map[string]interface{}.
type Document map[string]interface{}

// String returns the string stored under key, or "" when the field is
// absent or holds another type.
func (d Document) String(key string) string {
	v, _ := d[key].(string)
	return v
}

// Bool returns the boolean stored under key. ok is false when the field is
// absent or is not a boolean.
func (d Document) Bool(key string) (value bool, ok bool) {
	value, ok = d[key].(bool)
	return value, ok
}

// OptionalBool is Bool collapsed into a pointer: nil means absent.
func (d Document) OptionalBool(key string) *bool {
	v, ok := d.Bool(key)
	if !ok {
		return nil
	}
	return &v
}

// Strings returns the string entries of the array stored under key.
// Non-string entries are dropped; a missing or non-array field yields nil.
func (d Document) Strings(key string) []string {
	switch raw := d[key].(type) {
	case []string:
		out := make([]string, 0, len(raw))
		return append(out, raw...)
	case []interface{}:
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
