// fields.go — ordered annotations for Leaf errors.
//
// Design:
//   - Internal representation: append-only []Field (deterministic order).
//   - Builders are non-mutating: return NEW slices (no aliasing).
//   - Public view for callers: copy-on-read map[string]any.
//
// Go map iteration order is unspecified; the slice preserves insertion order
// so rendered annotations are stable across runs.
package errtree

// Field is a single key-value annotation attached to a Leaf. Keys SHOULD be
// snake_case for consistency, but the core does not enforce it.
type Field struct {
	Key string
	Val any
}

// fields is the internal append-only representation. Never modify elements in
// place once published.
type fields []Field

var emptyFields = make(fields, 0)

// fieldsCloneAppend returns a NEW slice with dst's contents followed by add.
// It always allocates a fresh backing array to avoid aliasing via append.
func fieldsCloneAppend(dst fields, add ...Field) fields {
	n := len(dst)
	m := len(add)
	if m == 0 {
		if n == 0 {
			return emptyFields
		}
		out := make(fields, n)
		copy(out, dst)
		return out
	}
	out := make(fields, n+m)
	copy(out, dst)
	copy(out[n:], add)
	return out
}

// fieldsFromKV parses variadic key-value arguments into fields.
//
// Rules:
//   - Pairs are read left-to-right as (key, value).
//   - A non-string "key" drops the ENTIRE pair (key and its value) so later
//     pairs stay aligned.
//   - A trailing key with no value becomes (key, nil).
func fieldsFromKV(kv ...any) fields {
	if len(kv) == 0 {
		return emptyFields
	}
	out := make(fields, 0, len(kv)/2+1)
	for i := 0; i < len(kv); {
		k, ok := kv[i].(string)
		if !ok {
			if i+1 < len(kv) {
				i += 2
			} else {
				i++
			}
			continue
		}
		var v any
		if i+1 < len(kv) {
			v = kv[i+1]
			i += 2
		} else {
			i++
		}
		out = append(out, Field{Key: k, Val: v})
	}
	if len(out) == 0 {
		return emptyFields
	}
	return out
}

// fieldsToMap creates a NEW map from fields (copy-on-read).
// Later duplicate keys overwrite earlier ones (last-write-wins).
func fieldsToMap(fs fields) map[string]any {
	if len(fs) == 0 {
		return nil
	}
	m := make(map[string]any, len(fs))
	for _, f := range fs {
		m[f.Key] = f.Val
	}
	return m
}
