// identity.go — identity comparison and identity sets for error values.
//
// The filter engine and the formatter both reason about node IDENTITY, never
// content equality: two distinct error values can render identically while
// being different nodes in the tree. Go interface comparison panics when the
// dynamic type is not comparable, so all identity checks funnel through the
// helpers here (the same dual comparable/pointer guard the stdlib-interop
// traversal needs):
//   - comparable dynamic types use the value itself as identity
//   - pointer-typed dynamics use the pointer
//   - non-comparable, non-pointer dynamics have no stable identity; they are
//     treated as always-distinct and never recorded in a set
package errtree

import (
	"reflect"
)

// identical reports whether a and b are the SAME error value, in the sense of
// pointer or comparable-value identity. It never panics, whatever the dynamic
// types involved. Two non-comparable non-pointer values are never identical,
// even to themselves; callers treat such values as changed, which is the
// conservative direction for both filtering and rendering.
func identical(a, b error) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Kind() == reflect.Pointer {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	if ta.Comparable() {
		return a == b
	}
	return false
}

// identitySet records error identities. The zero value is ready to use.
type identitySet struct {
	byVal map[error]struct{}   // comparable dynamic types only
	byPtr map[uintptr]struct{} // pointer identity for non-comparable pointers
}

// add records err and reports whether it was newly added. Errors with no
// stable identity are never recorded and always report true.
func (s *identitySet) add(err error) bool {
	if err == nil {
		return false
	}
	if t := reflect.TypeOf(err); t.Comparable() {
		if s.byVal == nil {
			s.byVal = make(map[error]struct{})
		}
		if _, dup := s.byVal[err]; dup {
			return false
		}
		s.byVal[err] = struct{}{}
		return true
	}
	if rv := reflect.ValueOf(err); rv.Kind() == reflect.Pointer && !rv.IsNil() {
		if s.byPtr == nil {
			s.byPtr = make(map[uintptr]struct{})
		}
		id := rv.Pointer()
		if _, dup := s.byPtr[id]; dup {
			return false
		}
		s.byPtr[id] = struct{}{}
		return true
	}
	return true
}

// has reports whether err was previously added.
func (s *identitySet) has(err error) bool {
	if err == nil {
		return false
	}
	if t := reflect.TypeOf(err); t.Comparable() {
		_, ok := s.byVal[err]
		return ok
	}
	if rv := reflect.ValueOf(err); rv.Kind() == reflect.Pointer && !rv.IsNil() {
		_, ok := s.byPtr[rv.Pointer()]
		return ok
	}
	return false
}
