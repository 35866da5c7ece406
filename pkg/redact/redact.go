package redact

import (
	"encoding/json"
	"reflect"
	"unsafe"
)

// Circular replaces a container that refers back to one of its ancestors.
const Circular = "[Circular]"

// Redact returns info with every field matched by policy under scope replaced
// by Mask.
//
// A string holding a JSON object or array is decoded and returned as the
// decoded value; any other string is returned untouched. Maps, slices, structs
// and errors are walked; other values are returned as is. When the policy
// cannot match anything in scope, info is returned without being inspected.
func Redact(info any, scope Scope, policy *Policy) any {
	out, _ := RedactCount(info, scope, policy)
	return out
}

// RedactCount is Redact that also reports how many fields were masked.
func RedactCount(info any, scope Scope, policy *Policy) (out any, masked int) {
	if !policy.Applies(scope) {
		return info, 0
	}

	defer func() {
		if r := recover(); r != nil {
			out, masked = info, 0
		}
	}()

	var n node
	if s, ok := info.(string); ok {
		parsed, ok := ParseContainer(s)
		if !ok {
			return info, 0
		}
		n = classify(parsed)
	} else {
		n = classify(info)
		if n.kind == kindScalar {
			return info, 0
		}
	}

	w := newWalker(scope, policy)
	out = w.walk(n)
	return out, w.masked
}

// kind is the shape of a node as seen by the walker.
type kind uint8

const (
	kindScalar kind = iota
	kindObject
	kindArray
	// kindEncoded is a string whose content is a JSON object or array.
	kindEncoded
)

// node is a value resolved to its kind exactly once. For kindEncoded, value
// holds the decoded container and raw the original string.
type node struct {
	kind  kind
	value any
	raw   string
}

func classify(v any) node {
	switch t := v.(type) {
	case nil, bool, json.Number, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return node{kind: kindScalar, value: v}
	case map[string]any:
		return node{kind: kindObject, value: t}
	case []any:
		return node{kind: kindArray, value: t}
	case string:
		if c, ok := ParseContainer(t); ok {
			return node{kind: kindEncoded, value: c, raw: t}
		}
		return node{kind: kindScalar, value: t}
	case error:
		return node{kind: kindObject, value: errorFields(t)}
	}

	if generic, ok := normalize(v); ok {
		switch c := generic.(type) {
		case map[string]any:
			return node{kind: kindObject, value: c}
		case []any:
			return node{kind: kindArray, value: c}
		}
	}
	return node{kind: kindScalar, value: v}
}

// normalize converts structs, typed maps and typed slices into their generic
// JSON form so their keys can be matched. Other values are left alone.
func normalize(v any) (any, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct, reflect.Map, reflect.Array:
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
	default:
		return nil, false
	}
	return roundTrip(v)
}

// errorFields exposes an error as an object. Exported fields of the error
// type are kept; "message" is always present.
func errorFields(err error) map[string]any {
	fields, _ := normalizeObject(err)
	if fields == nil {
		fields = make(map[string]any, 1)
	}
	if _, ok := fields["message"]; !ok {
		fields["message"] = err.Error()
	}
	return fields
}

func normalizeObject(v any) (map[string]any, bool) {
	generic, ok := normalize(v)
	if !ok {
		return nil, false
	}
	m, ok := generic.(map[string]any)
	return m, ok
}

// ref identifies a container by the address of its backing storage.
type ref struct {
	ptr unsafe.Pointer
	len int
}

type walker struct {
	global FieldSet
	scoped FieldSet
	masked int
	// path holds the containers between the root and the current node.
	path map[ref]struct{}
}

func newWalker(scope Scope, policy *Policy) *walker {
	scoped, _ := policy.scoped(scope)
	return &walker{
		global: policy.Global,
		scoped: scoped,
		path:   make(map[ref]struct{}),
	}
}

func (w *walker) matches(key string) bool {
	return w.global.Contains(key) || w.scoped.Contains(key)
}

func (w *walker) walk(n node) any {
	switch n.kind {
	case kindObject:
		return w.object(n.value.(map[string]any))
	case kindArray:
		return w.array(n.value.([]any))
	case kindEncoded:
		out := w.walk(classify(n.value))
		s, err := encode(out)
		if err != nil {
			return n.raw
		}
		return s
	default:
		return n.value
	}
}

func (w *walker) object(m map[string]any) any {
	id := ref{ptr: reflect.ValueOf(m).UnsafePointer(), len: -1}
	if !w.enter(id) {
		return Circular
	}
	defer w.leave(id)

	out := make(map[string]any, len(m))
	for k, v := range m {
		if w.matches(k) {
			out[k] = Mask
			w.masked++
			continue
		}
		out[k] = w.walk(classify(v))
	}
	return out
}

func (w *walker) array(s []any) any {
	if len(s) == 0 {
		return s
	}
	id := ref{ptr: unsafe.Pointer(&s[0]), len: len(s)}
	if !w.enter(id) {
		return Circular
	}
	defer w.leave(id)

	out := make([]any, len(s))
	for i, v := range s {
		out[i] = w.walk(classify(v))
	}
	return out
}

func (w *walker) enter(id ref) bool {
	if _, seen := w.path[id]; seen {
		return false
	}
	w.path[id] = struct{}{}
	return true
}

func (w *walker) leave(id ref) {
	delete(w.path, id)
}
