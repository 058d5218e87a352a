// Package introspect classifies record fields by capability. A
// classification is computed once, at registration, and is immutable and
// shareable read-only across every processing call thereafter.
package introspect

import (
	"github.com/ErkEntonio/avendish/pkg/framework/field"
)

// Predicate decides whether a field matches a capability.
type Predicate func(f *field.Field) bool

// Introspection is the result of classifying a schema against one predicate:
// the ordered subsequence of matching fields plus the index maps between
// subset positions and full-record positions. Entries of the index map are
// strictly increasing, so relative declaration order is preserved.
type Introspection struct {
	schema   *field.Schema
	indexMap []int
}

// Empty is the classification of the zero-field schema. All of its
// enumerators are no-ops; callers never branch on emptiness.
var Empty = &Introspection{schema: field.Empty}

// Classify evaluates the predicate against every field of the schema, in
// declaration order. The result is a pure function of (schema, predicate):
// classifying twice yields identical maps.
func Classify(s *field.Schema, p Predicate) *Introspection {
	if s.Count() == 0 {
		return Empty
	}
	in := &Introspection{schema: s}
	s.ForAll(func(f *field.Field) {
		if p(f) {
			in.indexMap = append(in.indexMap, f.Index)
		}
	})
	if len(in.indexMap) == 0 {
		in.indexMap = nil
	}
	return in
}

// Schema returns the full schema the classification was built from.
func (in *Introspection) Schema() *field.Schema { return in.schema }

// Size returns the number of matching fields.
func (in *Introspection) Size() int { return len(in.indexMap) }

// Map returns the full-record position of the i-th matching field. O(1).
func (in *Introspection) Map(i int) int { return in.indexMap[i] }

// Unmap returns the subset position of the field at full-record position n,
// or -1 if that field does not match the predicate. O(k) linear search over
// the matching count.
func (in *Introspection) Unmap(n int) int {
	for i, idx := range in.indexMap {
		if idx == n {
			return i
		}
	}
	return -1
}

// Field returns the i-th matching field.
func (in *Introspection) Field(i int) *field.Field {
	return in.schema.At(in.indexMap[i])
}

// ForAll invokes fn on every matching field, in declaration order.
func (in *Introspection) ForAll(fn func(f *field.Field)) {
	for _, idx := range in.indexMap {
		fn(in.schema.At(idx))
	}
}

// ForAllN is ForAll but also passes the subset-local index (0, 1, 2, ...),
// for callers writing into subset-indexed side arrays such as a parameter
// changed bitset.
func (in *Introspection) ForAllN(fn func(i int, f *field.Field)) {
	for i, idx := range in.indexMap {
		fn(i, in.schema.At(idx))
	}
}

// ForNthRaw invokes fn on the field at full-record position n if and only if
// it matches the predicate; otherwise it does nothing. Used when the caller
// already holds a full-record index, e.g. from a host port list.
func (in *Introspection) ForNthRaw(n int, fn func(f *field.Field)) {
	for _, idx := range in.indexMap {
		if idx == n {
			fn(in.schema.At(idx))
			return
		}
	}
}

// ForNthMapped invokes fn on the i-th matching field, resolving through the
// index map first. It does nothing for an out-of-range i.
func (in *Introspection) ForNthMapped(i int, fn func(f *field.Field)) {
	if i >= 0 && i < len(in.indexMap) {
		fn(in.schema.At(in.indexMap[i]))
	}
}

// ForAllValues enumerates the matching fields alongside their live values in
// a frame built from the same schema.
func (in *Introspection) ForAllValues(fr *field.Frame, fn func(f *field.Field, v *field.FieldValue)) {
	for _, idx := range in.indexMap {
		fn(in.schema.At(idx), fr.Value(idx))
	}
}

// ForAllValuesN is ForAllValues with the subset-local index.
func (in *Introspection) ForAllValuesN(fr *field.Frame, fn func(i int, f *field.Field, v *field.FieldValue)) {
	for i, idx := range in.indexMap {
		fn(i, in.schema.At(idx), fr.Value(idx))
	}
}
