// Package criteria computes structural from→to patches between two values of
// the same struct type and applies them back.
//
// A patch records one Change per exported top-level field whose values differ
// (maps and slices compare equal when both are empty). Every patch carries the
// previous value of each field, so it can always be inverted.
package criteria

import (
	"fmt"
	"go/token"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Cloner is implemented by criteria values. Clone must return a deep copy.
type Cloner[T any] interface {
	Clone() T
}

// Change is the transition of a single field.
type Change struct {
	Field string `json:"field"`
	From  any    `json:"from,omitempty"`
	To    any    `json:"to"`
}

// Patch is an ordered list of field changes for values of type T.
type Patch[T any] struct {
	Changes []Change `json:"changes"`
	// Overwrite marks a patch that carries every field rather than only the
	// differing ones.
	Overwrite bool `json:"overwrite,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p Patch[T]) Empty() bool {
	return len(p.Changes) == 0
}

// Fields returns the names of the changed fields in declaration order.
func (p Patch[T]) Fields() []string {
	names := make([]string, 0, len(p.Changes))
	for _, c := range p.Changes {
		names = append(names, c.Field)
	}
	return names
}

// Has reports whether field is part of the patch.
func (p Patch[T]) Has(field string) bool {
	for _, c := range p.Changes {
		if c.Field == field {
			return true
		}
	}
	return false
}

// Invert returns the patch that undoes p.
func (p Patch[T]) Invert() Patch[T] {
	inv := Patch[T]{Overwrite: p.Overwrite, Changes: make([]Change, len(p.Changes))}
	for i, c := range p.Changes {
		inv.Changes[i] = Change{Field: c.Field, From: c.To, To: c.From}
	}
	return inv
}

func (p Patch[T]) String() string {
	if p.Overwrite {
		return "overwrite[" + strings.Join(p.Fields(), ",") + "]"
	}
	return "[" + strings.Join(p.Fields(), ",") + "]"
}

// equalOpts treats nil and empty maps/slices alike and skips unexported
// fields at any depth.
var equalOpts = cmp.Options{
	cmpopts.EquateEmpty(),
	cmp.FilterPath(unexportedField, cmp.Ignore()),
}

func unexportedField(p cmp.Path) bool {
	sf, ok := p.Last().(cmp.StructField)
	return ok && !token.IsExported(sf.Name())
}

// Equal reports structural equality over exported fields, treating nil and
// empty maps/slices alike.
func Equal[T any](a, b T) bool {
	return cmp.Equal(a, b, equalOpts)
}

// Diff returns the changes needed to turn from into to. Values held by the
// patch are deep copies and do not alias either argument.
func Diff[T Cloner[T]](from, to T) Patch[T] {
	return build(from, to, false)
}

// Full returns a patch carrying every exported field of to, with the matching
// fields of from recorded as the previous values.
func Full[T Cloner[T]](from, to T) Patch[T] {
	return build(from, to, true)
}

func build[T Cloner[T]](from, to T, all bool) Patch[T] {
	fv := reflect.ValueOf(from.Clone())
	tv := reflect.ValueOf(to.Clone())
	p := Patch[T]{Overwrite: all}
	if tv.Kind() != reflect.Struct {
		if all || !Equal(fv.Interface(), tv.Interface()) {
			p.Changes = append(p.Changes, Change{From: fv.Interface(), To: tv.Interface()})
		}
		return p
	}
	typ := tv.Type()
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		a, b := fv.Field(i).Interface(), tv.Field(i).Interface()
		if !all && Equal(a, b) {
			continue
		}
		p.Changes = append(p.Changes, Change{Field: sf.Name, From: a, To: b})
	}
	return p
}

// Apply returns a deep copy of base with the patch applied. Fields absent from
// the patch keep their base values.
func Apply[T Cloner[T]](base T, p Patch[T]) (T, error) {
	out := base.Clone()
	ov := reflect.ValueOf(&out).Elem()
	for _, c := range p.Changes {
		var target reflect.Value
		if ov.Kind() == reflect.Struct {
			target = ov.FieldByName(c.Field)
		} else if c.Field == "" {
			target = ov
		}
		if !target.IsValid() || !target.CanSet() {
			return base, fmt.Errorf("apply %T: unknown field %q", base, c.Field)
		}
		if c.To == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		v := reflect.ValueOf(c.To)
		switch {
		case v.Type().AssignableTo(target.Type()):
			target.Set(v)
		case v.Type().ConvertibleTo(target.Type()):
			target.Set(v.Convert(target.Type()))
		default:
			return base, fmt.Errorf("apply %T: field %q wants %s, got %s", base, c.Field, target.Type(), v.Type())
		}
	}
	return out.Clone(), nil
}
