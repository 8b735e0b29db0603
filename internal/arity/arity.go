package arity

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/nieomylnieja/numpydoc/pkg/typeexpr"
)

// Payload is the documentation of a value-bearing section.
// It is one of [Text], [Named] or [Auto].
type Payload interface {
	isPayload()
}

// Text documents the value as a single, unnamed block of prose.
type Text string

// Named documents each value by name, in documentation order.
type Named []Value

// Value is a single named value.
type Value struct {
	Name string
	Text string
}

// Auto requests the declared type alone, with prose taken from type hints.
type Auto struct{}

func (Text) isPayload()  {}
func (Named) isPayload() {}
func (Auto) isPayload()  {}

// Slot is a single documented value.
// Name is empty for unnamed values, Type is [typeexpr.Empty] when no type was declared.
type Slot struct {
	Name string
	Type typeexpr.Expr
	Text string
}

// MismatchError is returned when the number of documented values
// disagrees with the declared arity.
type MismatchError struct {
	Documented []string
	Declared   []typeexpr.Expr
}

func (e *MismatchError) Error() string {
	msg := "more declared types than values documented"
	if len(e.Documented) > len(e.Declared) {
		msg = "more values documented than declared types"
	}
	return fmt.Sprintf("%s: documented [%s], declared %d",
		msg, strings.Join(e.Documented, ", "), len(e.Declared))
}

// ErrAutoWithoutType is returned for an [Auto] payload when no type was declared.
var ErrAutoWithoutType = errors.New("type-only documentation requires a declared type")

// Reconcile matches the documentation payload against the declared type
// and resolves the list of slots to render.
func Reconcile(payload Payload, declared typeexpr.Expr) ([]Slot, error) {
	if declared == nil {
		declared = typeexpr.Empty{}
	}
	switch p := payload.(type) {
	case Text:
		// A multi-value tuple documented as one block is not decomposed.
		return []Slot{{Type: declared, Text: string(p)}}, nil
	case Auto:
		if typeexpr.IsEmpty(declared) {
			return nil, ErrAutoWithoutType
		}
		components := Components(declared)
		slots := make([]Slot, 0, len(components))
		for _, c := range components {
			hint, _ := typeexpr.Hint(c)
			slots = append(slots, Slot{Type: c, Text: hint})
		}
		return slots, nil
	case Named:
		return reconcileNamed(p, declared)
	default:
		return nil, errors.Errorf("unsupported payload %T", payload)
	}
}

func reconcileNamed(values Named, declared typeexpr.Expr) ([]Slot, error) {
	var types []typeexpr.Expr
	if typeexpr.IsEmpty(declared) {
		// Trust the documentation regarding the number of values.
		types = make([]typeexpr.Expr, len(values))
		for i := range types {
			types[i] = typeexpr.Empty{}
		}
	} else {
		types = Components(declared)
	}
	if len(values) != len(types) {
		names := make([]string, 0, len(values))
		for _, v := range values {
			names = append(names, v.Name)
		}
		return nil, &MismatchError{Documented: names, Declared: types}
	}
	slots := make([]Slot, 0, len(values))
	for i, v := range values {
		text := v.Text
		if text == "" {
			text, _ = typeexpr.Hint(types[i])
		}
		slots = append(slots, Slot{
			Name: strings.TrimSpace(v.Name),
			Type: types[i],
			Text: text,
		})
	}
	return slots, nil
}

// Components returns the per-value types of a declared type.
// A fixed tuple with at least one element declares one value per element,
// anything else, including a variadic tuple, declares a single value.
func Components(declared typeexpr.Expr) []typeexpr.Expr {
	if t, ok := unwrapTuple(declared); ok && len(t.Elems) > 0 {
		return t.Elems
	}
	return []typeexpr.Expr{declared}
}

// unwrapTuple looks through an annotation wrapped around a fixed tuple.
func unwrapTuple(e typeexpr.Expr) (typeexpr.FixedTuple, bool) {
	switch v := e.(type) {
	case typeexpr.FixedTuple:
		return v, true
	case typeexpr.Annotated:
		return unwrapTuple(v.Inner)
	default:
		return typeexpr.FixedTuple{}, false
	}
}
