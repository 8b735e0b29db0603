package numpydoc

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/nieomylnieja/numpydoc/internal/arity"
	"github.com/nieomylnieja/numpydoc/pkg/typeexpr"
)

var (
	// iterableOrigins can produce yields, the yielded type is their first argument.
	iterableOrigins = map[string]struct{}{
		"Generator":      {},
		"Iterator":       {},
		"Iterable":       {},
		"AsyncGenerator": {},
		"AsyncIterator":  {},
		"AsyncIterable":  {},
	}
	// generatorOrigins can receive values, the sent type is their second argument.
	generatorOrigins = map[string]struct{}{
		"Generator":      {},
		"AsyncGenerator": {},
	}
)

// isValuePayload reports whether the payload is accepted by returns, yields and receives.
func isValuePayload(p Payload) bool {
	switch p.(type) {
	case Text, Entries, Auto:
		return true
	default:
		return false
	}
}

func isSeeAlsoPayload(p Payload) bool {
	switch p.(type) {
	case Text, List, Entries:
		return true
	default:
		return false
	}
}

func checkPayload(section string, p Payload, accepts func(Payload) bool) error {
	if !isPresent(p) || accepts(p) {
		return nil
	}
	return newErrorf(ErrInvalidPayload, "%s cannot be documented with %s", section, payloadName(p))
}

// yieldType extracts the yielded component of the declared return type.
func yieldType(ret typeexpr.Expr) (typeexpr.Expr, error) {
	return iteratedArg(ret, iterableOrigins, 0, "yields")
}

// sendType extracts the sent component of the declared return type.
func sendType(ret typeexpr.Expr) (typeexpr.Expr, error) {
	return iteratedArg(ret, generatorOrigins, 1, "receives")
}

// iteratedArg returns the argument at index of a generic whose origin is one of origins.
// A missing return type, a bare origin or a missing argument yield an empty type.
func iteratedArg(
	ret typeexpr.Expr,
	origins map[string]struct{},
	index int,
	section string,
) (typeexpr.Expr, error) {
	if a, ok := ret.(typeexpr.Annotated); ok {
		ret = a.Inner
	}
	var (
		origin string
		args   []typeexpr.Expr
	)
	switch v := ret.(type) {
	case nil, typeexpr.Empty:
		return typeexpr.Empty{}, nil
	case typeexpr.Named:
		origin = v.Name
	case typeexpr.Generic:
		origin, args = v.Origin, v.Args
	default:
		return nil, newErrorf(ErrIncompatibleReturnType, "%T return type is not compatible with %s", ret, section)
	}
	if _, ok := origins[shortName(origin)]; !ok {
		return nil, newErrorf(ErrIncompatibleReturnType, "return type %s is not compatible with %s", origin, section)
	}
	if index >= len(args) {
		return typeexpr.Empty{}, nil
	}
	return args[index], nil
}

// reconcileValues resolves the slots of a returns, yields or receives section.
func reconcileValues(section string, p Payload, declared typeexpr.Expr) ([]arity.Slot, error) {
	if !isPresent(p) {
		return nil, nil
	}
	var payload arity.Payload
	switch v := p.(type) {
	case Text:
		payload = arity.Text(v)
	case Auto:
		payload = arity.Auto{}
	case Entries:
		named := make(arity.Named, 0, len(v))
		for _, entry := range v {
			named = append(named, arity.Value{Name: entry.Name, Text: entry.Text})
		}
		payload = named
	default:
		return nil, newErrorf(ErrInvalidPayload, "%s cannot be documented with %s", section, payloadName(p))
	}
	slots, err := arity.Reconcile(payload, declared)
	var mismatch *arity.MismatchError
	switch {
	case err == nil:
		return slots, nil
	case errors.As(err, &mismatch):
		return nil, newError(ErrArityMismatch, errors.Wrap(err, section))
	case errors.Is(err, arity.ErrAutoWithoutType):
		return nil, newError(ErrInvalidPayload, errors.Wrap(err, section))
	default:
		return nil, errors.Wrap(err, section)
	}
}

func shortName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
