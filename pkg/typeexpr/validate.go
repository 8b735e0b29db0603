package typeexpr

import (
	"github.com/pkg/errors"
)

// Validate checks that e is well-formed and can be humanized.
// Callers are expected to run it before handing expressions over for rendering.
func Validate(e Expr) error {
	switch v := e.(type) {
	case nil, Empty:
		return nil
	case Named:
		if v.Name == "" {
			return errors.New("named type must have a name")
		}
	case Forward:
		if v.Name == "" {
			return errors.New("forward reference must have a name")
		}
	case Generic:
		if v.Origin == "" {
			return errors.New("generic type must have an origin")
		}
		for i, arg := range v.Args {
			if err := validateComponent(arg); err != nil {
				return errors.Wrapf(err, "generic %s argument %d", v.Origin, i)
			}
		}
	case Union:
		if len(v.Members) == 0 && !v.IncludesNone {
			return errors.New("union must have at least one member")
		}
		for i, m := range v.Members {
			if err := validateComponent(m); err != nil {
				return errors.Wrapf(err, "union member %d", i)
			}
		}
	case Literal:
		for i, value := range v.Values {
			if !IsScalar(value) {
				return errors.Errorf("literal value %d must be a scalar, got %T", i, value)
			}
		}
	case Sequence:
		return errors.Wrap(validateComponent(v.Elem), "sequence element")
	case VariadicTuple:
		return errors.Wrap(validateComponent(v.Elem), "variadic tuple element")
	case FixedTuple:
		for i, el := range v.Elems {
			if err := validateComponent(el); err != nil {
				return errors.Wrapf(err, "tuple element %d", i)
			}
		}
	case Annotated:
		return errors.Wrap(validateComponent(v.Inner), "annotated type")
	default:
		return errors.Errorf("unsupported type expression %T", e)
	}
	return nil
}

// validateComponent validates a nested expression which, unlike the root, must be declared.
func validateComponent(e Expr) error {
	if IsEmpty(e) {
		return errors.New("type must be declared")
	}
	return Validate(e)
}

// IsScalar reports whether v can be rendered with [Repr] as a literal or default value.
func IsScalar(v any) bool {
	switch v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}
