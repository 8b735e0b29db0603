package typeexpr

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// Wire kinds of the JSON representation.
const (
	kindNamed     = "named"
	kindGeneric   = "generic"
	kindUnion     = "union"
	kindLiteral   = "literal"
	kindSequence  = "sequence"
	kindTuple     = "tuple"
	kindVariadic  = "variadic"
	kindAnnotated = "annotated"
	kindForward   = "forward"
)

type wireExpr struct {
	Kind    string            `json:"kind"`
	Name    string            `json:"name"`
	Origin  string            `json:"origin"`
	Args    []json.RawMessage `json:"args"`
	Members []json.RawMessage `json:"members"`
	None    bool              `json:"none"`
	Values  []json.RawMessage `json:"values"`
	Elem    json.RawMessage   `json:"elem"`
	Elems   []json.RawMessage `json:"elems"`
	Inner   json.RawMessage   `json:"inner"`
	Hint    string            `json:"hint"`
}

// Decode reads an [Expr] from its JSON representation:
//
//	null                                        -> Empty
//	"int"                                       -> Named
//	{"kind": "generic", "origin": "dict", "args": ["str", "int"]}
//	{"kind": "union", "members": ["int", "NoneType"]}
//	{"kind": "literal", "values": ["a", 1]}
//	{"kind": "sequence", "elem": "str"}
//	{"kind": "tuple", "elems": ["str", "int"]}
//	{"kind": "variadic", "elem": "float"}
//	{"kind": "annotated", "inner": "int", "hint": "The answer."}
//	{"kind": "forward", "name": "Thing"}
func Decode(data []byte) (Expr, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Empty{}, nil
	}
	if data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return nil, errors.Wrap(err, "failed to decode type name")
		}
		return Named{Name: name}, nil
	}
	var w wireExpr
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(err, "failed to decode type expression")
	}
	switch w.Kind {
	case kindNamed:
		return Named{Name: w.Name}, nil
	case kindForward:
		return Forward{Name: w.Name}, nil
	case kindGeneric:
		args, err := decodeList(w.Args)
		if err != nil {
			return nil, errors.Wrapf(err, "generic %s", w.Origin)
		}
		return Generic{Origin: w.Origin, Args: args}, nil
	case kindUnion:
		members, err := decodeList(w.Members)
		if err != nil {
			return nil, errors.Wrap(err, "union")
		}
		u := NewUnion(members...)
		u.IncludesNone = u.IncludesNone || w.None
		return u, nil
	case kindLiteral:
		values := make([]any, 0, len(w.Values))
		for _, raw := range w.Values {
			v, err := DecodeValue(raw)
			if err != nil {
				return nil, errors.Wrap(err, "literal")
			}
			values = append(values, v)
		}
		return Literal{Values: values}, nil
	case kindSequence:
		elem, err := Decode(w.Elem)
		if err != nil {
			return nil, errors.Wrap(err, "sequence")
		}
		return Sequence{Elem: elem}, nil
	case kindVariadic:
		elem, err := Decode(w.Elem)
		if err != nil {
			return nil, errors.Wrap(err, "variadic tuple")
		}
		return VariadicTuple{Elem: elem}, nil
	case kindTuple:
		elems, err := decodeList(w.Elems)
		if err != nil {
			return nil, errors.Wrap(err, "tuple")
		}
		return FixedTuple{Elems: elems}, nil
	case kindAnnotated:
		inner, err := Decode(w.Inner)
		if err != nil {
			return nil, errors.Wrap(err, "annotated")
		}
		return Annotated{Inner: inner, Hint: w.Hint}, nil
	default:
		return nil, errors.Errorf("unknown type expression kind %q", w.Kind)
	}
}

func decodeList(raws []json.RawMessage) ([]Expr, error) {
	exprs := make([]Expr, 0, len(raws))
	for _, raw := range raws {
		e, err := Decode(raw)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

// DecodeValue reads a scalar value from JSON.
// Integral numbers become int64, other numbers float64.
func DecodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(err, "failed to decode value")
	}
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, errors.Wrapf(err, "invalid number %s", x)
		}
		return f, nil
	case nil, bool, string:
		return x, nil
	default:
		return nil, errors.Errorf("value must be a scalar, got %T", v)
	}
}
