package numpydoc

import (
	"github.com/nobl9/govy/pkg/govy"
	"github.com/nobl9/govy/pkg/rules"
	"github.com/pkg/errors"

	"github.com/nieomylnieja/numpydoc/pkg/typeexpr"
)

var typeExprRule = govy.NewRule(typeexpr.Validate).
	WithDescription("must be a well-formed type expression")

var scalarRule = govy.NewRule(func(v any) error {
	if !typeexpr.IsScalar(v) {
		return errors.Errorf("must be a scalar, got %T", v)
	}
	return nil
}).WithDescription("must be a scalar")

// uniqueNamesRule checks that every element of a slice has a distinct name.
func uniqueNamesRule[T any](name func(T) string) govy.Rule[[]T] {
	return govy.NewRule(func(elems []T) error {
		seen := make(map[string]struct{}, len(elems))
		for _, elem := range elems {
			n := name(elem)
			if _, ok := seen[n]; ok {
				return errors.Errorf("duplicate name %q", n)
			}
			seen[n] = struct{}{}
		}
		return nil
	}).WithDescription("names must be unique")
}

var parameterValidator = govy.New(
	govy.For(func(p Parameter) string { return p.Name }).
		WithName("name").
		Required().
		Rules(rules.StringNotEmpty()),
	govy.For(func(p Parameter) Kind { return p.Kind }).
		WithName("kind").
		Rules(rules.OneOf[Kind]("", KindPositional, KindVarPositional, KindVarKeyword, KindKeywordOnly)),
	govy.For(func(p Parameter) typeexpr.Expr { return p.Type }).
		WithName("type").
		Rules(typeExprRule),
	govy.For(func(p Parameter) any { return p.Default }).
		WithName("default").
		When(func(p Parameter) bool { return p.HasDefault }).
		Rules(scalarRule),
	govy.For(func(p Parameter) Parameter { return p }).
		Rules(govy.NewRule(func(p Parameter) error {
			if !p.HasDefault && p.Default != nil {
				return errors.Errorf("parameter %s has a default value but HasDefault is false", p.Name)
			}
			variadic := p.Kind == KindVarPositional || p.Kind == KindVarKeyword
			if variadic && p.HasDefault {
				return errors.Errorf("variadic parameter %s cannot have a default value", p.Name)
			}
			return nil
		})),
).WithName("Parameter")

var memberValidator = govy.New(
	govy.For(func(m Member) string { return m.Name }).
		WithName("name").
		Required().
		Rules(rules.StringNotEmpty()),
	govy.For(func(m Member) any { return m.Value }).
		WithName("value").
		Rules(scalarRule),
).WithName("Member")

var signatureValidator = govy.New(
	govy.ForSlice(func(s Signature) []Parameter { return s.Parameters }).
		WithName("parameters").
		Rules(uniqueNamesRule(func(p Parameter) string { return p.Name })).
		IncludeForEach(parameterValidator),
	govy.For(func(s Signature) typeexpr.Expr { return s.Return }).
		WithName("return").
		Rules(typeExprRule),
	govy.ForSlice(func(s Signature) []Member { return s.Members }).
		WithName("members").
		Rules(uniqueNamesRule(func(m Member) string { return m.Name })).
		IncludeForEach(memberValidator),
).WithName("Signature")

// entriesRule requires non-empty, unique entry names.
var entriesRule = govy.NewRule(validateEntries).
	WithDescription("entry names must be non-empty and unique")

// payloadEntriesRule applies [entriesRule] to [Entries] payloads only,
// other shapes are checked by [Compile] in section order.
var payloadEntriesRule = govy.NewRule(func(p Payload) error {
	if entries, ok := p.(Entries); ok {
		return validateEntries(entries)
	}
	return nil
})

func validateEntries(entries Entries) error {
	seen := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		if entry.Name == "" {
			return errors.Errorf("entry %d has an empty name", i)
		}
		if _, ok := seen[entry.Name]; ok {
			return errors.Errorf("duplicate name %q", entry.Name)
		}
		seen[entry.Name] = struct{}{}
	}
	return nil
}

var deprecationValidator = govy.New(
	govy.For(func(d Deprecation) string { return d.Version }).
		WithName("version").
		Required().
		Rules(rules.StringNotEmpty()),
	govy.For(func(d Deprecation) string { return d.Reason }).
		WithName("reason").
		Required().
		Rules(rules.StringNotEmpty()),
).WithName("Deprecation")

var requestValidator = govy.New(
	govy.ForPointer(func(r Request) *Deprecation { return r.Deprecation }).
		WithName("deprecation").
		Include(deprecationValidator),
	govy.For(func(r Request) Entries { return r.Parameters }).
		WithName("parameters").
		Rules(entriesRule),
	govy.For(func(r Request) Entries { return r.OtherParameters }).
		WithName("otherParameters").
		Rules(entriesRule),
	govy.For(func(r Request) Entries { return r.Attributes }).
		WithName("attributes").
		Rules(entriesRule),
	govy.For(func(r Request) Entries { return r.Raises }).
		WithName("raises").
		Rules(entriesRule),
	govy.For(func(r Request) Entries { return r.Warns }).
		WithName("warns").
		Rules(entriesRule),
	govy.For(func(r Request) Entries { return r.References }).
		WithName("references").
		Rules(entriesRule),
	govy.For(func(r Request) Payload { return r.Returns }).
		WithName("returns").
		Rules(payloadEntriesRule),
	govy.For(func(r Request) Payload { return r.Yields }).
		WithName("yields").
		Rules(payloadEntriesRule),
	govy.For(func(r Request) Payload { return r.Receives }).
		WithName("receives").
		Rules(payloadEntriesRule),
	govy.For(func(r Request) Payload { return r.SeeAlso }).
		WithName("seeAlso").
		Rules(payloadEntriesRule),
).WithName("Request")

// validateInputs checks the structural invariants of both inputs.
func validateInputs(req Request, sig Signature) error {
	if err := signatureValidator.Validate(sig); err != nil {
		return newError(ErrInvalidSignature, err)
	}
	if err := requestValidator.Validate(req); err != nil {
		return newError(ErrInvalidRequest, err)
	}
	return nil
}
