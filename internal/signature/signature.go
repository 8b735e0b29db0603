package signature

import (
	"fmt"
	"strings"

	"github.com/nieomylnieja/numpydoc/pkg/typeexpr"
)

// Kind describes how a parameter binds its arguments.
type Kind int

const (
	Positional Kind = iota
	VarPositional
	VarKeyword
	KeywordOnly
)

// Param is a single declared parameter.
type Param struct {
	Name       string
	Kind       Kind
	Type       typeexpr.Expr
	HasDefault bool
	Default    any
}

// Doc is the prose documenting a single parameter.
type Doc struct {
	Name string
	Text string
}

// Input groups everything needed to reconcile parameter documentation with a signature.
type Input struct {
	// Documented goes to the Parameters section.
	Documented []Doc
	// Other goes to the Other Parameters section.
	Other []Doc
	// Params are the declared parameters in declaration order.
	Params []Param
	// Receiver names the parameter excluded from documentation, if any.
	Receiver string
	// Strict rejects documentation of parameters absent from the signature.
	Strict bool
}

// Humanizer renders declared types.
type Humanizer interface {
	Humanize(e typeexpr.Expr) string
}

// Slot is a reconciled parameter, ready to be rendered.
type Slot struct {
	Name string
	Kind Kind
	// Type is the humanized declared type, empty if no type was declared.
	Type string
	// Optional is the rendered optionality suffix, empty for required parameters.
	Optional string
	Text     string
}

// Result holds the reconciled slots of both parameter sections, in declaration order.
type Result struct {
	Parameters      []Slot
	OtherParameters []Slot
}

// MissingError is returned when a declared parameter has no documentation.
type MissingError struct {
	Name string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("parameter %s not documented", e.Name)
}

// UnknownError is returned in strict mode when documentation names a parameter
// which is not declared.
type UnknownError struct {
	Name  string
	Other bool
}

func (e *UnknownError) Error() string {
	if e.Other {
		return fmt.Sprintf("other parameter %s not found in signature", e.Name)
	}
	return fmt.Sprintf("parameter %s not found in signature", e.Name)
}

// Reconcile cross-checks documented parameters against the declared ones.
// Every declared parameter other than the receiver must be documented in either section,
// or carry an inline hint in its declared type, in which case it is documented
// in the Parameters section.
// Output follows the declaration order, never the documentation order.
func Reconcile(in Input, humanizer Humanizer) (Result, error) {
	documented := index(in.Documented)
	other := index(in.Other)

	var result Result
	for _, param := range in.Params {
		if param.Name == in.Receiver {
			continue
		}
		text, inDocumented := documented[param.Name]
		otherText, inOther := other[param.Name]
		if !inDocumented && !inOther {
			hint, ok := typeexpr.Hint(param.Type)
			if !ok {
				return Result{}, &MissingError{Name: param.Name}
			}
			text, inDocumented = hint, true
		}
		if inDocumented {
			if text == "" {
				text, _ = typeexpr.Hint(param.Type)
			}
			result.Parameters = append(result.Parameters, newSlot(param, text, humanizer))
		}
		if inOther {
			result.OtherParameters = append(result.OtherParameters, newSlot(param, otherText, humanizer))
		}
	}

	if in.Strict {
		declared := make(map[string]struct{}, len(in.Params)+1)
		for _, param := range in.Params {
			declared[param.Name] = struct{}{}
		}
		if in.Receiver != "" {
			declared[in.Receiver] = struct{}{}
		}
		if name, ok := firstUnknown(in.Documented, declared); ok {
			return Result{}, &UnknownError{Name: name}
		}
		if name, ok := firstUnknown(in.Other, declared); ok {
			return Result{}, &UnknownError{Name: name, Other: true}
		}
	}
	return result, nil
}

// Header renders the first line of a parameter entry, for instance:
//
//	axis : int or None, optional, default: 0
func (s Slot) Header() string {
	switch s.Kind {
	case VarPositional:
		return "*" + s.Name
	case VarKeyword:
		return "**" + s.Name
	}
	var details []string
	if s.Type != "" {
		details = append(details, s.Type)
	}
	if s.Optional != "" {
		details = append(details, s.Optional)
	}
	if len(details) == 0 {
		return s.Name
	}
	return s.Name + " : " + strings.Join(details, ", ")
}

func newSlot(param Param, text string, humanizer Humanizer) Slot {
	slot := Slot{
		Name: param.Name,
		Kind: param.Kind,
		Text: text,
	}
	typed := !typeexpr.IsEmpty(param.Type)
	if typed {
		slot.Type = humanizer.Humanize(param.Type)
	}
	if param.HasDefault {
		slot.Optional = optionality(param.Default, typed)
	}
	return slot
}

// optionality renders the suffix of a parameter with a default value.
// A None default is implied by "optional" and is not repeated.
func optionality(value any, typed bool) string {
	if value == nil {
		return "optional"
	}
	if typed {
		return "optional, default: " + typeexpr.Repr(value)
	}
	return "optional, default=" + typeexpr.Repr(value)
}

func index(docs []Doc) map[string]string {
	m := make(map[string]string, len(docs))
	for _, doc := range docs {
		if _, ok := m[doc.Name]; !ok {
			m[doc.Name] = doc.Text
		}
	}
	return m
}

func firstUnknown(docs []Doc, declared map[string]struct{}) (string, bool) {
	for _, doc := range docs {
		if _, ok := declared[doc.Name]; !ok {
			return doc.Name, true
		}
	}
	return "", false
}
