package numpydoc

import (
	"strings"

	"github.com/nieomylnieja/numpydoc/pkg/typeexpr"
)

// Request is the declarative documentation of a callable.
// Every field is optional, empty fields are omitted from the output.
type Request struct {
	Summary         string       `json:"summary"`
	Deprecation     *Deprecation `json:"deprecation,omitempty"`
	ExtendedSummary string       `json:"extendedSummary,omitempty"`
	// Parameters are rendered in the declaration order of the [Signature].
	Parameters      Entries `json:"parameters,omitempty"`
	OtherParameters Entries `json:"otherParameters,omitempty"`
	// Attributes document the members of an enumeration-like type, see [Signature.Members].
	Attributes Entries `json:"attributes,omitempty"`
	// Returns accepts [Text], [Entries] or [Auto].
	Returns Payload `json:"returns,omitempty"`
	// Yields accepts [Text], [Entries] or [Auto] and excludes Returns.
	Yields Payload `json:"yields,omitempty"`
	// Receives accepts [Text], [Entries] or [Auto] and requires Yields.
	Receives Payload `json:"receives,omitempty"`
	// Raises maps error kinds onto the conditions raising them.
	Raises Entries `json:"raises,omitempty"`
	// Warns maps warning kinds onto the conditions emitting them.
	Warns    Entries `json:"warns,omitempty"`
	Warnings string  `json:"warnings,omitempty"`
	// SeeAlso accepts [Text], [List] or [Entries].
	// An entry with empty text has no description.
	SeeAlso Payload `json:"seeAlso,omitempty"`
	Notes   string  `json:"notes,omitempty"`
	// References maps citation identifiers onto their descriptions.
	References Entries `json:"references,omitempty"`
	Examples   string  `json:"examples,omitempty"`
}

// Deprecation marks the documented callable as deprecated.
type Deprecation struct {
	Version string `json:"version"`
	Reason  string `json:"reason"`
}

// Entries is an ordered mapping of names onto prose.
// Insertion order is preserved, both in Go and in the JSON representation.
type Entries []Entry

// Entry is a single named piece of prose.
type Entry struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Names returns the names of all entries in order.
func (e Entries) Names() []string {
	names := make([]string, 0, len(e))
	for _, entry := range e {
		names = append(names, entry.Name)
	}
	return names
}

// Payload is the content of a value-bearing section.
// It is one of [Text], [Entries], [List] or [Auto].
type Payload interface {
	isPayload()
}

// Text is a single, unnamed block of prose.
type Text string

// List is a list of names without descriptions.
type List []string

// Auto requests documentation derived from the declared type alone,
// with prose taken from the [typeexpr.Annotated] hints.
type Auto struct{}

func (Text) isPayload()    {}
func (Entries) isPayload() {}
func (List) isPayload()    {}
func (Auto) isPayload()    {}

// invalidPayload is decoded from a JSON value of an unsupported shape.
// It is kept rather than rejected during decoding so that [Compile]
// reports it in section order.
type invalidPayload struct {
	shape string
}

func (invalidPayload) isPayload() {}

// isPresent reports whether the payload should produce a section.
func isPresent(p Payload) bool {
	switch v := p.(type) {
	case nil:
		return false
	case Text:
		return strings.TrimSpace(string(v)) != ""
	case Entries:
		return len(v) > 0
	case List:
		return len(v) > 0
	default:
		return true
	}
}

// payloadName describes the payload's shape in error messages.
func payloadName(p Payload) string {
	switch v := p.(type) {
	case Text:
		return "text"
	case Entries:
		return "entries"
	case List:
		return "list"
	case Auto:
		return "auto"
	case invalidPayload:
		return v.shape
	default:
		return "unknown"
	}
}

// Kind describes how a parameter binds its arguments.
type Kind string

const (
	// KindPositional is the default kind, an empty Kind is treated the same way.
	KindPositional    Kind = "positional"
	KindVarPositional Kind = "var_positional"
	KindVarKeyword    Kind = "var_keyword"
	KindKeywordOnly   Kind = "keyword_only"
)

// Signature describes the documented callable.
// It is produced by an external introspection facility.
type Signature struct {
	// Name of the callable, used in error messages.
	Name string `json:"name"`
	// Receiver names the parameter excluded from documentation, e.g. "self".
	Receiver string `json:"receiver,omitempty"`
	// Parameters in declaration order.
	Parameters []Parameter    `json:"parameters,omitempty"`
	Return     typeexpr.Expr `json:"-"`
	// Members lists the members of an enumeration-like type in declaration order.
	// When set, the documentation lists them in the Attributes section.
	Members []Member `json:"members,omitempty"`
}

// Parameter is a single declared parameter.
type Parameter struct {
	Name       string        `json:"name"`
	Kind       Kind          `json:"kind,omitempty"`
	Type       typeexpr.Expr `json:"-"`
	HasDefault bool          `json:"hasDefault,omitempty"`
	// Default must be a scalar, nil stands for None.
	Default any `json:"-"`
}

// Member is a single member of an enumeration-like type.
type Member struct {
	Name  string `json:"name"`
	Value any    `json:"-"`
}
