package typeexpr

// Expr is a declared type, structured without commitment to any concrete type system.
// The set of implementations is closed, see the variants below.
// A nil Expr is equivalent to [Empty].
type Expr interface {
	isExpr()
}

// expr is embedded by every variant to close the [Expr] interface.
type expr struct{}

func (expr) isExpr() {}

// Empty marks the absence of a declared type.
type Empty struct{ expr }

// Named is an opaque, atomic type name, e.g. "int".
type Named struct {
	expr
	Name string
}

// Generic is a parameterized type, e.g. "dict[str, int]".
type Generic struct {
	expr
	Origin string
	Args   []Expr
}

// Union is a discriminated union.
// IncludesNone marks the nullable case, the null type itself is not listed in Members.
type Union struct {
	expr
	Members      []Expr
	IncludesNone bool
}

// Literal enumerates literal scalar values.
type Literal struct {
	expr
	Values []any
}

// Sequence is a homogeneous collection.
type Sequence struct {
	expr
	Elem Expr
}

// FixedTuple is a heterogeneous tuple of known arity.
type FixedTuple struct {
	expr
	Elems []Expr
}

// VariadicTuple is a homogeneous tuple of open length.
type VariadicTuple struct {
	expr
	Elem Expr
}

// Annotated wraps a type with a human-readable documentation hint.
// Hint is empty when the wrapper carries no documentation.
type Annotated struct {
	expr
	Inner Expr
	Hint  string
}

// Forward is a type referenced only by its display name.
type Forward struct {
	expr
	Name string
}

// nullTypeNames are the names under which the null type is spelled.
var nullTypeNames = map[string]struct{}{
	"None":     {},
	"NoneType": {},
}

// IsEmpty reports whether e declares no type.
func IsEmpty(e Expr) bool {
	if e == nil {
		return true
	}
	_, ok := e.(Empty)
	return ok
}

// IsNull reports whether e is the null type.
func IsNull(e Expr) bool {
	switch v := e.(type) {
	case Named:
		_, ok := nullTypeNames[v.Name]
		return ok
	case Forward:
		_, ok := nullTypeNames[v.Name]
		return ok
	default:
		return false
	}
}

// NewNamed creates a [Named] type.
func NewNamed(name string) Named {
	return Named{Name: name}
}

// NewGeneric creates a [Generic] type.
func NewGeneric(origin string, args ...Expr) Generic {
	return Generic{Origin: origin, Args: args}
}

// NewUnion creates a [Union] out of members.
// Null type members are dropped and recorded with [Union.IncludesNone] instead,
// so both int | None and Optional[int] spellings produce the same value.
// Nested unions are flattened.
// The position of a null member is not kept: Union[int, None, str]
// is rendered as "int or str or None".
func NewUnion(members ...Expr) Union {
	u := Union{Members: make([]Expr, 0, len(members))}
	for _, m := range members {
		switch v := m.(type) {
		case Union:
			u.Members = append(u.Members, v.Members...)
			u.IncludesNone = u.IncludesNone || v.IncludesNone
		default:
			if IsNull(m) {
				u.IncludesNone = true
				continue
			}
			u.Members = append(u.Members, m)
		}
	}
	return u
}

// NewOptional is a shorthand for a nullable union of a single member.
func NewOptional(e Expr) Union {
	return NewUnion(e, Named{Name: "None"})
}

// NewLiteral creates a [Literal] type.
func NewLiteral(values ...any) Literal {
	return Literal{Values: values}
}

// NewSequence creates a [Sequence] type.
func NewSequence(elem Expr) Sequence {
	return Sequence{Elem: elem}
}

// NewTuple creates a [FixedTuple] type.
func NewTuple(elems ...Expr) FixedTuple {
	return FixedTuple{Elems: elems}
}

// NewVariadicTuple creates a [VariadicTuple] type.
func NewVariadicTuple(elem Expr) VariadicTuple {
	return VariadicTuple{Elem: elem}
}

// NewAnnotated creates an [Annotated] type.
func NewAnnotated(inner Expr, hint string) Annotated {
	return Annotated{Inner: inner, Hint: hint}
}

// NewForward creates a [Forward] type.
func NewForward(name string) Forward {
	return Forward{Name: name}
}

// Hint returns the documentation hint attached to e.
// It looks through a nullable union with a single member,
// so Optional[Annotated[int, "doc"]] yields "doc".
func Hint(e Expr) (string, bool) {
	switch v := e.(type) {
	case Annotated:
		if v.Hint != "" {
			return v.Hint, true
		}
		return Hint(v.Inner)
	case Union:
		if len(v.Members) == 1 {
			return Hint(v.Members[0])
		}
	}
	return "", false
}
