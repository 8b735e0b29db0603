package typeinfo

import (
	"fmt"
	"strings"

	"github.com/nieomylnieja/numpydoc/pkg/typeexpr"
)

// Humanizer renders [typeexpr.Expr] as documentation prose.
// It is stateless once constructed and safe for concurrent use.
type Humanizer struct {
	rules []typeexpr.Rule
}

// New creates a [Humanizer].
// The extra rules take precedence over the built-in ones.
func New(extra ...typeexpr.Rule) *Humanizer {
	rules := make([]typeexpr.Rule, 0, len(extra)+len(defaultRules))
	rules = append(rules, extra...)
	rules = append(rules, defaultRules...)
	return &Humanizer{rules: rules}
}

// Humanize returns the human-readable form of the type.
// For instance, instead of having:
//
//	Union[List[int], None]
//
// It will produce:
//
//	list of int or None
//
// Empty type renders as an empty string, callers are expected to branch around it.
// The expression must have passed [typeexpr.Validate].
func (h *Humanizer) Humanize(e typeexpr.Expr) string {
	if e == nil {
		e = typeexpr.Empty{}
	}
	for _, rule := range h.rules {
		if rule.Match(e) {
			return rule.Format(e, h.Humanize)
		}
	}
	panic(fmt.Sprintf("no humanization rule matches %T", e))
}

var (
	arrayLikeNames = map[string]struct{}{"ArrayLike": {}}
	dtypeLikeNames = map[string]struct{}{"DTypeLike": {}}
	listLikeNames  = map[string]struct{}{
		"list":      {},
		"List":      {},
		"set":       {},
		"Set":       {},
		"frozenset": {},
		"FrozenSet": {},
		"Sequence":  {},
	}
	// typingAliases maps capitalized generic aliases onto their builtin names.
	typingAliases = map[string]string{
		"Dict":        "dict",
		"List":        "list",
		"Set":         "set",
		"FrozenSet":   "frozenset",
		"Tuple":       "tuple",
		"Type":        "type",
		"DefaultDict": "defaultdict",
		"Deque":       "deque",
	}
)

var defaultRules = []typeexpr.Rule{
	{
		Name:  "annotated",
		Match: is[typeexpr.Annotated],
		Format: func(e typeexpr.Expr, humanize func(typeexpr.Expr) string) string {
			return humanize(e.(typeexpr.Annotated).Inner)
		},
	},
	{
		Name:   "union",
		Match:  is[typeexpr.Union],
		Format: formatUnion,
	},
	{
		Name:  "literal",
		Match: is[typeexpr.Literal],
		Format: func(e typeexpr.Expr, _ func(typeexpr.Expr) string) string {
			values := e.(typeexpr.Literal).Values
			reprs := make([]string, 0, len(values))
			for _, v := range values {
				reprs = append(reprs, typeexpr.Repr(v))
			}
			return "{" + strings.Join(reprs, ", ") + "}"
		},
	},
	{
		Name:  "sequence",
		Match: is[typeexpr.Sequence],
		Format: func(e typeexpr.Expr, humanize func(typeexpr.Expr) string) string {
			return "sequence of " + humanize(e.(typeexpr.Sequence).Elem)
		},
	},
	{
		Name:  "variadic tuple",
		Match: is[typeexpr.VariadicTuple],
		Format: func(e typeexpr.Expr, humanize func(typeexpr.Expr) string) string {
			return "tuple of " + humanize(e.(typeexpr.VariadicTuple).Elem)
		},
	},
	{
		// Arity of a fixed tuple is meaningful to the reconciler, not to prose.
		Name:  "fixed tuple",
		Match: is[typeexpr.FixedTuple],
		Format: func(e typeexpr.Expr, humanize func(typeexpr.Expr) string) string {
			elems := e.(typeexpr.FixedTuple).Elems
			if len(elems) == 0 {
				return "tuple[()]"
			}
			return "tuple[" + joinHumanized(elems, ", ", humanize) + "]"
		},
	},
	{
		Name:  "array-like",
		Match: nameIn(arrayLikeNames),
		Format: func(typeexpr.Expr, func(typeexpr.Expr) string) string {
			return "array_like"
		},
	},
	{
		Name:  "dtype-like",
		Match: nameIn(dtypeLikeNames),
		Format: func(typeexpr.Expr, func(typeexpr.Expr) string) string {
			return "data-type"
		},
	},
	{
		Name: "list-like generic",
		Match: func(e typeexpr.Expr) bool {
			g, ok := e.(typeexpr.Generic)
			return ok && len(g.Args) > 0 && nameIn(listLikeNames)(e)
		},
		Format: func(e typeexpr.Expr, humanize func(typeexpr.Expr) string) string {
			g := e.(typeexpr.Generic)
			return strings.ToLower(shortName(g.Origin)) + " of " + humanize(g.Args[0])
		},
	},
	{
		Name:  "generic",
		Match: is[typeexpr.Generic],
		Format: func(e typeexpr.Expr, humanize func(typeexpr.Expr) string) string {
			g := e.(typeexpr.Generic)
			origin := strings.TrimPrefix(g.Origin, "typing.")
			if alias, ok := typingAliases[origin]; ok {
				origin = alias
			}
			if len(g.Args) == 0 {
				return origin
			}
			return origin + "[" + joinHumanized(g.Args, ", ", humanize) + "]"
		},
	},
	{
		Name:  "null",
		Match: typeexpr.IsNull,
		Format: func(typeexpr.Expr, func(typeexpr.Expr) string) string {
			return "None"
		},
	},
	{
		Name:  "named",
		Match: is[typeexpr.Named],
		Format: func(e typeexpr.Expr, _ func(typeexpr.Expr) string) string {
			return e.(typeexpr.Named).Name
		},
	},
	{
		Name:  "forward",
		Match: is[typeexpr.Forward],
		Format: func(e typeexpr.Expr, _ func(typeexpr.Expr) string) string {
			return e.(typeexpr.Forward).Name
		},
	},
	{
		Name:  "empty",
		Match: typeexpr.IsEmpty,
		Format: func(typeexpr.Expr, func(typeexpr.Expr) string) string {
			return ""
		},
	},
}

// formatUnion joins the members with " or " in declaration order.
// Members are normalized first, so a null type listed among them
// is moved to the trailing " or None".
func formatUnion(e typeexpr.Expr, humanize func(typeexpr.Expr) string) string {
	u := e.(typeexpr.Union)
	normalized := typeexpr.NewUnion(u.Members...)
	includesNone := u.IncludesNone || normalized.IncludesNone
	if len(normalized.Members) == 0 {
		if !includesNone {
			panic("union with no members")
		}
		return "None"
	}
	s := joinHumanized(normalized.Members, " or ", humanize)
	if includesNone {
		s += " or None"
	}
	return s
}

func joinHumanized(exprs []typeexpr.Expr, sep string, humanize func(typeexpr.Expr) string) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, humanize(e))
	}
	return strings.Join(parts, sep)
}

func is[T typeexpr.Expr](e typeexpr.Expr) bool {
	_, ok := e.(T)
	return ok
}

// nameIn matches named, forward and generic types whose unqualified name is in the set.
func nameIn(names map[string]struct{}) func(typeexpr.Expr) bool {
	return func(e typeexpr.Expr) bool {
		var name string
		switch v := e.(type) {
		case typeexpr.Named:
			name = v.Name
		case typeexpr.Forward:
			name = v.Name
		case typeexpr.Generic:
			name = v.Origin
		default:
			return false
		}
		_, ok := names[shortName(name)]
		return ok
	}
}

// shortName strips the package qualifier, "numpy.typing.ArrayLike" becomes "ArrayLike".
func shortName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
