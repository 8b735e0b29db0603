package typeexpr

// Rule is a single humanization rule.
// Rules are evaluated top-down and the first one whose Match returns true formats the expression.
// Format receives a humanize function for rendering nested expressions.
type Rule struct {
	Name   string
	Match  func(e Expr) bool
	Format func(e Expr, humanize func(Expr) string) string
}
