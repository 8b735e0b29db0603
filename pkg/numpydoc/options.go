package numpydoc

import (
	"log/slog"

	"github.com/nieomylnieja/numpydoc/internal/paragraph"
	"github.com/nieomylnieja/numpydoc/pkg/typeexpr"
)

// compileOptions contains options for configuring the behavior of the [Compile] function.
type compileOptions struct {
	strict    bool
	lineWidth int
	indent    string
	typeRules []typeexpr.Rule
	logger    *slog.Logger
}

type CompileOption func(options compileOptions) compileOptions

// WithStrict rejects documentation of parameters which are not declared in the [Signature].
// By default such documentation is ignored, which allows sharing a superset
// of descriptions across related callables.
func WithStrict() CompileOption {
	return func(options compileOptions) compileOptions {
		options.strict = true
		return options
	}
}

// WithLineWidth sets the maximum length of a filled line, before indentation.
func WithLineWidth(width int) CompileOption {
	return func(options compileOptions) compileOptions {
		options.lineWidth = width
		return options
	}
}

// WithIndent sets the prefix of text nested under a header line.
func WithIndent(indent string) CompileOption {
	return func(options compileOptions) compileOptions {
		options.indent = indent
		return options
	}
}

// WithTypeRules registers extra humanization rules.
// They are evaluated before the built-in ones, in the order given.
func WithTypeRules(rules ...typeexpr.Rule) CompileOption {
	return func(options compileOptions) compileOptions {
		options.typeRules = append(options.typeRules, rules...)
		return options
	}
}

// WithLogger sets the logger used to report compilation progress.
// Nothing is logged by default.
func WithLogger(logger *slog.Logger) CompileOption {
	return func(options compileOptions) compileOptions {
		options.logger = logger
		return options
	}
}

func newCompileOptions(opts []CompileOption) compileOptions {
	options := compileOptions{
		lineWidth: paragraph.DefaultWidth,
		indent:    paragraph.DefaultIndent,
	}
	for _, opt := range opts {
		options = opt(options)
	}
	if options.logger == nil {
		options.logger = slog.New(slog.DiscardHandler)
	}
	return options
}
