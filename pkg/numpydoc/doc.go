// Package numpydoc compiles declarative documentation of a callable
// into numpydoc formatted text.
//
// It combines two sources of information:
//  1. A [Request] with the prose: summary, parameters, returned values, raised errors and so on.
//  2. A [Signature] describing the callable: its parameters and declared types.
//
// The documentation is validated against the signature before anything is rendered.
// Every declared parameter must be documented, the number of documented return values
// must match the arity of the declared return type, and sections which cannot
// appear together are rejected.
//
// # Basic Usage
//
// Given a signature produced by an introspection facility:
//
//	sig := numpydoc.Signature{
//	    Name: "greet",
//	    Parameters: []numpydoc.Parameter{
//	        {Name: "name", Type: typeexpr.NewNamed("str")},
//	        {Name: "language", Type: typeexpr.NewNamed("str"), HasDefault: true, Default: "en"},
//	    },
//	    Return: typeexpr.NewNamed("str"),
//	}
//
// Compile the documentation:
//
//	text, err := numpydoc.Compile(numpydoc.Request{
//	    Summary: "Say hello to someone.",
//	    Parameters: numpydoc.Entries{
//	        {Name: "name", Text: "The name of the person to greet."},
//	        {Name: "language", Text: "The language in which to greet as an ISO 639-1 code."},
//	    },
//	    Returns: numpydoc.Text("A pleasant greeting."),
//	}, sig)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The resulting text:
//
//	Say hello to someone.
//
//	Parameters
//	----------
//	name : str
//	    The name of the person to greet.
//	language : str, optional, default: 'en'
//	    The language in which to greet as an ISO 639-1 code.
//
//	Returns
//	-------
//	str
//	    A pleasant greeting.
//
// # Configuration Options
//
// Use CompileOption functions to customize behavior:
//
//	text, err := numpydoc.Compile(req, sig,
//	    numpydoc.WithStrict(),
//	    numpydoc.WithLineWidth(72),
//	    numpydoc.WithLogger(slog.Default()),
//	)
//
// WithStrict rejects documentation of undeclared parameters.
// WithLineWidth and WithIndent control filling of the prose.
// WithTypeRules extends the rendering of declared types.
//
// # Errors
//
// All failures wrap one of the exported sentinel errors, e.g. [ErrMissingParameterDoc]
// or [ErrArityMismatch], and can be matched with errors.Is.
//
// # JSON
//
// [Request] and [Signature] can be decoded from JSON, which lets introspection
// facilities written in other languages feed the compiler.
// Ordered mappings such as parameters are JSON objects and keep their key order.
package numpydoc
