package numpydoc

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/nieomylnieja/numpydoc/internal/arity"
	"github.com/nieomylnieja/numpydoc/internal/paragraph"
	"github.com/nieomylnieja/numpydoc/internal/signature"
	"github.com/nieomylnieja/numpydoc/internal/typeinfo"
)

// Compile renders the documentation of a callable in the numpydoc format,
// validating it against the callable's [Signature].
//
// Compilation fails on the first violation found, in the following order:
// invalid inputs, conflicting sections, invalid payloads, parameters,
// attributes, and finally the returned, yielded and received values.
// It has no side effects other than logging and is safe for concurrent use.
func Compile(req Request, sig Signature, opts ...CompileOption) (string, error) {
	c := newCompiler(opts)
	plan, err := c.check(req, sig)
	if err != nil {
		return "", err
	}
	return c.render(req, plan), nil
}

// Check runs every validation performed by [Compile] without rendering the documentation.
func Check(req Request, sig Signature, opts ...CompileOption) error {
	_, err := newCompiler(opts).check(req, sig)
	return err
}

type compiler struct {
	strict    bool
	humanizer *typeinfo.Humanizer
	formatter paragraph.Formatter
	logger    *slog.Logger
}

func newCompiler(opts []CompileOption) compiler {
	options := newCompileOptions(opts)
	return compiler{
		strict:    options.strict,
		humanizer: typeinfo.New(options.typeRules...),
		formatter: paragraph.New(options.lineWidth, options.indent),
		logger:    options.logger,
	}
}

// compilePlan holds everything resolved while checking the inputs.
// Rendering a plan cannot fail.
type compilePlan struct {
	parameters signature.Result
	attributes []attributeSlot
	returns    []arity.Slot
	yields     []arity.Slot
	receives   []arity.Slot
}

func (c compiler) check(req Request, sig Signature) (compilePlan, error) {
	if err := validateInputs(req, sig); err != nil {
		return compilePlan{}, err
	}

	if isPresent(req.Returns) && isPresent(req.Yields) {
		return compilePlan{}, ErrConflictingReturnYield
	}
	if isPresent(req.Receives) && !isPresent(req.Yields) {
		return compilePlan{}, ErrReceivesWithoutYields
	}

	for _, payload := range []struct {
		section string
		value   Payload
		accepts func(Payload) bool
	}{
		{"returns", req.Returns, isValuePayload},
		{"yields", req.Yields, isValuePayload},
		{"receives", req.Receives, isValuePayload},
		{"see also", req.SeeAlso, isSeeAlsoPayload},
	} {
		if err := checkPayload(payload.section, payload.value, payload.accepts); err != nil {
			return compilePlan{}, err
		}
	}

	var (
		plan compilePlan
		err  error
	)
	paramDocs, attrDocs := splitAttributes(req, sig, c.logger)
	plan.parameters, err = c.reconcileParameters(paramDocs, req.OtherParameters, sig)
	if err != nil {
		return compilePlan{}, err
	}
	plan.attributes, err = reconcileAttributes(req, sig, attrDocs)
	if err != nil {
		return compilePlan{}, err
	}

	yielded, sent := sig.Return, sig.Return
	if isPresent(req.Yields) {
		if yielded, err = yieldType(sig.Return); err != nil {
			return compilePlan{}, err
		}
	}
	if isPresent(req.Receives) {
		if sent, err = sendType(sig.Return); err != nil {
			return compilePlan{}, err
		}
	}
	if plan.returns, err = reconcileValues("returns", req.Returns, sig.Return); err != nil {
		return compilePlan{}, err
	}
	if plan.yields, err = reconcileValues("yields", req.Yields, yielded); err != nil {
		return compilePlan{}, err
	}
	if plan.receives, err = reconcileValues("receives", req.Receives, sent); err != nil {
		return compilePlan{}, err
	}
	return plan, nil
}

func (c compiler) reconcileParameters(documented, other Entries, sig Signature) (signature.Result, error) {
	params := make([]signature.Param, 0, len(sig.Parameters))
	for _, p := range sig.Parameters {
		params = append(params, signature.Param{
			Name:       p.Name,
			Kind:       signatureKind(p.Kind),
			Type:       p.Type,
			HasDefault: p.HasDefault,
			Default:    p.Default,
		})
	}
	result, err := signature.Reconcile(signature.Input{
		Documented: signatureDocs(documented),
		Other:      signatureDocs(other),
		Params:     params,
		Receiver:   sig.Receiver,
		Strict:     c.strict,
	}, c.humanizer)

	var (
		missing *signature.MissingError
		unknown *signature.UnknownError
	)
	switch {
	case err == nil:
		return result, nil
	case errors.As(err, &missing):
		return signature.Result{}, newError(ErrMissingParameterDoc, err)
	case errors.As(err, &unknown):
		return signature.Result{}, newError(ErrUnknownParameterDoc, err)
	default:
		return signature.Result{}, err
	}
}

func signatureKind(kind Kind) signature.Kind {
	switch kind {
	case KindVarPositional:
		return signature.VarPositional
	case KindVarKeyword:
		return signature.VarKeyword
	case KindKeywordOnly:
		return signature.KeywordOnly
	default:
		return signature.Positional
	}
}

func signatureDocs(entries Entries) []signature.Doc {
	docs := make([]signature.Doc, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, signature.Doc{Name: e.Name, Text: e.Text})
	}
	return docs
}
