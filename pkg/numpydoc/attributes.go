package numpydoc

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/nieomylnieja/numpydoc/pkg/typeexpr"
)

type attributeSlot struct {
	header string
	text   string
}

// splitAttributes decides which documentation goes to the Parameters section
// and which to the Attributes section.
// An enumeration-like type documented with parameters only has them used as attributes.
func splitAttributes(req Request, sig Signature, logger *slog.Logger) (params, attrs Entries) {
	params, attrs = req.Parameters, req.Attributes
	if len(sig.Members) > 0 && len(attrs) == 0 && len(params) > 0 {
		logger.Warn("for enumeration-like types, use attributes rather than parameters",
			slog.String("name", sig.Name))
		return nil, params
	}
	return params, attrs
}

// reconcileAttributes resolves the Attributes section.
// Members of an enumeration-like type are listed in declaration order,
// whether documented or not.
func reconcileAttributes(req Request, sig Signature, attrs Entries) ([]attributeSlot, error) {
	if len(sig.Members) == 0 {
		slots := make([]attributeSlot, 0, len(attrs))
		for _, attr := range attrs {
			slots = append(slots, attributeSlot{header: attr.Name, text: attr.Text})
		}
		return slots, nil
	}
	if len(req.Parameters) > 0 && len(req.Attributes) > 0 {
		return nil, newErrorf(ErrConflictingParametersAttributes,
			"%s is enumeration-like and must be documented with attributes", displayName(sig))
	}

	members := make(map[string]struct{}, len(sig.Members))
	for _, m := range sig.Members {
		members[m.Name] = struct{}{}
	}
	var unknown []string
	for _, attr := range attrs {
		if _, ok := members[attr.Name]; !ok {
			unknown = append(unknown, attr.Name)
		}
	}
	if len(unknown) > 0 {
		return nil, newErrorf(ErrUnknownAttributeDoc,
			"attributes to document for %s aren't members: %s", displayName(sig), strings.Join(unknown, ", "))
	}

	docs := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		docs[attr.Name] = attr.Text
	}
	slots := make([]attributeSlot, 0, len(sig.Members))
	for _, m := range sig.Members {
		slots = append(slots, attributeSlot{
			header: m.Name + " = " + memberRepr(m.Value),
			text:   docs[m.Name],
		})
	}
	return slots, nil
}

// memberRepr renders string values double-quoted, as they appear in source.
func memberRepr(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return typeexpr.Repr(v)
}

func displayName(sig Signature) string {
	if sig.Name == "" {
		return "type"
	}
	return sig.Name
}
