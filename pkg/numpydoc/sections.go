package numpydoc

import (
	"strings"
	"unicode/utf8"

	"github.com/nieomylnieja/numpydoc/internal/arity"
	"github.com/nieomylnieja/numpydoc/internal/paragraph"
	"github.com/nieomylnieja/numpydoc/internal/signature"
	"github.com/nieomylnieja/numpydoc/pkg/typeexpr"
)

// seeAlsoInlineLimit is the description length below which
// a See Also entry fits on the same line as its name.
const seeAlsoInlineLimit = 70

type section struct {
	title string
	body  string
}

func (s section) String() string {
	return s.title + "\n" + strings.Repeat("-", utf8.RuneCountInString(s.title)) + "\n" + s.body
}

func (c compiler) render(req Request, plan compilePlan) string {
	var parts []string
	if strings.TrimSpace(req.Summary) != "" {
		parts = append(parts, c.formatter.Paragraph(req.Summary))
	}
	if req.Deprecation != nil {
		parts = append(parts, ".. deprecated:: "+strings.TrimSpace(req.Deprecation.Version)+"\n"+
			c.formatter.IndentedParagraph(req.Deprecation.Reason))
	}
	if strings.TrimSpace(req.ExtendedSummary) != "" {
		parts = append(parts, c.formatter.Block(req.ExtendedSummary))
	}

	for _, s := range []section{
		{"Parameters", c.renderParameters(plan.parameters.Parameters)},
		{"Attributes", c.renderAttributes(plan.attributes)},
		{"Returns", c.renderValues(plan.returns)},
		{"Yields", c.renderValues(plan.yields)},
		{"Receives", c.renderValues(plan.receives)},
		{"Other Parameters", c.renderParameters(plan.parameters.OtherParameters)},
		{"Raises", c.renderEntries(req.Raises)},
		{"Warns", c.renderEntries(req.Warns)},
		{"Warnings", c.formatter.Block(req.Warnings)},
		{"See Also", c.renderSeeAlso(req.SeeAlso)},
		{"Notes", c.formatter.Block(req.Notes)},
		{"References", c.renderReferences(req.References)},
		{"Examples", c.formatter.Block(req.Examples)},
	} {
		if s.body == "" {
			c.logger.Debug("skipping empty section", "section", s.title)
			continue
		}
		c.logger.Debug("rendering section", "section", s.title)
		parts = append(parts, s.String())
	}

	return postProcessText(strings.Join(parts, "\n\n"),
		removeTrailingWhitespace,
		removeCommonIndentation,
		trimBlankEdges,
	)
}

func (c compiler) renderParameters(slots []signature.Slot) string {
	lines := make([]string, 0, len(slots))
	for _, slot := range slots {
		lines = append(lines, c.nested(slot.Header(), slot.Text))
	}
	return strings.Join(lines, "\n")
}

func (c compiler) renderAttributes(slots []attributeSlot) string {
	lines := make([]string, 0, len(slots))
	for _, slot := range slots {
		lines = append(lines, c.nested(slot.header, slot.text))
	}
	return strings.Join(lines, "\n")
}

// renderValues renders returns, yields and receives.
// An unnamed value without a type is a plain block of prose,
// otherwise the prose is nested under a header naming the value and its type.
func (c compiler) renderValues(slots []arity.Slot) string {
	lines := make([]string, 0, len(slots))
	for _, slot := range slots {
		typ := ""
		if !typeexpr.IsEmpty(slot.Type) {
			typ = c.humanizer.Humanize(slot.Type)
		}
		var header string
		switch {
		case slot.Name == "" && typ == "":
			lines = append(lines, c.formatter.Block(slot.Text))
			continue
		case slot.Name == "":
			header = typ
		case typ == "":
			header = slot.Name
		default:
			header = slot.Name + " : " + typ
		}
		lines = append(lines, c.nested(header, slot.Text))
	}
	return strings.Join(lines, "\n")
}

// renderEntries renders raises and warns.
func (c compiler) renderEntries(entries Entries) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, c.nested(strings.TrimSpace(entry.Name), entry.Text))
	}
	return strings.Join(lines, "\n")
}

func (c compiler) renderSeeAlso(p Payload) string {
	var lines []string
	switch v := p.(type) {
	case Text:
		lines = append(lines, strings.TrimSpace(string(v)))
	case List:
		for _, name := range v {
			lines = append(lines, strings.TrimSpace(name))
		}
	case Entries:
		for _, entry := range v {
			name := strings.TrimSpace(entry.Name)
			switch {
			case strings.TrimSpace(entry.Text) == "":
				lines = append(lines, name)
			case utf8.RuneCountInString(entry.Text) < seeAlsoInlineLimit:
				lines = append(lines, name+" : "+paragraph.Punctuate(entry.Text))
			default:
				lines = append(lines, name+" :\n"+c.formatter.IndentedParagraph(entry.Text))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (c compiler) renderReferences(references Entries) string {
	lines := make([]string, 0, len(references))
	for _, ref := range references {
		desc := strings.TrimSpace(c.formatter.IndentedParagraph(ref.Text))
		lines = append(lines, ".. ["+ref.Name+"] "+desc)
	}
	return strings.Join(lines, "\n")
}

// nested renders a header line with the prose indented beneath it.
func (c compiler) nested(header, text string) string {
	body := c.formatter.IndentedBlock(text)
	if body == "" {
		return header
	}
	return header + "\n" + body
}
