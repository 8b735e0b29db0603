package paragraph

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/dedent"
)

const (
	// DefaultWidth is the maximum length of a filled line, before indentation.
	DefaultWidth = 79
	// DefaultIndent prefixes text nested under a header line.
	DefaultIndent = "    "
)

// terminalPunctuation lists the characters which may end a sentence.
const terminalPunctuation = ".!?:"

// verbatimPrefixes mark paragraphs which are copied as-is:
// indented literal blocks, directives and math (..), block quotes and doctest prompts (>),
// and citations ([).
var verbatimPrefixes = []string{" ", "\t", "..", ">", "["}

var blankLinesRegex = regexp.MustCompile(`\n\s*\n`)

// Formatter normalizes and fills prose.
type Formatter struct {
	Width  int
	Indent string
}

// New creates a [Formatter], falling back to defaults for zero values.
func New(width int, indent string) Formatter {
	if width <= 0 {
		width = DefaultWidth
	}
	if indent == "" {
		indent = DefaultIndent
	}
	return Formatter{Width: width, Indent: indent}
}

// Paragraph formats raw as a single paragraph.
// The text is dedented, capitalized, punctuated and filled,
// line breaks of the input are not preserved.
func (f Formatter) Paragraph(raw string) string {
	return f.fill(Punctuate(dedent.Dedent(strings.Trim(raw, "\n"))))
}

// Block formats raw as a sequence of paragraphs separated by blank lines.
// Paragraphs starting with one of the verbatim markers are preserved as-is,
// others are formatted with [Formatter.Paragraph] rules.
func (f Formatter) Block(raw string) string {
	prep := dedent.Dedent(strings.Trim(raw, "\n"))
	paragraphs := blankLinesRegex.Split(prep, -1)
	formatted := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if IsVerbatim(p) {
			formatted = append(formatted, strings.TrimRight(p, "\n"))
			continue
		}
		formatted = append(formatted, f.fill(Punctuate(p)))
	}
	return strings.Join(formatted, "\n\n")
}

// IndentedParagraph is [Formatter.Paragraph] with every line prefixed by the indent.
func (f Formatter) IndentedParagraph(raw string) string {
	return Indent(f.Paragraph(raw), f.Indent)
}

// IndentedBlock is [Formatter.Block] with every line prefixed by the indent.
func (f Formatter) IndentedBlock(raw string) string {
	return Indent(f.Block(raw), f.Indent)
}

// IsVerbatim reports whether the paragraph must be copied without filling.
func IsVerbatim(p string) bool {
	for _, prefix := range verbatimPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// Punctuate trims s, capitalizes its first letter and makes sure it ends with punctuation.
func Punctuate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToTitle(first)) + s[size:]
	last, _ := utf8.DecodeLastRuneInString(s)
	if !strings.ContainsRune(terminalPunctuation, last) {
		s += "."
	}
	return s
}

// Indent prefixes every line which is not blank.
func Indent(text, prefix string) string {
	if text == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func (f Formatter) fill(text string) string {
	return strings.Join(Wrap(text, f.Width), "\n")
}
