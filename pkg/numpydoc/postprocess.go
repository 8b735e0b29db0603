package numpydoc

import (
	"regexp"
	"strings"

	"github.com/lithammer/dedent"
)

// textPostProcessor is a function type that post-processes the assembled documentation.
type textPostProcessor func(text string) string

func postProcessText(text string, processors ...textPostProcessor) string {
	for _, processor := range processors {
		text = processor(text)
	}
	return text
}

var trailingWhitespaceRegex = regexp.MustCompile(`(?m)[ \t]+$`)

// removeTrailingWhitespace removes whitespace from the end of every line.
func removeTrailingWhitespace(text string) string {
	return trailingWhitespaceRegex.ReplaceAllString(text, "")
}

// removeCommonIndentation removes indentation shared by all lines.
func removeCommonIndentation(text string) string {
	return dedent.Dedent(text)
}

// trimBlankEdges removes blank lines surrounding the text and terminates it with a single newline.
func trimBlankEdges(text string) string {
	text = strings.Trim(text, "\n")
	if text == "" {
		return text
	}
	return text + "\n"
}
