package paragraph

import (
	"strings"
	"unicode/utf8"
)

// whitespace lists the characters lines may break at.
// Other Unicode spaces, like the non-breaking space, are part of words.
const whitespace = "\t\n\v\f\r "

// Wrap fills text into lines of at most width runes.
// Every ASCII whitespace character is treated as a space, lines break only at whitespace
// and runs of whitespace inside a line are kept as they are.
// Hyphenated words are never broken at the hyphen.
// Whitespace at line boundaries is dropped.
// Words longer than width are split to fill the line they start on.
func Wrap(text string, width int) []string {
	chunks := splitChunks(text)
	var lines []string
	for len(chunks) > 0 {
		if len(lines) > 0 && isSpaceChunk(chunks[0]) {
			chunks = chunks[1:]
			if len(chunks) == 0 {
				break
			}
		}
		var line []string
		lineLen := 0
		for len(chunks) > 0 {
			n := utf8.RuneCountInString(chunks[0])
			if lineLen+n > width {
				break
			}
			line = append(line, chunks[0])
			lineLen += n
			chunks = chunks[1:]
		}
		if len(chunks) > 0 && utf8.RuneCountInString(chunks[0]) > width {
			spaceLeft := max(width-lineLen, 1)
			if lineLen < width || len(line) == 0 {
				head, tail := splitRunes(chunks[0], spaceLeft)
				line = append(line, head)
				chunks[0] = tail
			}
		}
		if len(line) > 0 && isSpaceChunk(line[len(line)-1]) {
			line = line[:len(line)-1]
		}
		if len(line) > 0 {
			lines = append(lines, strings.Join(line, ""))
		}
	}
	return lines
}

// splitChunks splits text into alternating runs of words and spaces.
func splitChunks(text string) []string {
	var (
		chunks  []string
		current strings.Builder
		inSpace bool
	)
	for i, r := range text {
		space := strings.ContainsRune(whitespace, r)
		if i > 0 && space != inSpace {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		inSpace = space
		if space {
			current.WriteByte(' ')
		} else {
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

func isSpaceChunk(chunk string) bool {
	return strings.TrimLeft(chunk, " ") == ""
}

func splitRunes(s string, n int) (head, tail string) {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}
