package ui

import "strings"

// Wrap breaks text into lines of at most width runes, splitting on word
// boundaries. Words longer than width are placed on their own line rather
// than broken mid-word. Existing newlines start a fresh paragraph.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var b strings.Builder
	for i, paragraph := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(wrapParagraph(paragraph, width))
	}
	return b.String()
}

func wrapParagraph(paragraph string, width int) string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for _, word := range words {
		wordLen := len([]rune(word))
		switch {
		case lineLen == 0:
			b.WriteString(word)
			lineLen = wordLen
		case lineLen+1+wordLen <= width:
			b.WriteString(" ")
			b.WriteString(word)
			lineLen += 1 + wordLen
		default:
			b.WriteString("\n")
			b.WriteString(word)
			lineLen = wordLen
		}
	}
	return b.String()
}
