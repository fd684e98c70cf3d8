package textbuf

// IsWordChar returns true if the rune is a word character.
func IsWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || r == '_'
}

// WordAt returns the word spanning the 0-based column in the line, along with
// its start and end columns [start, end). Returns "" when the column does not
// touch a word.
func WordAt(line string, col int) (word string, start, end int) {
	if col < 0 || col > len(line) {
		return "", 0, 0
	}
	// Cursor sitting just past the end of a word counts as on it.
	if col == len(line) || !IsWordChar(rune(line[col])) {
		if col == 0 || !IsWordChar(rune(line[col-1])) {
			return "", 0, 0
		}
		col--
	}

	start = col
	for start > 0 && IsWordChar(rune(line[start-1])) {
		start--
	}
	end = col
	for end < len(line) && IsWordChar(rune(line[end])) {
		end++
	}
	return line[start:end], start, end
}

// ExpandTabs returns the display width of the line's leading whitespace with
// tabs expanded to the given width. Width values below 1 are treated as 1.
func ExpandTabs(line string, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += tabWidth - width%tabWidth
		default:
			return width
		}
	}
	return width
}
