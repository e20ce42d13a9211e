package embed

import "strings"

// Position is a line/column location in a document. Both are 0-based.
type Position struct {
	Line int
	Ch   int
}

// SectionInfo locates a rendered embed's source in the host document.
type SectionInfo struct {
	LineStart int
	LineEnd   int
}

// Editor is the part of the host editor RemoveEmbed needs.
type Editor interface {
	ReplaceRange(replacement string, from, to Position)
}

// RemoveEmbed deletes an embed's source lines, including the line break after
// the closing fence. It does nothing and returns false when the editor or the
// section is unknown.
func RemoveEmbed(editor Editor, section *SectionInfo) bool {
	if editor == nil || section == nil || section.LineEnd < section.LineStart {
		return false
	}
	editor.ReplaceRange("",
		Position{Line: section.LineStart, Ch: 0},
		Position{Line: section.LineEnd + 1, Ch: 0},
	)
	return true
}

// LineEditor is an in-memory Editor over document text.
type LineEditor struct {
	text string
}

// NewLineEditor returns an editor holding document.
func NewLineEditor(document string) *LineEditor {
	return &LineEditor{text: document}
}

// String returns the current document text.
func (e *LineEditor) String() string { return e.text }

// ReplaceRange replaces the text between from and to. Positions past the end
// of a line or of the document clamp to it.
func (e *LineEditor) ReplaceRange(replacement string, from, to Position) {
	start, end := e.offset(from), e.offset(to)
	if end < start {
		start, end = end, start
	}
	e.text = e.text[:start] + replacement + e.text[end:]
}

func (e *LineEditor) offset(p Position) int {
	if p.Line < 0 {
		return 0
	}
	off := 0
	for line := 0; line < p.Line; line++ {
		nl := strings.IndexByte(e.text[off:], '\n')
		if nl < 0 {
			return len(e.text)
		}
		off += nl + 1
	}
	lineEnd := strings.IndexByte(e.text[off:], '\n')
	if lineEnd < 0 {
		lineEnd = len(e.text) - off
	}
	return off + max(0, min(p.Ch, lineEnd))
}
