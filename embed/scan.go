package embed

import "strings"

// Block is an embed found in a document.
type Block struct {
	Kind Kind
	// Body is the text between the fences.
	Body string
	// LineStart and LineEnd are the 0-based lines of the opening and
	// closing fences.
	LineStart int
	LineEnd   int
}

// Section returns the block's source range in the form RemoveEmbed takes.
func (b Block) Section() *SectionInfo {
	return &SectionInfo{LineStart: b.LineStart, LineEnd: b.LineEnd}
}

// Writing decodes the block as a writing embed.
func (b Block) Writing() (WritingEmbedData, error) {
	if b.Kind != KindWriting {
		return WritingEmbedData{}, malformed(KindWriting, "", errKindMismatch(b.Kind))
	}
	return DecodeWritingEmbed(b.Body)
}

// Drawing decodes the block as a drawing embed.
func (b Block) Drawing() (DrawingEmbedData, error) {
	if b.Kind != KindDrawing {
		return DrawingEmbedData{}, malformed(KindDrawing, "", errKindMismatch(b.Kind))
	}
	return DecodeDrawingEmbed(b.Body)
}

// Filepath returns the payload's filepath, or "" if it does not decode.
func (b Block) Filepath() string {
	switch b.Kind {
	case KindWriting:
		if d, err := b.Writing(); err == nil {
			return d.Filepath
		}
	case KindDrawing:
		if d, err := b.Drawing(); err == nil {
			return d.Filepath
		}
	}
	return ""
}

// Scan returns every writing and drawing embed in document, in order.
// Blocks are routed by their fence marker alone; payloads are not decoded.
// Other fenced code blocks are skipped whole, so marker-like lines inside
// them are ignored. An unterminated embed fence is not reported.
func Scan(document string) []Block {
	lines := strings.Split(strings.ReplaceAll(document, "\r\n", "\n"), "\n")

	var blocks []Block
	for i := 0; i < len(lines); i++ {
		open, info, ok := openingFence(lines[i])
		if !ok {
			continue
		}
		end := closingFence(lines, i+1, open)
		if end < 0 {
			break
		}
		if kind, ok := KindForMarker(info); ok {
			blocks = append(blocks, Block{
				Kind:      kind,
				Body:      strings.Join(lines[i+1:end], "\n"),
				LineStart: i,
				LineEnd:   end,
			})
		}
		i = end
	}
	return blocks
}

// openingFence reports the fence run and info string of a fence line.
func openingFence(line string) (run, info string, ok bool) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return "", "", false
	}
	for _, c := range []byte{'`', '~'} {
		n := 0
		for n < len(trimmed) && trimmed[n] == c {
			n++
		}
		if n >= 3 {
			info = strings.TrimSpace(trimmed[n:])
			if c == '`' && strings.ContainsRune(info, '`') {
				return "", "", false
			}
			return trimmed[:n], info, true
		}
	}
	return "", "", false
}

// closingFence returns the index of the line closing open, or -1.
func closingFence(lines []string, from int, open string) int {
	for j := from; j < len(lines); j++ {
		t := strings.TrimSpace(lines[j])
		if len(t) >= len(open) && strings.Trim(t, open[:1]) == "" {
			return j
		}
	}
	return -1
}
