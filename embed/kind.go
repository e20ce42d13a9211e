package embed

import (
	"strings"

	ink "github.com/TheStuch123/obsidian-ink-cp1"
)

// Kind identifies the surface an embed points at.
type Kind int

const (
	// KindUnknown is the zero Kind.
	KindUnknown Kind = iota
	// KindWriting is a ruled, fixed-width handwriting surface.
	KindWriting
	// KindDrawing is a free-form drawing canvas.
	KindDrawing
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindWriting:
		return "writing"
	case KindDrawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// Marker returns the fence info string for the kind.
func (k Kind) Marker() string {
	switch k {
	case KindWriting:
		return ink.WriteEmbedKey
	case KindDrawing:
		return ink.DrawEmbedKey
	default:
		return ""
	}
}

// KindForMarker maps a fence info string to a Kind. Only the first word of
// the info string is considered.
func KindForMarker(info string) (Kind, bool) {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return KindUnknown, false
	}
	switch fields[0] {
	case ink.WriteEmbedKey:
		return KindWriting, true
	case ink.DrawEmbedKey:
		return KindDrawing, true
	default:
		return KindUnknown, false
	}
}
