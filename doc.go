// Package ink embeds freehand writing and drawing surfaces inside Markdown
// documents.
//
// # Overview
//
// An embed is a fenced code block whose info string marks its kind and whose
// body is a small JSON payload pointing at the backing ink file:
//
//	```handwritten-ink
//	{
//		"versionAtEmbed": "0.3.1",
//		"filepath": "Ink/Writing/2026.10.19 - 09.30pm.writing"
//	}
//	```
//
// The module is organized into:
//   - embed: encoding, decoding, scanning and removal of embed blocks
//   - shape: the fixed-width writing surface shape and its guidelines
//   - preview: preview assets and the file-data provider
//   - lifecycle: the per-instance unloaded/preview/active controller
//   - notice: the one-shot version change notice
//
// This package holds the values every sub-package shares: the plugin
// version, page geometry constants, the read-only Settings and the logger.
//
// # Logging
//
// ink is silent by default. Call SetLogger to route diagnostics from every
// sub-package to a slog.Logger.
package ink

// Version is the plugin version stamped into newly created embeds.
const Version = "0.3.1"

// Fence markers distinguishing the two embed kinds.
const (
	WriteEmbedKey = "handwritten-ink"
	DrawEmbedKey  = "handdrawn-ink"
)

// Writing surface geometry, in canvas units.
const (
	WritingPageWidth     = 2000.0
	WritingLineHeight    = 150.0
	WritingMinPageHeight = WritingLineHeight * 1.5
	WritingMaxPageHeight = 50000.0
)

// Initial drawing embed dimensions.
const (
	DrawingInitialWidth       = 500.0
	DrawingInitialAspectRatio = 1.0
	DrawingInitialHeight      = DrawingInitialWidth * DrawingInitialAspectRatio
)
