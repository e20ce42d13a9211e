// Package embed encodes and decodes the fenced blocks that place writing and
// drawing surfaces inside a Markdown document.
//
// # Wire format
//
// An embed is a fenced code block tagged with a kind marker whose body is a
// tab-indented JSON object:
//
//	```handdrawn-ink
//	{
//		"versionAtEmbed": "0.3.1",
//		"filepath": "Ink/Drawing/sketch.drawing",
//		"width": 500,
//		"height": 500
//	}
//	```
//
// Encoding is deterministic: known keys are written in a fixed order and
// unknown keys follow in the order they were read, so decoding and
// re-encoding an unchanged payload is byte-identical. The marker alone tells
// a document parser which kind of embed a block is; see Scan.
//
// # Errors
//
// Decoding fails with an error matching ErrMalformedEmbedPayload when the
// body is not a JSON object, lacks a filepath, or carries mistyped known
// fields. Such failures are local to one embed: callers render a broken-embed
// placeholder and carry on with the rest of the document.
package embed
