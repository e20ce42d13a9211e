// Package preview resolves the static preview shown for an embed before its
// interactive canvas is mounted.
//
// A preview is either a raster image carried as a data URI or inline SVG
// markup. Providers report which one they return; when they do not, the
// kind is inferred from the first four characters of the payload, the way
// older ink files are read.
package preview

import "strings"

// Kind discriminates preview payloads.
type Kind int

const (
	// KindUnknown asks Classify to infer the kind from the payload.
	KindUnknown Kind = iota
	// KindRaster is a data URI holding an encoded image.
	KindRaster
	// KindVector is SVG markup to be inlined.
	KindVector
)

func (k Kind) String() string {
	switch k {
	case KindRaster:
		return "raster"
	case KindVector:
		return "vector"
	default:
		return "unknown"
	}
}

// Asset is a preview ready to render.
type Asset struct {
	Kind Kind
	Data string
	// Placeholder marks the stand-in used when no preview could be fetched.
	Placeholder bool
}

// Classify infers the kind of a preview payload: a "data" prefix means a
// raster data URI, anything else is vector markup.
func Classify(uri string) Kind {
	if strings.HasPrefix(uri, "data") {
		return KindRaster
	}
	return KindVector
}

// NewAsset builds an asset from a payload, inferring the kind when kind is
// KindUnknown.
func NewAsset(kind Kind, data string) Asset {
	if kind == KindUnknown {
		kind = Classify(data)
	}
	return Asset{Kind: kind, Data: data}
}

// IsRaster reports whether the asset renders through the image path.
func (a Asset) IsRaster() bool { return a.Kind == KindRaster }
