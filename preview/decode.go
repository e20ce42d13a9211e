package preview

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"net/url"
	"strconv"
	"strings"

	// Raster formats a preview data URI may carry.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode errors.
var (
	ErrEmptyAsset = errors.New("preview: empty asset")
	ErrNotDataURI = errors.New("preview: not a data URI")
	ErrNotSVG     = errors.New("preview: markup is not an svg document")
)

// Info describes a decoded preview.
type Info struct {
	Kind   Kind
	Format string // image format name, or "svg"
	Width  float64
	Height float64
}

// Decode checks that an asset can be displayed and reports its intrinsic
// size. It is the load step between fetching a preview and showing it.
// Dimensions of SVG markup without width/height fall back to its viewBox
// and may be zero.
func Decode(a Asset) (Info, error) {
	if a.Data == "" {
		return Info{}, ErrEmptyAsset
	}
	kind := a.Kind
	if kind == KindUnknown {
		kind = Classify(a.Data)
	}
	switch kind {
	case KindRaster:
		return decodeRaster(a.Data)
	default:
		return decodeVector(a.Data)
	}
}

func decodeRaster(uri string) (Info, error) {
	data, err := dataURIBytes(uri)
	if err != nil {
		return Info{}, err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("preview: decode image: %w", err)
	}
	return Info{
		Kind:   KindRaster,
		Format: format,
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
	}, nil
}

// dataURIBytes returns the payload of a data:[<mediatype>][;base64],<data> URI.
func dataURIBytes(uri string) ([]byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, ErrNotDataURI
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
		if err != nil {
			return nil, fmt.Errorf("preview: decode base64: %w", err)
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("preview: unescape data URI: %w", err)
	}
	return []byte(s), nil
}

func decodeVector(markup string) (Info, error) {
	dec := xml.NewDecoder(strings.NewReader(markup))
	for {
		tok, err := dec.Token()
		if err != nil {
			return Info{}, fmt.Errorf("%w: %v", ErrNotSVG, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "svg" {
			return Info{}, fmt.Errorf("%w: root element <%s>", ErrNotSVG, start.Name.Local)
		}
		info := Info{Kind: KindVector, Format: "svg"}
		var viewBox string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "width":
				info.Width = svgLength(attr.Value)
			case "height":
				info.Height = svgLength(attr.Value)
			case "viewBox":
				viewBox = attr.Value
			}
		}
		if (info.Width == 0 || info.Height == 0) && viewBox != "" {
			if f := strings.Fields(strings.ReplaceAll(viewBox, ",", " ")); len(f) == 4 {
				if info.Width == 0 {
					info.Width = svgLength(f[2])
				}
				if info.Height == 0 {
					info.Height = svgLength(f[3])
				}
			}
		}
		return info, nil
	}
}

// svgLength parses a user-unit or px length. Relative units yield 0.
func svgLength(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "px"), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
