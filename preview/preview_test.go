package preview

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.Black)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		uri  string
		want Kind
	}{
		{"data:image/png;base64,AAAA", KindRaster},
		{"data", KindRaster},
		{"<svg></svg>", KindVector},
		{"dat", KindVector},
		{"", KindVector},
		{" data:image/png", KindVector},
	}
	for _, tt := range tests {
		if got := Classify(tt.uri); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.uri, got, tt.want)
		}
	}
}

func TestNewAssetExplicitKindWins(t *testing.T) {
	a := NewAsset(KindVector, "data-like-but-vector")
	if a.Kind != KindVector {
		t.Errorf("Kind = %v, want vector", a.Kind)
	}
	if b := NewAsset(KindUnknown, "data:x"); !b.IsRaster() {
		t.Errorf("NewAsset(unknown, data:...) Kind = %v, want raster", b.Kind)
	}
}

func TestDecodeRaster(t *testing.T) {
	info, err := Decode(NewAsset(KindUnknown, pngDataURI(t, 12, 7)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if info.Kind != KindRaster || info.Format != "png" || info.Width != 12 || info.Height != 7 {
		t.Errorf("Decode() = %+v, want 12x7 png raster", info)
	}
}

func TestDecodeRasterErrors(t *testing.T) {
	for _, uri := range []string{
		"data:image/png;base64,!!!",
		"data:image/png;base64,AAAA",
		"data-without-comma",
	} {
		if _, err := Decode(Asset{Kind: KindRaster, Data: uri}); err == nil {
			t.Errorf("Decode(%q) error = nil", uri)
		}
	}
	if _, err := Decode(Asset{}); !errors.Is(err, ErrEmptyAsset) {
		t.Errorf("Decode(empty) error = %v, want ErrEmptyAsset", err)
	}
}

func TestDecodeVector(t *testing.T) {
	tests := []struct {
		markup string
		w, h   float64
	}{
		{`<svg xmlns="http://www.w3.org/2000/svg" width="300" height="150px"/>`, 300, 150},
		{`<?xml version="1.0"?><svg viewBox="0 0 640 480"></svg>`, 640, 480},
		{`<svg width="100%"></svg>`, 0, 0},
	}
	for _, tt := range tests {
		info, err := Decode(NewAsset(KindUnknown, tt.markup))
		if err != nil {
			t.Errorf("Decode(%q) error = %v", tt.markup, err)
			continue
		}
		if info.Kind != KindVector || info.Width != tt.w || info.Height != tt.h {
			t.Errorf("Decode(%q) = %+v, want %vx%v vector", tt.markup, info, tt.w, tt.h)
		}
	}
}

func TestDecodeVectorErrors(t *testing.T) {
	for _, markup := range []string{"<html></html>", "not markup at all", "<svg"} {
		if _, err := Decode(Asset{Kind: KindVector, Data: markup}); !errors.Is(err, ErrNotSVG) {
			t.Errorf("Decode(%q) error = %v, want ErrNotSVG", markup, err)
		}
	}
}

func TestPlaceholderDecodes(t *testing.T) {
	p := Placeholder()
	if !p.Placeholder || p.Kind != KindVector {
		t.Errorf("Placeholder() = %+v", p)
	}
	if _, err := Decode(p); err != nil {
		t.Errorf("Decode(Placeholder()) error = %v", err)
	}
}

func TestVaultProvider(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "Ink", "Writing")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	write("a.writing", `{"meta": {"pluginVersion": "0.3.1"}, "previewUri": "<svg/>"}`)
	write("empty.writing", `{"meta": {}}`)
	write("broken.writing", `{`)

	v := VaultProvider{Root: root}
	ctx := context.Background()

	fd, err := v.InkFileData(ctx, "Ink/Writing/a.writing")
	if err != nil {
		t.Fatalf("InkFileData() error = %v", err)
	}
	if fd.PreviewURI != "<svg/>" || fd.Kind != KindUnknown {
		t.Errorf("InkFileData() = %+v", fd)
	}

	if _, err := v.InkFileData(ctx, "Ink/Writing/empty.writing"); !errors.Is(err, ErrNoPreview) {
		t.Errorf("empty file error = %v, want ErrNoPreview", err)
	}
	if _, err := v.InkFileData(ctx, "Ink/Writing/broken.writing"); err == nil {
		t.Error("broken file error = nil")
	}
	if _, err := v.InkFileData(ctx, "Ink/Writing/missing.writing"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
	for _, ref := range []string{"../secret", "/etc/passwd", ""} {
		if _, err := v.InkFileData(ctx, ref); !errors.Is(err, ErrOutsideVault) {
			t.Errorf("InkFileData(%q) error = %v, want ErrOutsideVault", ref, err)
		}
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := v.InkFileData(cancelled, "Ink/Writing/a.writing"); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled error = %v, want context.Canceled", err)
	}
}
