package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNoPreview is returned when an ink file carries no preview.
	ErrNoPreview = errors.New("preview: file has no preview")
	// ErrOutsideVault is returned for references escaping the vault root.
	ErrOutsideVault = errors.New("preview: reference outside vault")
)

// FileData is what a provider knows about an ink file's preview.
type FileData struct {
	PreviewURI string
	// Kind is KindUnknown when the provider cannot tell.
	Kind Kind
}

// Provider fetches the file data behind an embed reference.
type Provider interface {
	InkFileData(ctx context.Context, ref string) (FileData, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, ref string) (FileData, error)

// InkFileData implements Provider.
func (f ProviderFunc) InkFileData(ctx context.Context, ref string) (FileData, error) {
	return f(ctx, ref)
}

// VaultProvider reads ink files from a directory tree. Embed references are
// slash-separated paths relative to Root.
type VaultProvider struct {
	Root string
}

// inkFile is the part of an ink file the provider reads.
type inkFile struct {
	PreviewURI string `json:"previewUri"`
}

// InkFileData implements Provider.
func (v VaultProvider) InkFileData(ctx context.Context, ref string) (FileData, error) {
	if err := ctx.Err(); err != nil {
		return FileData{}, err
	}
	path, err := v.resolve(ref)
	if err != nil {
		return FileData{}, err
	}
	raw, err := os.ReadFile(path) //nolint:gosec // path is confined to Root by resolve
	if err != nil {
		return FileData{}, fmt.Errorf("preview: read %s: %w", ref, err)
	}
	var f inkFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return FileData{}, fmt.Errorf("preview: parse %s: %w", ref, err)
	}
	if f.PreviewURI == "" {
		return FileData{}, fmt.Errorf("preview: %s: %w", ref, ErrNoPreview)
	}
	return FileData{PreviewURI: f.PreviewURI}, nil
}

func (v VaultProvider) resolve(ref string) (string, error) {
	if ref == "" || filepath.IsAbs(ref) || strings.HasPrefix(ref, "/") {
		return "", fmt.Errorf("%w: %q", ErrOutsideVault, ref)
	}
	rel := filepath.Clean(filepath.FromSlash(ref))
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrOutsideVault, ref)
	}
	return filepath.Join(v.Root, rel), nil
}
