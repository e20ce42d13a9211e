package notice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps lastVersionTipRead in a JSON settings file, leaving the
// file's other settings as they are.
type FileStore struct {
	Path string

	mu sync.Mutex
}

// LastVersionTipRead implements Store. A missing file reads as "".
func (s *FileStore) LastVersionTipRead(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.load()
	if err != nil {
		return "", err
	}
	tips, _ := settings["onboardingTips"].(map[string]any)
	v, _ := tips["lastVersionTipRead"].(string)
	return v, nil
}

// SetLastVersionTipRead implements Store.
func (s *FileStore) SetLastVersionTipRead(ctx context.Context, version string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.load()
	if err != nil {
		return err
	}
	tips, _ := settings["onboardingTips"].(map[string]any)
	if tips == nil {
		tips = make(map[string]any)
	}
	tips["lastVersionTipRead"] = version
	settings["onboardingTips"] = tips

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "\t")
	if err := enc.Encode(settings); err != nil {
		return fmt.Errorf("notice: encode settings: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("notice: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("notice: write settings: %w", err)
	}
	return nil
}

func (s *FileStore) load() (map[string]any, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, fmt.Errorf("notice: read settings: %w", err)
	}
	settings := make(map[string]any)
	if len(bytes.TrimSpace(data)) == 0 {
		return settings, nil
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("notice: parse %s: %w", s.Path, err)
	}
	return settings, nil
}

// MemoryStore is a Store held in memory.
type MemoryStore struct {
	mu      sync.Mutex
	version string
}

// LastVersionTipRead implements Store.
func (s *MemoryStore) LastVersionTipRead(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version, nil
}

// SetLastVersionTipRead implements Store.
func (s *MemoryStore) SetLastVersionTipRead(_ context.Context, version string) error {
	s.mu.Lock()
	s.version = version
	s.mu.Unlock()
	return nil
}
