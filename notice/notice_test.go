package notice

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestShouldShow(t *testing.T) {
	tests := []struct {
		current, lastRead string
		want              bool
	}{
		{"0.3.1", "", true},
		{"0.3.1", "not-a-version", true},
		{"0.3.1", "0.3.0", true},
		{"0.3.1", "0.2.9", true},
		{"0.3.1", "0.3.1", false},
		{"0.3.1", "0.4.0", false},
		{"0.3.1", "v0.3.0", true},
		{"1.0.0", "1.0.0-beta.1", true},
		{"garbage", "0.1.0", false},
	}
	for _, tt := range tests {
		if got := ShouldShow(tt.current, tt.lastRead); got != tt.want {
			t.Errorf("ShouldShow(%q, %q) = %v, want %v", tt.current, tt.lastRead, got, tt.want)
		}
	}
}

func TestChanges(t *testing.T) {
	r, ok := Changes("0.3.1")
	if !ok {
		t.Fatal("Changes(0.3.1) missing")
	}
	if len(r.Changes) != 3 {
		t.Errorf("len(Changes) = %d, want 3", len(r.Changes))
	}
	if r.Title() != "Changes in Ink v0.3.1" {
		t.Errorf("Title() = %q", r.Title())
	}
	if !strings.HasPrefix(r.VideoURL, "https://") {
		t.Errorf("VideoURL = %q", r.VideoURL)
	}
	if _, ok := Changes("9.9.9"); ok {
		t.Error("Changes(9.9.9) found notes")
	}
}

type recordingPresenter struct {
	calls   int
	dismiss func()
}

func (p *recordingPresenter) Present(_ context.Context, _ Release, dismiss func()) error {
	p.calls++
	p.dismiss = dismiss
	return nil
}

func TestControllerShowOnceAndPersistOnDismiss(t *testing.T) {
	ctx := context.Background()
	store := &MemoryStore{}
	p := &recordingPresenter{}
	c := NewController("0.3.1", p, store)

	shown, err := c.Show(ctx)
	if err != nil || !shown {
		t.Fatalf("Show() = %v, %v; want true, nil", shown, err)
	}
	if v, _ := store.LastVersionTipRead(ctx); v != "" {
		t.Errorf("version persisted before dismiss: %q", v)
	}

	p.dismiss()
	p.dismiss()
	if v, _ := store.LastVersionTipRead(ctx); v != "0.3.1" {
		t.Errorf("lastVersionTipRead = %q, want 0.3.1", v)
	}

	if shown, _ := c.Show(ctx); shown || p.calls != 1 {
		t.Errorf("second Show() presented again (calls %d)", p.calls)
	}
	if shown, _ := NewController("0.3.1", p, store).Show(ctx); shown {
		t.Error("notice shown again after dismissal")
	}
}

func TestControllerUndismissedShowsNextRun(t *testing.T) {
	ctx := context.Background()
	store := &MemoryStore{}
	p := &recordingPresenter{}
	NewController("", p, store).Show(ctx)
	if shown, _ := NewController("", p, store).Show(ctx); !shown {
		t.Error("undismissed notice not shown on the next run")
	}
}

func TestControllerErrors(t *testing.T) {
	ctx := context.Background()
	_, err := NewController("9.9.9", &recordingPresenter{}, &MemoryStore{}).Show(ctx)
	if !errors.Is(err, ErrNoRelease) {
		t.Errorf("Show() error = %v, want ErrNoRelease", err)
	}

	failing := PresenterFunc(func(context.Context, Release, func()) error {
		return errors.New("no workspace")
	})
	if shown, err := NewController("0.3.1", failing, &MemoryStore{}).Show(ctx); shown || err == nil {
		t.Errorf("Show() = %v, %v; want presenter error", shown, err)
	}
}

func TestFileStorePreservesOtherSettings(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"writingLinesWhenLocked": false, "onboardingTips": {"welcomeTipRead": true}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	s := &FileStore{Path: path}

	if v, err := s.LastVersionTipRead(ctx); err != nil || v != "" {
		t.Fatalf("LastVersionTipRead() = %q, %v", v, err)
	}
	if err := s.SetLastVersionTipRead(ctx, "0.3.1"); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.LastVersionTipRead(ctx); v != "0.3.1" {
		t.Errorf("LastVersionTipRead() = %q, want 0.3.1", v)
	}

	data, _ := os.ReadFile(path)
	for _, want := range []string{`"writingLinesWhenLocked": false`, `"welcomeTipRead": true`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("settings lost %s:\n%s", want, data)
		}
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	s := &FileStore{Path: filepath.Join(t.TempDir(), "nested", "data.json")}
	if v, err := s.LastVersionTipRead(context.Background()); err != nil || v != "" {
		t.Errorf("LastVersionTipRead() = %q, %v; want empty", v, err)
	}
	if err := s.SetLastVersionTipRead(context.Background(), "0.3.1"); err != nil {
		t.Errorf("SetLastVersionTipRead() error = %v", err)
	}
}

type flakyStore struct {
	MemoryStore
	failures int
}

func (s *flakyStore) LastVersionTipRead(ctx context.Context) (string, error) {
	if s.failures > 0 {
		s.failures--
		return "", errors.New("settings not loaded yet")
	}
	return s.MemoryStore.LastVersionTipRead(ctx)
}

func TestControllerRetriesAfterReadError(t *testing.T) {
	ctx := context.Background()
	p := &recordingPresenter{}
	c := NewController("0.3.1", p, &flakyStore{failures: 1})

	if shown, err := c.Show(ctx); shown || err == nil {
		t.Fatalf("Show() = %v, %v; want read error", shown, err)
	}
	shown, err := c.Show(ctx)
	if err != nil || !shown {
		t.Errorf("Show() after read error = %v, %v; want true, nil", shown, err)
	}
	if p.calls != 1 {
		t.Errorf("presenter calls = %d, want 1", p.calls)
	}
}
