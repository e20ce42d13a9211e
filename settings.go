package ink

import "time"

// PreviewTransitionDelay is the pause between a preview asset finishing its
// load and the embed reporting the preview state. Without it the surrounding
// layout reflow is sometimes visible as a flicker.
const PreviewTransitionDelay = 100 * time.Millisecond

// Settings is the configuration shared by every embed instance in a session.
// It is read-only once built: instances keep their own mutable state and only
// consult Settings for defaults.
//
// Example:
//
//	settings := ink.NewSettings(
//	    ink.WithWritingLinesWhenLocked(false),
//	    ink.WithTranscripts(true),
//	)
type Settings struct {
	writingLinesWhenLocked      bool
	writingBackgroundWhenLocked bool
	persistTranscripts          bool
	transitionDelay             time.Duration
}

// SettingsOption configures Settings during creation.
type SettingsOption func(*Settings)

// DefaultSettings returns the settings used when none are supplied.
func DefaultSettings() *Settings {
	return NewSettings()
}

// NewSettings builds Settings from the defaults and the given options.
func NewSettings(opts ...SettingsOption) *Settings {
	s := &Settings{
		writingLinesWhenLocked:      true,
		writingBackgroundWhenLocked: true,
		transitionDelay:             PreviewTransitionDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithWritingLinesWhenLocked shows guidelines on locked writing previews.
func WithWritingLinesWhenLocked(on bool) SettingsOption {
	return func(s *Settings) {
		s.writingLinesWhenLocked = on
	}
}

// WithWritingBackgroundWhenLocked shows the page background on locked
// writing previews.
func WithWritingBackgroundWhenLocked(on bool) SettingsOption {
	return func(s *Settings) {
		s.writingBackgroundWhenLocked = on
	}
}

// WithTranscripts enables persisting transcripts into writing embeds.
// Off by default: embeds only carry the version and file path.
func WithTranscripts(on bool) SettingsOption {
	return func(s *Settings) {
		s.persistTranscripts = on
	}
}

// WithTransitionDelay overrides PreviewTransitionDelay. Negative values are
// treated as zero.
func WithTransitionDelay(d time.Duration) SettingsOption {
	return func(s *Settings) {
		if d < 0 {
			d = 0
		}
		s.transitionDelay = d
	}
}

// WritingLinesWhenLocked reports whether locked previews show guidelines.
func (s *Settings) WritingLinesWhenLocked() bool { return s.writingLinesWhenLocked }

// WritingBackgroundWhenLocked reports whether locked previews show the page background.
func (s *Settings) WritingBackgroundWhenLocked() bool { return s.writingBackgroundWhenLocked }

// PersistTranscripts reports whether transcripts are written into embeds.
func (s *Settings) PersistTranscripts() bool { return s.persistTranscripts }

// TransitionDelay returns the asset-loaded to preview delay.
func (s *Settings) TransitionDelay() time.Duration { return s.transitionDelay }
