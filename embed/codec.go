package embed

import (
	"strings"

	ink "github.com/TheStuch123/obsidian-ink-cp1"
)

const fence = "```"

// Encoder builds new embed blocks.
// The zero value is not usable; create one with NewEncoder.
type Encoder struct {
	version     string
	transcripts bool
}

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// WithVersion overrides the version stamped into new embeds.
func WithVersion(v string) EncoderOption {
	return func(e *Encoder) {
		e.version = v
	}
}

// WithTranscripts persists the transcript passed to EncodeWritingEmbed.
func WithTranscripts(on bool) EncoderOption {
	return func(e *Encoder) {
		e.transcripts = on
	}
}

// WithSettings takes the transcript flag from shared settings.
func WithSettings(s *ink.Settings) EncoderOption {
	return func(e *Encoder) {
		if s != nil {
			e.transcripts = s.PersistTranscripts()
		}
	}
}

// NewEncoder returns an Encoder stamping ink.Version, with transcripts off.
func NewEncoder(opts ...EncoderOption) *Encoder {
	e := &Encoder{version: ink.Version}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEncoder = NewEncoder()

// EncodeWritingEmbed returns a new writing embed block for filepath using the
// default encoder. The transcript is not persisted.
func EncodeWritingEmbed(filepath, transcript string) string {
	return defaultEncoder.EncodeWritingEmbed(filepath, transcript)
}

// EncodeDrawingEmbed returns a new drawing embed block for filepath using the
// default encoder.
func EncodeDrawingEmbed(filepath string) string {
	return defaultEncoder.EncodeDrawingEmbed(filepath)
}

// EncodeWritingEmbed returns a writing embed block. The block starts with a
// newline and ends with a blank line so the caller has a stable place to put
// the cursor after inserting it.
func (e *Encoder) EncodeWritingEmbed(filepath, transcript string) string {
	data := WritingEmbedData{
		VersionAtEmbed: e.version,
		Filepath:       filepath,
	}
	if e.transcripts {
		data.Transcript = transcript
	}
	return fenced(KindWriting, StringifyWritingPayload(data)) + "\n"
}

// EncodeDrawingEmbed returns a drawing embed block stamped with the initial
// drawing dimensions, followed by a blank line.
func (e *Encoder) EncodeDrawingEmbed(filepath string) string {
	data := DrawingEmbedData{
		VersionAtEmbed: e.version,
		Filepath:       filepath,
		Width:          Dimension(ink.DrawingInitialWidth),
		Height:         Dimension(ink.DrawingInitialHeight),
	}
	return fenced(KindDrawing, StringifyEmbedPayload(data)) + "\n"
}

// StringifyEmbedPayload renders a drawing payload as tab-indented JSON with
// a stable key order. Repeated calls on unchanged data are byte-identical.
func StringifyEmbedPayload(data DrawingEmbedData) string {
	members := optionalString(nil, "versionAtEmbed", data.VersionAtEmbed, data.version)
	members = append(members, stringValue("filepath", data.Filepath))
	if data.Width != nil {
		members = append(members, numberValue("width", *data.Width))
	}
	if data.Height != nil {
		members = append(members, numberValue("height", *data.Height))
	}
	return writeObject(appendExtra(members, data.Extra))
}

// StringifyWritingPayload is StringifyEmbedPayload for writing payloads.
func StringifyWritingPayload(data WritingEmbedData) string {
	members := optionalString(nil, "versionAtEmbed", data.VersionAtEmbed, data.version)
	members = append(members, stringValue("filepath", data.Filepath))
	members = optionalString(members, "transcript", data.Transcript, data.transcript)
	return writeObject(appendExtra(members, data.Extra))
}

// RebuildDrawingEmbed re-serializes a decoded drawing payload, typically
// after its dimensions changed. VersionAtEmbed is written back untouched and
// no trailing blank line is added, so the result can replace the original
// block in place.
func RebuildDrawingEmbed(data DrawingEmbedData) (string, error) {
	if err := validateDrawing(data); err != nil {
		return "", err
	}
	return fenced(KindDrawing, StringifyEmbedPayload(data)), nil
}

// RebuildWritingEmbed is RebuildDrawingEmbed for writing payloads.
func RebuildWritingEmbed(data WritingEmbedData) (string, error) {
	if data.Filepath == "" {
		return "", malformed(KindWriting, "filepath", errMissingFilepath)
	}
	return fenced(KindWriting, StringifyWritingPayload(data)), nil
}

func validateDrawing(data DrawingEmbedData) error {
	if data.Filepath == "" {
		return malformed(KindDrawing, "filepath", errMissingFilepath)
	}
	if data.Width != nil && !validDimension(*data.Width) {
		return malformed(KindDrawing, "width", errInvalidDimension)
	}
	if data.Height != nil && !validDimension(*data.Height) {
		return malformed(KindDrawing, "height", errInvalidDimension)
	}
	return nil
}

func fenced(kind Kind, payload string) string {
	var b strings.Builder
	b.WriteString("\n" + fence + kind.Marker())
	b.WriteString("\n" + payload)
	b.WriteString("\n" + fence)
	return b.String()
}

// DecodeWritingEmbed parses a writing payload. src may be the bare JSON body
// or a complete fenced block.
func DecodeWritingEmbed(src string) (WritingEmbedData, error) {
	const kind = KindWriting
	members, err := parseObject(kind, payloadBody(src))
	if err != nil {
		return WritingEmbedData{}, err
	}

	var data WritingEmbedData
	for _, m := range members {
		switch m.key {
		case "versionAtEmbed":
			data.VersionAtEmbed, err = stringMember(kind, m)
			data.version = presenceOf(m)
		case "filepath":
			data.Filepath, err = stringMember(kind, m)
		case "transcript":
			data.Transcript, err = stringMember(kind, m)
			data.transcript = presenceOf(m)
		default:
			data.Extra = append(data.Extra, Field{Key: m.key, Value: m.value})
		}
		if err != nil {
			return WritingEmbedData{}, err
		}
	}
	if data.Filepath == "" {
		return WritingEmbedData{}, malformed(kind, "filepath", errMissingFilepath)
	}
	return data, nil
}

// DecodeDrawingEmbed parses a drawing payload. src may be the bare JSON body
// or a complete fenced block.
func DecodeDrawingEmbed(src string) (DrawingEmbedData, error) {
	const kind = KindDrawing
	members, err := parseObject(kind, payloadBody(src))
	if err != nil {
		return DrawingEmbedData{}, err
	}

	var data DrawingEmbedData
	for _, m := range members {
		switch m.key {
		case "versionAtEmbed":
			data.VersionAtEmbed, err = stringMember(kind, m)
			data.version = presenceOf(m)
		case "filepath":
			data.Filepath, err = stringMember(kind, m)
		case "width":
			data.Width, err = dimensionMember(kind, m)
		case "height":
			data.Height, err = dimensionMember(kind, m)
		default:
			data.Extra = append(data.Extra, Field{Key: m.key, Value: m.value})
		}
		if err != nil {
			return DrawingEmbedData{}, err
		}
	}
	if data.Filepath == "" {
		return DrawingEmbedData{}, malformed(kind, "filepath", errMissingFilepath)
	}
	return data, nil
}

// payloadBody strips an enclosing backtick or tilde fence, if any, and
// returns the JSON body.
func payloadBody(src string) string {
	s := strings.TrimSpace(src)
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	run, _, ok := openingFence(lines[0])
	if !ok {
		return s
	}
	body := lines[1:]
	if end := closingFence(lines, 1, run); end >= 0 {
		body = lines[1:end]
	}
	return strings.Join(body, "\n")
}
