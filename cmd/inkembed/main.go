// Command inkembed inspects and edits ink embeds in markdown documents.
//
// Usage:
//
//	inkembed encode [-drawing] [-transcript text] <filepath>
//	inkembed decode [file]
//	inkembed scan [-previews] <document>
//	inkembed remove -line n [-w] <document>
//	inkembed lines [-height h] [-format svg|png] [-output file]
//	inkembed notice [-dismiss]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	ink "github.com/TheStuch123/obsidian-ink-cp1"
	"github.com/TheStuch123/obsidian-ink-cp1/embed"
	"github.com/TheStuch123/obsidian-ink-cp1/internal/config"
	"github.com/TheStuch123/obsidian-ink-cp1/lifecycle"
	"github.com/TheStuch123/obsidian-ink-cp1/notice"
	"github.com/TheStuch123/obsidian-ink-cp1/preview"
	"github.com/TheStuch123/obsidian-ink-cp1/shape"
)

var errUsage = errors.New("usage: inkembed encode|decode|scan|remove|lines|notice [flags]")

func main() {
	log.SetFlags(0)
	log.SetPrefix("inkembed: ")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	ink.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if err := run(context.Background(), cfg, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "encode":
		return runEncode(cfg, args, stdout)
	case "decode":
		return runDecode(args, stdin, stdout)
	case "scan":
		return runScan(ctx, cfg, args, stdout)
	case "remove":
		return runRemove(args, stdout)
	case "lines":
		return runLines(args, stdout)
	case "notice":
		return runNotice(ctx, cfg, args, stdout)
	default:
		return fmt.Errorf("unknown command %q\n%w", cmd, errUsage)
	}
}

func runEncode(cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	drawing := fs.Bool("drawing", false, "encode a drawing embed")
	transcript := fs.String("transcript", "", "transcript of a writing embed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("encode: expected one ink file path")
	}
	enc := embed.NewEncoder(embed.WithSettings(cfg.Settings))
	if *drawing {
		_, err := io.WriteString(stdout, enc.EncodeDrawingEmbed(fs.Arg(0)))
		return err
	}
	_, err := io.WriteString(stdout, enc.EncodeWritingEmbed(fs.Arg(0), *transcript))
	return err
}

func runDecode(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	src, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		return err
	}

	blocks := embed.Scan(src)
	if len(blocks) == 0 {
		return errors.New("decode: no ink embed found")
	}
	for _, b := range blocks {
		var out string
		switch b.Kind {
		case embed.KindWriting:
			d, err := b.Writing()
			if err != nil {
				return err
			}
			out = embed.StringifyWritingPayload(d)
		case embed.KindDrawing:
			d, err := b.Drawing()
			if err != nil {
				return err
			}
			out = embed.StringifyEmbedPayload(d)
		}
		if _, err := fmt.Fprintf(stdout, "%s\n%s\n", b.Kind, out); err != nil {
			return err
		}
	}
	return nil
}

func runScan(ctx context.Context, cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	previews := fs.Bool("previews", false, "resolve each embed's preview from the vault")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("scan: expected one document")
	}
	src, err := readInput(fs.Arg(0), nil)
	if err != nil {
		return err
	}

	provider := preview.VaultProvider{Root: cfg.VaultRoot}
	for _, b := range embed.Scan(src) {
		line := fmt.Sprintf("%d-%d\t%s\t%s", b.LineStart+1, b.LineEnd+1, b.Kind, b.Filepath())
		if *previews && b.Filepath() != "" {
			asset := lifecycle.FetchPreviewAsset(ctx, provider, b.Filepath())
			info, err := preview.Decode(asset)
			switch {
			case err != nil:
				line += "\tpreview: " + err.Error()
			case asset.Placeholder:
				line += "\tpreview: placeholder"
			default:
				line += fmt.Sprintf("\tpreview: %s %s %gx%g", info.Kind, info.Format, info.Width, info.Height)
			}
		}
		if _, err := fmt.Fprintln(stdout, line); err != nil {
			return err
		}
	}
	return nil
}

func runRemove(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	line := fs.Int("line", 0, "1-based line of the embed's opening fence")
	write := fs.Bool("w", false, "write the result back to the document")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *line < 1 {
		return errors.New("remove: expected -line and one document")
	}
	path := fs.Arg(0)
	src, err := readInput(path, nil)
	if err != nil {
		return err
	}

	var section *embed.SectionInfo
	for _, b := range embed.Scan(src) {
		if b.LineStart+1 == *line {
			section = b.Section()
			break
		}
	}
	editor := embed.NewLineEditor(src)
	if !embed.RemoveEmbed(editor, section) {
		return fmt.Errorf("remove: no ink embed starts on line %d", *line)
	}
	if *write {
		return os.WriteFile(path, []byte(editor.String()), 0o644)
	}
	_, err = io.WriteString(stdout, editor.String())
	return err
}

func runLines(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("lines", flag.ContinueOnError)
	height := fs.Float64("height", ink.WritingMinPageHeight, "page height in canvas units")
	format := fs.String("format", "svg", "output format: svg or png")
	output := fs.String("output", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var wl shape.WritingLines
	page := shape.New(wl)
	page, err := shape.Resize(page, shape.ResizeInfo{
		Handle: shape.HandleBottom,
		ScaleX: 1,
		ScaleY: *height / page.Props.H,
	})
	if err != nil {
		return err
	}

	var data []byte
	switch strings.ToLower(*format) {
	case "svg":
		data = []byte(wl.SVG(page))
	case "png":
		var buf strings.Builder
		if err := wl.Rasterize(page, shape.DefaultRasterStyle()).EncodePNG(&buf); err != nil {
			return err
		}
		data = []byte(buf.String())
	default:
		return fmt.Errorf("lines: unknown format %q", *format)
	}

	if *output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		return err
	}
	ink.Logger().Info("guidelines written", "output", *output, "height", page.Props.H)
	return nil
}

func runNotice(ctx context.Context, cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("notice", flag.ContinueOnError)
	dismiss := fs.Bool("dismiss", false, "mark the notes as read")
	if err := fs.Parse(args); err != nil {
		return err
	}

	present := notice.PresenterFunc(func(_ context.Context, r notice.Release, done func()) error {
		fmt.Fprintln(stdout, r.Title())
		for _, c := range r.Changes {
			fmt.Fprintf(stdout, "  - %s\n", c)
		}
		if r.VideoURL != "" {
			fmt.Fprintf(stdout, "View release video: %s\n", r.VideoURL)
		}
		if *dismiss {
			done()
		}
		return nil
	})
	c := notice.NewController(ink.Version, present, &notice.FileStore{Path: cfg.PluginData})
	_, err := c.Show(ctx)
	return err
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		if stdin == nil {
			return "", errors.New("no input")
		}
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
