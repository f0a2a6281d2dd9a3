package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/seehtml"
	"pkt.systems/seehtml/preview"
	"pkt.systems/version"
)

const (
	defaultThemeName = "default"
	defaultWidth     = 80
)

const (
	formatAuto = "auto"
	formatHTML = "html"
	formatANSI = "ansi"
)

func init() {
	version.SetDefaultModule("pkt.systems/seehtml")
}

type options struct {
	format      string
	outPath     string
	width       int
	themeName   string
	listThemes  bool
	truncate    bool
	charset     string
	closeTags   bool
	maxLine     int
	configPath  string
	quiet       bool
	showVersion bool
	tags        seehtml.TagSet
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func newFlagSet(opts *options, stderr io.Writer) *pflag.FlagSet {
	flags := pflag.NewFlagSet("seehtml", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.format, "format", "f", formatHTML, "Output format: html|ansi|auto (auto picks ansi on a terminal)")
	flags.StringVarP(&opts.outPath, "output", "o", "", "Output file instead of stdout")
	flags.IntVarP(&opts.width, "width", "w", 0, "Preview width (0 uses terminal width if available)")
	flags.StringVarP(&opts.themeName, "theme", "t", defaultThemeName, "Preview theme name")
	flags.BoolVar(&opts.listThemes, "list-themes", false, "List available themes")
	flags.BoolVar(&opts.truncate, "truncate", false, "Truncate long preview lines instead of wrapping")
	flags.StringVarP(&opts.charset, "charset", "c", "", "Input charset for bytes above 0x7F (e.g. windows-1252)")
	flags.BoolVar(&opts.closeTags, "close-tags", false, "Close open font tags at end of document")
	flags.IntVar(&opts.maxLine, "max-line", seehtml.DefaultMaxLineLength, "Maximum line length before splitting")
	flags.StringVar(&opts.configPath, "config", "", "TOML config file")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Do not print diagnostics")
	flags.BoolVarP(&opts.showVersion, "version", "V", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: seehtml [flags] [infile] [outfile]\n")
		fmt.Fprintln(stderr, "\nA missing file or - means stdin or stdout. infile may be a URL.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	return flags
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	var opts options
	flags := newFlagSet(&opts, stderr)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}
	if opts.listThemes {
		printThemes(stdout)
		return 0
	}

	if opts.configPath != "" {
		fc, err := loadConfig(normalizePath(opts.configPath))
		if err != nil {
			fmt.Fprintf(stderr, "seehtml: config: %v\n", err)
			return 2
		}
		fc.apply(&opts, flags.Changed)
	}

	inPath, outPath, err := resolvePaths(flags.Args(), opts.outPath)
	if err != nil {
		fmt.Fprintf(stderr, "seehtml: %v\n\n", err)
		flags.Usage()
		return 2
	}

	cs, err := seehtml.CharsetByName(opts.charset)
	if err != nil {
		fmt.Fprintf(stderr, "seehtml: %v\n", err)
		return 2
	}

	reader, closeIn, err := openInput(context.Background(), inPath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "seehtml: open input: %v\n", err)
		return 1
	}
	if closeIn != nil {
		defer func() { _ = closeIn.Close() }()
	}

	writer, closeOut, err := resolveOutput(outPath, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "seehtml: open output: %v\n", err)
		return 1
	}
	if closeOut != nil {
		defer func() { code = closeOutput(closeOut, stderr, code) }()
	}

	format, err := resolveFormat(opts.format, writer)
	if err != nil {
		fmt.Fprintf(stderr, "seehtml: invalid --format %q: %v\n", opts.format, err)
		return 2
	}

	inName := inPath
	if inName == "" || inName == "-" {
		inName = "<stdin>"
	}
	convOpts := []seehtml.Option{
		seehtml.WithTags(opts.tags),
		seehtml.WithCloseOpenTags(opts.closeTags),
		seehtml.WithMaxLineLength(opts.maxLine),
	}
	if !opts.quiet {
		convOpts = append(convOpts, seehtml.WithDiagnostics(func(d seehtml.Diagnostic) {
			fmt.Fprintf(stderr, "seehtml: %s:%v\n", inName, d)
		}))
	}

	switch format {
	case formatANSI:
		theme, ok := preview.ThemeByName(opts.themeName)
		if !ok {
			fmt.Fprintf(stderr, "seehtml: unknown theme %q\n\n", opts.themeName)
			printThemes(stderr)
			return 2
		}
		err = preview.Render(preview.RenderRequest{
			Reader:   reader,
			Writer:   writer,
			Width:    resolveWidth(opts.width, writer),
			Truncate: opts.truncate,
			Theme:    theme,
			Charset:  cs,
			Options:  convOpts,
		})
	default:
		if cs != nil {
			convOpts = append(convOpts, seehtml.WithCharset(cs))
		}
		err = seehtml.Convert(seehtml.ConvertRequest{
			Reader:  reader,
			Writer:  writer,
			Options: convOpts,
		})
	}
	if err != nil {
		if errors.Is(err, seehtml.ErrEmptyInput) {
			fmt.Fprintf(stderr, "seehtml: %s: %v\n", inName, seehtml.ErrEmptyInput)
			return 1
		}
		if errors.Is(err, seehtml.ErrInvalidTag) {
			fmt.Fprintf(stderr, "seehtml: %v\n", err)
			return 2
		}
		fmt.Fprintf(stderr, "seehtml: %v\n", err)
		return 1
	}
	return 0
}

// resolvePaths splits positional arguments into input and output paths. An
// output given with -o cannot be combined with a positional output.
func resolvePaths(args []string, outFlag string) (string, string, error) {
	if len(args) > 2 {
		return "", "", fmt.Errorf("too many arguments")
	}
	var in, out string
	if len(args) > 0 {
		in = args[0]
	}
	if len(args) > 1 {
		out = args[1]
	}
	if outFlag != "" {
		if out != "" {
			return "", "", fmt.Errorf("output given both as argument and with --output")
		}
		out = outFlag
	}
	return in, out, nil
}

func resolveFormat(format string, w io.Writer) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", formatAuto:
		if isTerminal(w) {
			return formatANSI, nil
		}
		return formatHTML, nil
	case formatHTML:
		return formatHTML, nil
	case formatANSI:
		return formatANSI, nil
	default:
		return "", fmt.Errorf("expected html|ansi|auto")
	}
}

func printThemes(w io.Writer) {
	for _, name := range preview.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
}

func resolveWidth(width int, w io.Writer) int {
	if width > 0 {
		return width
	}
	if !isTerminal(w) {
		return 0
	}
	return terminalWidth(w.(*os.File), defaultWidth)
}

func terminalWidth(f *os.File, fallback int) int {
	fd := int(f.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func openInput(ctx context.Context, raw string, stdin io.Reader) (io.Reader, io.Closer, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "-" {
		return stdin, nil, nil
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return openURL(ctx, raw)
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return openFile(path)
		}
	}
	return openFile(raw)
}

func openURL(ctx context.Context, raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "-" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

// closeOutput closes the output file. A failure turns a successful run into
// exit 1.
func closeOutput(c io.Closer, stderr io.Writer, code int) int {
	if err := c.Close(); err != nil {
		fmt.Fprintf(stderr, "seehtml: close output: %v\n", err)
		if code == 0 {
			return 1
		}
	}
	return code
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
