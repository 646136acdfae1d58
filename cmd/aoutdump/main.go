package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/aout"
)

type options struct {
	format   string
	validate bool
	segments bool
	color    bool
	width    int
}

func main() {
	var (
		file        = flag.String("f", "", "Path to a.out executable (further paths may follow as arguments)")
		format      = flag.String("format", "text", "Output format: text, json, yaml or hex")
		validate    = flag.Bool("validate", false, "Check magic, header length and cpu; exit 2 on failure")
		segments    = flag.Bool("segments", false, "Also print the segment layout")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Debug logging to stderr")
	)
	flag.Parse()

	files := flag.Args()
	if *file != "" {
		files = append([]string{*file}, files...)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: aoutdump [-format text|json|yaml|hex] [-segments] [-validate] <a.out>...")
		fmt.Fprintln(os.Stderr, "       aoutdump -i <a.out>  (interactive mode)")
		os.Exit(1)
	}

	log := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log = l
	}
	defer func() { _ = log.Sync() }()
	aout.SetLogger(log)

	if *interactive {
		if err := runInteractive(files[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	opts := options{
		format:   *format,
		validate: *validate,
		segments: *segments,
		width:    80,
	}
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		opts.color = true
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			opts.width = w
		}
	}

	invalid, err := run(os.Stdout, files, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if invalid {
		os.Exit(2)
	}
}

// run inspects every file and writes one report per file to w. It reports
// invalid=true when validation was requested and any header failed it.
func run(w io.Writer, files []string, opts options) (invalid bool, err error) {
	r, err := newRenderer(opts)
	if err != nil {
		return false, err
	}

	for _, name := range files {
		rep, err := inspect(name, opts)
		if err != nil {
			return invalid, fmt.Errorf("%s: %w", name, err)
		}
		if rep.Problem != "" {
			invalid = true
			aout.Logger().Debug("validation failed", zap.String("file", name), zap.String("problem", rep.Problem))
		}
		if err := r.render(w, rep); err != nil {
			return invalid, fmt.Errorf("render %s: %w", name, err)
		}
	}
	return invalid, r.flush(w)
}

func inspect(name string, opts options) (*report, error) {
	f, err := aout.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rep := newReport(name, f.Header)
	if opts.segments {
		rep.Segments = f.Segments()
	}
	if opts.validate {
		if err := aout.Validate(f.Header); err != nil {
			rep.Problem = err.Error()
		}
	}
	return rep, nil
}
