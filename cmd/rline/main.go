// Package main is a line editor on the raw terminal, driven by one rline
// Context. Every accepted line is echoed and added to the history.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rivo/uniseg"
	"golang.org/x/term"

	"github.com/dshills/rline"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

const ctrlC = 0x03

type options struct {
	prompt  string
	inputrc string
	mode    string
	history string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := rline.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.inputrc != "" {
		cfg.Inputrc = opts.inputrc
	}
	if opts.mode != "" {
		cfg.EditingMode = opts.mode
	}
	if opts.history != "" {
		cfg.HistoryFile = opts.history
	}
	if err := rline.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	ctx, err := rline.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer ctx.Close()

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprintln(os.Stderr, "Error: stdin is not a terminal")
		return 1
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer term.Restore(fd, old)

	err = edit(ctx, os.Stdin, os.Stdout, opts.prompt)
	_, _ = io.WriteString(os.Stdout, "\r\n")
	if path := cfg.ResolveHistoryFile(); path != "" {
		if herr := rline.SaveHistory(path); herr != nil {
			err = errors.Join(err, herr)
		}
	}
	if err != nil {
		term.Restore(fd, old)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// edit feeds input to ctx and redraws the line after every read until end
// of input or C-c.
func edit(ctx *rline.Context, in io.Reader, out io.Writer, prompt string) error {
	buf := make([]byte, 256)
	redraw(ctx, out, prompt)
	for {
		n, err := in.Read(buf)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		chunk := buf[:n]
		quit := false
		if i := bytes.IndexByte(chunk, ctrlC); i >= 0 {
			chunk, quit = chunk[:i], true
		}

		for {
			line, ok, err := ctx.Feed(chunk)
			chunk = nil
			if errors.Is(err, rline.ErrEncoding) {
				break
			}
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			if ctx.EOF() {
				return nil
			}
			fmt.Fprintf(out, "\r\x1b[K%s%s\r\n", prompt, line)
			if len(line) > 0 {
				if err := rline.AddHistory(string(line)); err != nil {
					return err
				}
				fmt.Fprintf(out, "%q\r\n", line)
			}
		}
		if quit {
			return nil
		}
		redraw(ctx, out, prompt)
	}
}

// redraw repaints the prompt and line and places the terminal cursor.
func redraw(ctx *rline.Context, out io.Writer, prompt string) {
	_ = ctx.Peek(func(line []byte, cursor int) {
		fmt.Fprintf(out, "\r\x1b[K%s%s\r", prompt, line)
		if col := displayColumn(prompt, line, cursor); col > 0 {
			fmt.Fprintf(out, "\x1b[%dC", col)
		}
	})
}

// displayColumn returns the terminal column of the cursor at byte offset
// cursor of line, counting wide and combining characters.
func displayColumn(prompt string, line []byte, cursor int) int {
	return uniseg.StringWidth(prompt) + uniseg.StringWidth(string(line[:cursor]))
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.prompt, "prompt", "> ", "Prompt shown before the line")
	flag.StringVar(&opts.inputrc, "inputrc", "", "Key binding file (default: $INPUTRC, ~/.inputrc, /etc/inputrc)")
	flag.StringVar(&opts.mode, "mode", "", "Editing mode: emacs or vi")
	flag.StringVar(&opts.history, "history", "", "History file to load and save")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rline - line editing on a raw terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rline [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nPress Enter to accept a line, C-d on an empty line or C-c to quit.\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("rline %s (%s, %s engine)\n", version, commit, rline.Backend)
		os.Exit(0)
	}
	return opts
}
