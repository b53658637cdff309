// Package main shows two independent rline sessions side by side. Each
// pane keeps its own line, cursor, undo history and editing mode while
// both share one engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rline"
)

func main() {
	os.Exit(run())
}

func run() int {
	inputrc := flag.String("inputrc", "", "Key binding file (default: $INPUTRC, ~/.inputrc, /etc/inputrc)")
	mode := flag.String("mode", "", "Editing mode: emacs or vi")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rline-split - two isolated line-editing sessions\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rline-split [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nF2 or Shift-Tab switches panes, C-c quits.\n")
	}
	flag.Parse()

	cfg, err := rline.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *inputrc != "" {
		cfg.Inputrc = *inputrc
	}
	if *mode != "" {
		cfg.EditingMode = *mode
	}
	if err := rline.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	var panes [2]*pane
	for i, name := range []string{"left", "right"} {
		p, err := newPane(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer p.close()
		panes[i] = p
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()

	if err := loop(screen, panes); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loop dispatches terminal events until C-c.
func loop(screen tcell.Screen, panes [2]*pane) error {
	focus := 0
	for {
		draw(screen, panes, focus)

		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyCtrlC:
				return nil
			case tcell.KeyF2, tcell.KeyBacktab:
				focus = 1 - focus
				continue
			}
			if err := panes[focus].feed(keyBytes(ev)); err != nil {
				return err
			}
		}
	}
}

func draw(screen tcell.Screen, panes [2]*pane, focus int) {
	screen.Clear()
	w, h := screen.Size()
	left := w / 2

	for y := range h {
		screen.SetContent(left, y, tcell.RuneVLine, nil, tcell.StyleDefault)
	}
	panes[0].draw(screen, 0, 0, left, h, focus == 0)
	panes[1].draw(screen, left+1, 0, w-left-1, h, focus == 1)
	screen.Show()
}
