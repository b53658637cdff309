package main

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/rline"
)

const (
	prompt = "> "

	// maxLog bounds the accepted lines a pane remembers.
	maxLog = 200
)

// pane is one session and the lines it has accepted.
type pane struct {
	name string
	ctx  *rline.Context
	log  []string
}

func newPane(name string) (*pane, error) {
	ctx, err := rline.New()
	if err != nil {
		return nil, err
	}
	return &pane{name: name, ctx: ctx}, nil
}

func (p *pane) close() {
	_ = p.ctx.Close()
}

// feed hands key input to the session and records every line it
// completes.
func (p *pane) feed(input []byte) error {
	for {
		line, ok, err := p.ctx.Feed(input)
		input = nil
		var encErr *rline.EncodingError
		if errors.As(err, &encErr) {
			p.record(fmt.Sprintf("! %v", encErr))
			return nil
		}
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		switch {
		case p.ctx.EOF():
			p.record("^D")
		case len(line) > 0:
			p.record(string(line))
			if err := rline.AddHistory(string(line)); err != nil {
				return err
			}
		default:
			p.record("")
		}
	}
}

func (p *pane) record(s string) {
	p.log = append(p.log, s)
	if len(p.log) > maxLog {
		p.log = p.log[len(p.log)-maxLog:]
	}
}

// draw renders the pane into the w x h area at (x, y): a title, the
// accepted lines and the line being edited at the bottom.
func (p *pane) draw(s tcell.Screen, x, y, w, h int, focused bool) {
	if w <= 0 || h < 2 {
		return
	}
	title := tcell.StyleDefault.Reverse(focused)
	for col := range w {
		s.SetContent(x+col, y, ' ', nil, title)
	}
	drawText(s, x+1, y, w-1, p.name, 0, title)

	rows := h - 2
	start := max(0, len(p.log)-rows)
	for i, entry := range p.log[start:] {
		drawText(s, x, y+1+i, w, entry, 0, tcell.StyleDefault.Dim(true))
	}

	line, cursor, err := p.ctx.State()
	if err != nil {
		return
	}
	text := prompt + string(line)
	col := uniseg.StringWidth(prompt) + uniseg.StringWidth(string(line[:cursor]))
	skip := max(0, col-(w-1))
	drawText(s, x, y+h-1, w, text, skip, tcell.StyleDefault)
	if focused {
		s.ShowCursor(x+col-skip, y+h-1)
	}
}

// drawText draws text grapheme by grapheme, leaving out the first skip
// columns and clipping at width columns. It returns the columns drawn.
func drawText(s tcell.Screen, x, y, width int, text string, skip int, style tcell.Style) int {
	col, drawn := 0, 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		gw := g.Width()
		if col < skip {
			col += gw
			continue
		}
		if drawn+gw > width {
			break
		}
		runes := g.Runes()
		s.SetContent(x+drawn, y, runes[0], runes[1:], style)
		col += gw
		drawn += gw
	}
	return drawn
}
