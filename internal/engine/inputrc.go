package engine

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// maxIncludeDepth bounds nested $include directives.
const maxIncludeDepth = 10

// ignoredVariables are readline variables that are accepted in init files
// but have no effect on an engine without a display or completion.
var ignoredVariables = map[string]bool{
	"active-region-end-color":          true,
	"active-region-start-color":        true,
	"bell-style":                       true,
	"bind-tty-special-chars":           true,
	"blink-matching-paren":             true,
	"colored-completion-prefix":        true,
	"colored-stats":                    true,
	"comment-begin":                    true,
	"completion-display-width":         true,
	"completion-ignore-case":           true,
	"completion-map-case":              true,
	"completion-prefix-display-length": true,
	"completion-query-items":           true,
	"convert-meta":                     true,
	"disable-completion":               true,
	"echo-control-characters":          true,
	"emacs-mode-string":                true,
	"enable-active-region":             true,
	"enable-bracketed-paste":           true,
	"enable-keypad":                    true,
	"enable-meta-key":                  true,
	"expand-tilde":                     true,
	"horizontal-scroll-mode":           true,
	"input-meta":                       true,
	"isearch-terminators":              true,
	"keyseq-timeout":                   true,
	"mark-directories":                 true,
	"mark-modified-lines":              true,
	"mark-symlinked-directories":       true,
	"match-hidden-files":               true,
	"menu-complete-display-prefix":     true,
	"meta-flag":                        true,
	"output-meta":                      true,
	"page-completions":                 true,
	"print-completions-horizontally":   true,
	"revert-all-at-newline":            true,
	"search-ignore-case":               true,
	"show-all-if-ambiguous":            true,
	"show-all-if-unmodified":           true,
	"show-mode-in-prompt":              true,
	"skip-completed-text":              true,
	"vi-cmd-mode-string":               true,
	"vi-ins-mode-string":               true,
	"visible-stats":                    true,
}

// condFrame is one open $if.
type condFrame struct {
	parent bool // whether the enclosing block is active
	cond   bool
	inElse bool
}

// initParser applies init-file lines. Bindings go to km under prefix.
type initParser struct {
	path   string
	line   int
	km     *Keymap
	prefix []rune
	conds  []condFrame
	depth  int
}

func (p *initParser) active() bool {
	if len(p.conds) == 0 {
		return true
	}
	f := p.conds[len(p.conds)-1]
	if f.inElse {
		return f.parent && !f.cond
	}
	return f.parent && f.cond
}

// ReadInitFile reads key bindings and variable settings from the init
// file at path. A file that cannot be read is returned as is. Lines that
// cannot be applied are skipped and reported together as *ParseError
// values; every other line still takes effect.
func ReadInitFile(path string) error {
	p := &initParser{km: bindMap}
	return p.readFile(path)
}

func (p *initParser) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	saved := *p
	p.path, p.line, p.conds = path, 0, nil

	var errs error
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		p.line++
		errs = multierr.Append(errs, p.parseLine(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		errs = multierr.Append(errs, p.errorf(sc.Text(), "%w", err))
	}
	if len(p.conds) > 0 {
		errs = multierr.Append(errs, p.errorf("", "%w: missing $endif", ErrDirective))
	}

	p.path, p.line, p.conds = saved.path, saved.line, saved.conds
	return errs
}

// ParseAndBind applies a single init-file line, such as
// `"\C-xr": revert-line` or `set editing-mode vi`.
func ParseAndBind(line string) error {
	p := &initParser{km: bindMap}
	if err := p.parseLine(line); err != nil {
		return err
	}
	if len(p.conds) > 0 {
		return p.errorf(line, "%w: conditional in a single line", ErrDirective)
	}
	// "set keymap" outlives the line.
	bindMap = p.km
	return nil
}

func (p *initParser) errorf(text, format string, args ...any) error {
	return &ParseError{Path: p.path, Line: p.line, Text: text, Err: fmt.Errorf(format, args...)}
}

func (p *initParser) parseLine(raw string) error {
	line := strings.TrimSpace(raw)
	if line == "" || line[0] == '#' {
		return nil
	}
	if line[0] == '$' {
		return p.directive(line)
	}
	if !p.active() {
		return nil
	}
	if name, ok := cutKeyword(line, "set"); ok {
		return p.set(line, name)
	}
	return p.bind(line)
}

func cutKeyword(line, kw string) (string, bool) {
	if len(line) <= len(kw) || !strings.EqualFold(line[:len(kw)], kw) {
		return "", false
	}
	rest := line[len(kw):]
	if rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func (p *initParser) directive(line string) error {
	word, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(word) {
	case "if":
		p.conds = append(p.conds, condFrame{parent: p.active(), cond: evalCondition(arg)})
	case "else":
		if len(p.conds) == 0 {
			return p.errorf(line, "%w: $else without $if", ErrDirective)
		}
		p.conds[len(p.conds)-1].inElse = true
	case "endif":
		if len(p.conds) == 0 {
			return p.errorf(line, "%w: $endif without $if", ErrDirective)
		}
		p.conds = p.conds[:len(p.conds)-1]
	case "include":
		if !p.active() {
			return nil
		}
		if p.depth >= maxIncludeDepth {
			return p.errorf(line, "%w: $include nested too deeply", ErrDirective)
		}
		path := expandHome(arg)
		p.depth++
		defer func() { p.depth-- }()
		if err := p.readFile(path); err != nil {
			if _, ok := err.(*os.PathError); ok {
				return p.errorf(line, "%w: %w", ErrDirective, err)
			}
			return err
		}
	default:
		return p.errorf(line, "%w: unknown directive", ErrDirective)
	}
	return nil
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}

// evalCondition evaluates the test of an $if.
func evalCondition(test string) bool {
	if mode, ok := strings.CutPrefix(test, "mode="); ok {
		m, err := ParseEditingMode(mode)
		return err == nil && m == settings.mode
	}
	if term, ok := strings.CutPrefix(test, "term="); ok {
		t := os.Getenv("TERM")
		short, _, _ := strings.Cut(t, "-")
		return t != "" && (term == t || term == short)
	}
	return strings.EqualFold(test, AppName)
}

func (p *initParser) set(line, assignment string) error {
	name, value, _ := strings.Cut(assignment, " ")
	name = strings.ToLower(name)
	value = strings.TrimSpace(value)

	switch name {
	case "editing-mode":
		m, err := ParseEditingMode(value)
		if err != nil {
			return p.errorf(line, "%w", err)
		}
		SetEditingMode(m)
		p.km, p.prefix = m.entryKeymap(), nil
	case "keymap":
		km, prefix, err := KeymapByName(value)
		if err != nil {
			return p.errorf(line, "%w", err)
		}
		p.km, p.prefix = km, prefix
	case "history-size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return p.errorf(line, "%w: history-size %q", ErrInvalidValue, value)
		}
		StifleHistory(n)
	default:
		if !ignoredVariables[name] {
			return p.errorf(line, "%w: %q", ErrUnknownVariable, name)
		}
	}
	return nil
}

// bind applies a `"keyseq": rhs` or `keyname: rhs` line. rhs is a function
// name or a quoted macro.
func (p *initParser) bind(line string) error {
	var (
		seq  []rune
		rest string
		err  error
	)
	if line[0] == '"' {
		end := closingQuote(line, '"')
		if end < 0 {
			return p.errorf(line, "%w: unterminated key sequence", ErrInvalidKeySeq)
		}
		seq, err = ParseKeySeq(line[1:end])
		rest = strings.TrimSpace(line[end+1:])
		if !strings.HasPrefix(rest, ":") {
			return p.errorf(line, "%w: missing ':'", ErrInvalidKeySeq)
		}
		rest = rest[1:]
	} else {
		name, r, ok := strings.Cut(line, ":")
		if !ok {
			return p.errorf(line, "%w: missing ':'", ErrInvalidKeySeq)
		}
		seq, err = ParseKeyName(strings.TrimSpace(name))
		rest = r
	}
	if err != nil {
		return p.errorf(line, "%w", err)
	}
	seq = append(append([]rune(nil), p.prefix...), seq...)

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return p.errorf(line, "%w: missing function name", ErrUnknownFunction)
	}
	if q := rest[0]; q == '"' || q == '\'' {
		end := closingQuote(rest, q)
		if end < 0 {
			return p.errorf(line, "%w: unterminated macro", ErrInvalidKeySeq)
		}
		var text []rune
		if end > 1 {
			if text, err = ParseKeySeq(rest[1:end]); err != nil {
				return p.errorf(line, "%w", err)
			}
		}
		return p.wrap(line, p.km.BindMacro(seq, text))
	}

	fn, _, _ := strings.Cut(rest, " ")
	return p.wrap(line, p.km.BindFunction(seq, fn))
}

func (p *initParser) wrap(line string, err error) error {
	if err == nil {
		return nil
	}
	return p.errorf(line, "%w", err)
}

// closingQuote returns the index of the quote that closes s[0], skipping
// backslash escapes, or -1.
func closingQuote(s string, q byte) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case q:
			return i
		}
	}
	return -1
}

// UnbindKeySeq removes the binding of an init-file key sequence from the
// keymap that unqualified bindings go to.
func UnbindKeySeq(keys string) (bool, error) {
	seq, err := ParseKeySeq(keys)
	if err != nil {
		return false, err
	}
	return bindMap.Unbind(seq), nil
}
