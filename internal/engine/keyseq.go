package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	keyESC = 0x1b
	keyDEL = 0x7f
)

// ctrl returns the control character for r, with C-? being DEL.
func ctrl(r rune) rune {
	if r == '?' {
		return keyDEL
	}
	return r & 0x1f
}

func isPrintable(r rune) bool {
	return r >= ' ' && r != keyDEL && !unicode.IsControl(r)
}

var simpleEscapes = map[rune]rune{
	'a':  0x07,
	'b':  0x08,
	'd':  keyDEL,
	'e':  keyESC,
	'f':  0x0c,
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  0x0b,
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
}

// ParseKeySeq parses the body of a quoted init-file key sequence, such as
// `\C-x\C-r` or `\e[A`, into keys. Meta characters become an ESC prefix.
func ParseKeySeq(s string) ([]rune, error) {
	rs := []rune(s)
	var out []rune
	for i := 0; i < len(rs); {
		keys, next, err := parseKey(rs, i)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidKeySeq, s, err)
		}
		out = append(out, keys...)
		i = next
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty key sequence", ErrInvalidKeySeq)
	}
	return out, nil
}

// parseKey parses one key, possibly with \C- and \M- modifiers, starting at
// rs[i]. It returns the resulting keys and the index after them.
func parseKey(rs []rune, i int) ([]rune, int, error) {
	if rs[i] != '\\' {
		return []rune{rs[i]}, i + 1, nil
	}
	if i+1 >= len(rs) {
		return nil, 0, fmt.Errorf("trailing backslash")
	}

	switch c := rs[i+1]; {
	case (c == 'C' || c == 'M') && i+2 < len(rs) && rs[i+2] == '-':
		if i+3 >= len(rs) {
			return nil, 0, fmt.Errorf(`missing key after \%c-`, c)
		}
		keys, next, err := parseKey(rs, i+3)
		if err != nil {
			return nil, 0, err
		}
		if c == 'M' {
			return append([]rune{keyESC}, keys...), next, nil
		}
		// \C- applies to the key itself, after any meta prefix.
		keys[len(keys)-1] = ctrl(keys[len(keys)-1])
		return keys, next, nil

	case c >= '0' && c <= '7':
		j := i + 1
		for j < len(rs) && j < i+4 && rs[j] >= '0' && rs[j] <= '7' {
			j++
		}
		v, err := strconv.ParseUint(string(rs[i+1:j]), 8, 32)
		if err != nil {
			return nil, 0, err
		}
		return []rune{rune(v)}, j, nil

	case c == 'x':
		j := i + 2
		for j < len(rs) && j < i+4 && isHexDigit(rs[j]) {
			j++
		}
		if j == i+2 {
			return nil, 0, fmt.Errorf(`\x without hex digits`)
		}
		v, err := strconv.ParseUint(string(rs[i+2:j]), 16, 32)
		if err != nil {
			return nil, 0, err
		}
		return []rune{rune(v)}, j, nil

	default:
		if r, ok := simpleEscapes[c]; ok {
			return []rune{r}, i + 2, nil
		}
		// Unknown escapes stand for the character itself.
		return []rune{c}, i + 2, nil
	}
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

var keyNames = map[string]rune{
	"rubout":  keyDEL,
	"del":     keyDEL,
	"esc":     keyESC,
	"escape":  keyESC,
	"lfd":     '\n',
	"newline": '\n',
	"ret":     '\r',
	"return":  '\r',
	"spc":     ' ',
	"space":   ' ',
	"tab":     '\t',
}

// ParseKeyName parses an unquoted key name such as "Control-u",
// "Meta-Rubout" or "TAB".
func ParseKeyName(name string) ([]rune, error) {
	s := name
	var control, meta bool
	for {
		lower := strings.ToLower(s)
		switch {
		case strings.HasPrefix(lower, "control-"):
			control, s = true, s[len("control-"):]
			continue
		case strings.HasPrefix(lower, "c-") && len(s) > 2:
			control, s = true, s[2:]
			continue
		case strings.HasPrefix(lower, "meta-"):
			meta, s = true, s[len("meta-"):]
			continue
		case strings.HasPrefix(lower, "m-") && len(s) > 2:
			meta, s = true, s[2:]
			continue
		}
		break
	}

	var r rune
	if named, ok := keyNames[strings.ToLower(s)]; ok {
		r = named
	} else if rs := []rune(s); len(rs) == 1 {
		r = rs[0]
	} else {
		return nil, fmt.Errorf("%w: unknown key name %q", ErrInvalidKeySeq, name)
	}

	if control {
		r = ctrl(r)
	}
	if meta {
		return []rune{keyESC, r}, nil
	}
	return []rune{r}, nil
}

// FormatKeySeq renders keys in init-file escape syntax, without quotes.
func FormatKeySeq(seq []rune) string {
	var b strings.Builder
	for _, r := range seq {
		switch {
		case r == keyESC:
			b.WriteString(`\e`)
		case r == keyDEL:
			b.WriteString(`\C-?`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '"':
			b.WriteString(`\"`)
		case r < 0x1b:
			b.WriteString(`\C-`)
			b.WriteRune(unicode.ToLower(r + 0x40))
		case r < ' ':
			fmt.Fprintf(&b, `\%03o`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
