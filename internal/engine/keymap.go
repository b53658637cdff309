package engine

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// action is what a bound key sequence does: run a named function or push
// macro text back onto the input.
type action struct {
	fn    *function
	macro []rune
}

func (a action) bound() bool {
	return a.fn != nil || a.macro != nil
}

// keyNode is one key in a keymap's prefix tree. A node can be both bound
// and a prefix of longer sequences.
type keyNode struct {
	action   action
	children map[rune]*keyNode
}

func (n *keyNode) bound() bool {
	return n.action.bound()
}

// Keymap maps key sequences to actions. Keymaps are process-wide; a session
// only records which one it is in.
type Keymap struct {
	name string
	root *keyNode
	// selfInsert makes unbound printable keys insert themselves.
	selfInsert bool
}

func newKeymap(name string, selfInsert bool) *Keymap {
	return &Keymap{
		name:       name,
		root:       &keyNode{children: make(map[rune]*keyNode)},
		selfInsert: selfInsert,
	}
}

// Name returns the keymap's init-file name.
func (k *Keymap) Name() string {
	return k.name
}

var (
	emacsMap     = newKeymap("emacs", true)
	viInsertMap  = newKeymap("vi-insert", true)
	viCommandMap = newKeymap("vi-command", false)

	// bindMap receives bindings that name no keymap.
	bindMap = emacsMap
)

// keymapNames resolves init-file keymap names. The emacs-meta and
// emacs-ctlx maps are the ESC and C-x prefixes of the emacs map.
var keymapNames = map[string]struct {
	km     **Keymap
	prefix []rune
}{
	"emacs":          {&emacsMap, nil},
	"emacs-standard": {&emacsMap, nil},
	"emacs-meta":     {&emacsMap, []rune{keyESC}},
	"emacs-ctlx":     {&emacsMap, []rune{ctrl('x')}},
	"vi":             {&viCommandMap, nil},
	"vi-command":     {&viCommandMap, nil},
	"vi-move":        {&viCommandMap, nil},
	"vi-insert":      {&viInsertMap, nil},
}

// KeymapByName returns the keymap with the given init-file name and the key
// prefix its bindings are placed under.
func KeymapByName(name string) (*Keymap, []rune, error) {
	ref, ok := keymapNames[strings.ToLower(name)]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownKeymap, name)
	}
	return *ref.km, ref.prefix, nil
}

// CurrentKeymap returns the keymap that unqualified bindings go to.
func CurrentKeymap() *Keymap {
	return bindMap
}

func (k *Keymap) node(seq []rune) *keyNode {
	n := k.root
	for _, r := range seq {
		child, ok := n.children[r]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

func (k *Keymap) bind(seq []rune, act action) error {
	if len(seq) == 0 {
		return fmt.Errorf("%w: empty key sequence", ErrInvalidKeySeq)
	}
	n := k.root
	for _, r := range seq {
		child, ok := n.children[r]
		if !ok {
			child = &keyNode{children: make(map[rune]*keyNode)}
			n.children[r] = child
		}
		n = child
	}
	n.action = act
	return nil
}

// BindFunction binds seq to the named function.
func (k *Keymap) BindFunction(seq []rune, name string) error {
	fn, ok := functions[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
	return k.bind(seq, action{fn: fn})
}

// BindMacro binds seq to text that is read as input when seq is typed.
func (k *Keymap) BindMacro(seq []rune, text []rune) error {
	if text == nil {
		text = []rune{}
	}
	return k.bind(seq, action{macro: slices.Clone(text)})
}

// Unbind removes the binding of seq, pruning nodes that no longer lead to
// a binding. It reports whether anything was bound.
func (k *Keymap) Unbind(seq []rune) bool {
	if len(seq) == 0 {
		return false
	}
	path := make([]*keyNode, 0, len(seq)+1)
	path = append(path, k.root)
	n := k.root
	for _, r := range seq {
		child, ok := n.children[r]
		if !ok {
			return false
		}
		path = append(path, child)
		n = child
	}
	was := n.bound()
	n.action = action{}

	for i := len(path) - 1; i > 0; i-- {
		cur := path[i]
		if cur.bound() || len(cur.children) > 0 {
			break
		}
		delete(path[i-1].children, seq[i-1])
	}
	return was
}

// Lookup returns the name of the function bound to seq, or the macro text
// prefixed with a quote, or "" if seq is unbound.
func (k *Keymap) Lookup(seq []rune) string {
	n := k.node(seq)
	if n == nil || !n.bound() {
		return ""
	}
	return n.action.String()
}

func (a action) String() string {
	if a.fn != nil {
		return a.fn.name
	}
	return `"` + string(a.macro) + `"`
}

// fallback is the action for a single key with no binding of its own.
func (k *Keymap) fallback(r rune) action {
	if k.selfInsert && isPrintable(r) {
		return action{fn: functions["self-insert"]}
	}
	return action{}
}

// longestBound returns the length of the longest bound prefix of seq and
// its action. A one-key prefix always qualifies through the fallback.
func (k *Keymap) longestBound(seq []rune) (int, action) {
	for n := len(seq); n > 1; n-- {
		if node := k.node(seq[:n]); node != nil && node.bound() {
			return n, node.action
		}
	}
	if node := k.node(seq[:1]); node != nil && node.bound() {
		return 1, node.action
	}
	return 1, k.fallback(seq[0])
}

// Binding is one entry of a keymap listing.
type Binding struct {
	Keys   string
	Action string
}

// Bindings lists every bound sequence in the keymap, sorted by key text.
func (k *Keymap) Bindings() []Binding {
	var out []Binding
	var walk func(n *keyNode, prefix []rune)
	walk = func(n *keyNode, prefix []rune) {
		if n.bound() {
			out = append(out, Binding{Keys: FormatKeySeq(prefix), Action: n.action.String()})
		}
		for _, r := range slices.Sorted(maps.Keys(n.children)) {
			walk(n.children[r], append(slices.Clip(prefix), r))
		}
	}
	walk(k.root, nil)
	return out
}

func (k *Keymap) clear() {
	k.root = &keyNode{children: make(map[rune]*keyNode)}
}

// ResetBindings restores every keymap to its default bindings and the
// default editing mode to emacs.
func ResetBindings() {
	for _, km := range []*Keymap{emacsMap, viInsertMap, viCommandMap} {
		km.clear()
	}
	installDefaultBindings()
	SetEditingMode(ModeEmacs)
}

func init() {
	registerFunctions()
	installDefaultBindings()
}

func mustBind(km *Keymap, keys string, name string) {
	seq, err := ParseKeySeq(keys)
	if err != nil {
		panic(err)
	}
	if err := km.BindFunction(seq, name); err != nil {
		panic(err)
	}
}

var arrowBindings = [][2]string{
	{`\e[A`, "previous-history"},
	{`\e[B`, "next-history"},
	{`\e[C`, "forward-char"},
	{`\e[D`, "backward-char"},
	{`\e[H`, "beginning-of-line"},
	{`\e[F`, "end-of-line"},
	{`\eOA`, "previous-history"},
	{`\eOB`, "next-history"},
	{`\eOC`, "forward-char"},
	{`\eOD`, "backward-char"},
	{`\eOH`, "beginning-of-line"},
	{`\eOF`, "end-of-line"},
	{`\e[3~`, "delete-char"},
}

func installDefaultBindings() {
	for _, b := range [][2]string{
		{`\C-a`, "beginning-of-line"},
		{`\C-b`, "backward-char"},
		{`\C-d`, "delete-char"},
		{`\C-e`, "end-of-line"},
		{`\C-f`, "forward-char"},
		{`\C-g`, "abort"},
		{`\C-h`, "backward-delete-char"},
		{`\C-i`, "tab-insert"},
		{`\C-j`, "accept-line"},
		{`\C-k`, "kill-line"},
		{`\C-l`, "clear-screen"},
		{`\C-m`, "accept-line"},
		{`\C-n`, "next-history"},
		{`\C-p`, "previous-history"},
		{`\C-t`, "transpose-chars"},
		{`\C-u`, "unix-line-discard"},
		{`\C-w`, "unix-word-rubout"},
		{`\C-y`, "yank"},
		{`\C-_`, "undo"},
		{`\C-@`, "set-mark"},
		{`\d`, "backward-delete-char"},
		{`\C-x\C-u`, "undo"},
		{`\C-x\C-x`, "exchange-point-and-mark"},
		{`\C-x\d`, "backward-kill-line"},
		{`\eb`, "backward-word"},
		{`\ef`, "forward-word"},
		{`\ed`, "kill-word"},
		{`\e\d`, "backward-kill-word"},
		{`\eu`, "upcase-word"},
		{`\el`, "downcase-word"},
		{`\ec`, "capitalize-word"},
		{`\ey`, "yank-pop"},
		{`\ew`, "copy-region-as-kill"},
		{`\e<`, "beginning-of-history"},
		{`\e>`, "end-of-history"},
		{`\er`, "revert-line"},
		{`\e\C-j`, "vi-editing-mode"},
	} {
		mustBind(emacsMap, b[0], b[1])
	}

	for _, b := range [][2]string{
		{`\e`, "vi-movement-mode"},
		{`\C-d`, "delete-char"},
		{`\C-h`, "backward-delete-char"},
		{`\C-i`, "tab-insert"},
		{`\C-j`, "accept-line"},
		{`\C-m`, "accept-line"},
		{`\C-t`, "transpose-chars"},
		{`\C-u`, "unix-line-discard"},
		{`\C-w`, "unix-word-rubout"},
		{`\C-y`, "yank"},
		{`\d`, "backward-delete-char"},
	} {
		mustBind(viInsertMap, b[0], b[1])
	}

	for _, b := range [][2]string{
		{`\C-j`, "accept-line"},
		{`\C-m`, "accept-line"},
		{`\C-d`, "delete-char"},
		{`\e`, "do-nothing"},
		{" ", "forward-char"},
		{"h", "backward-char"},
		{"l", "forward-char"},
		{`\d`, "backward-char"},
		{"0", "beginning-of-line"},
		{"^", "vi-first-print"},
		{"$", "vi-eol"},
		{"w", "vi-next-word"},
		{"W", "vi-next-word"},
		{"b", "vi-prev-word"},
		{"B", "vi-prev-word"},
		{"e", "vi-end-word"},
		{"E", "vi-end-word"},
		{"i", "vi-insertion-mode"},
		{"a", "vi-append-mode"},
		{"A", "vi-append-eol"},
		{"I", "vi-insert-beg"},
		{"x", "vi-delete"},
		{"X", "vi-rubout"},
		{"D", "vi-delete-to-eol"},
		{"C", "vi-change-to-eol"},
		{"S", "vi-change-line"},
		{"dd", "vi-delete-line"},
		{"dw", "vi-delete-word"},
		{"db", "vi-delete-prev-word"},
		{"d$", "vi-delete-to-eol"},
		{"d0", "vi-delete-to-bol"},
		{"cw", "vi-change-word"},
		{"c$", "vi-change-to-eol"},
		{"cc", "vi-change-line"},
		{"p", "vi-put"},
		{"P", "vi-put-before"},
		{"u", "vi-undo"},
		{"k", "previous-history"},
		{"-", "previous-history"},
		{"j", "next-history"},
		{"+", "next-history"},
		{`\C-p`, "previous-history"},
		{`\C-n`, "next-history"},
	} {
		mustBind(viCommandMap, b[0], b[1])
	}

	for _, km := range []*Keymap{emacsMap, viInsertMap, viCommandMap} {
		for _, b := range arrowBindings {
			mustBind(km, b[0], b[1])
		}
	}
}
