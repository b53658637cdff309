//go:build readline

package binding

/*
#include <stdio.h>
#include <stdlib.h>
#include <string.h>
#include <readline/readline.h>
#include <readline/history.h>

// Size of the key sequence buffer readline allocates for itself.
#define RLINE_KEYSEQ_SIZE 16

extern void rlineHandleLine(char *line);

static struct readline_state rline_template;

static int rline_input_available(void) { return 0; }
static void rline_display(void) {}
static void rline_prep_term(int meta) { (void)meta; }
static void rline_deprep_term(void) {}
static void rline_handler(char *line) { rlineHandleLine(line); }

// rline_hook_terminal keeps readline away from the terminal and signals
// and installs the line handler. The handler is never removed.
static void rline_hook_terminal(void) {
	rl_readline_name = "rline";
	rl_catch_signals = 0;
	rl_catch_sigwinch = 0;
	rl_input_available_hook = rline_input_available;
	rl_redisplay_function = rline_display;
	rl_prep_term_function = rline_prep_term;
	rl_deprep_term_function = rline_deprep_term;
	rl_callback_handler_install(NULL, rline_handler);
	rl_variable_bind("keyseq-timeout", "0");
}

// rline_detach forgets the live buffers without freeing them.
static void rline_detach(void) {
	rl_line_buffer = NULL;
	rl_executing_keyseq = NULL;
	rl_undo_list = NULL;
	rl_point = 0;
	rl_end = 0;
	rl_mark = 0;
}

// rline_save_template drops the buffers readline allocated for itself and
// records the remaining state as the template for new sessions.
static int rline_save_template(void) {
	free(rl_line_buffer);
	free(rl_executing_keyseq);
	rline_detach();
	return rl_save_state(&rline_template);
}

// rline_state_new fills dst with fresh session state built from the
// template. The engine is left detached.
static int rline_state_new(struct readline_state *dst) {
	struct readline_state st = rline_template;
	if (rl_restore_state(&st) != 0) {
		return -1;
	}
	rl_line_buffer = calloc(1, rl_line_buffer_len);
	rl_executing_keyseq = calloc(1, RLINE_KEYSEQ_SIZE);
	if (rl_line_buffer == NULL || rl_executing_keyseq == NULL) {
		free(rl_line_buffer);
		free(rl_executing_keyseq);
		rline_detach();
		return -1;
	}
	// Restoring again updates readline's internal alias of the buffer.
	if (rl_save_state(dst) != 0 || rl_restore_state(dst) != 0 || rl_save_state(dst) != 0) {
		return -1;
	}
	rline_detach();
	return 0;
}

// rline_state_free releases the buffers and undo list owned by s.
static void rline_state_free(struct readline_state *s) {
	rl_restore_state(s);
	rl_free_undo_list();
	free(rl_executing_keyseq);
	free(rl_line_buffer);
	rline_detach();
}

static void rline_replace_recorded(const char *text) {
	rl_begin_undo_group();
	rl_delete_text(0, rl_end);
	rl_point = 0;
	rl_insert_text(text);
	rl_end_undo_group();
}

// rline_unbind returns 1 if keys was bound and is now unbound, 0 if it was
// not bound and -1 on error.
static int rline_unbind(const char *keys) {
	int len = 0;
	char *raw = malloc(2 * strlen(keys) + 1);
	if (raw == NULL) {
		return -1;
	}
	if (rl_translate_keyseq(keys, raw, &len) != 0) {
		free(raw);
		return -1;
	}
	raw[len] = '\0';
	int type = 0;
	rl_command_func_t *fn = rl_function_of_keyseq(raw, NULL, &type);
	free(raw);
	if (fn == NULL) {
		return 0;
	}
	return rl_bind_keyseq(keys, NULL) == 0 ? 1 : -1;
}

static int rline_history_length(void) { return history_length; }
*/
import "C"

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"syscall"
	"unicode/utf8"
	"unsafe"

	"go.uber.org/zap"

	"github.com/dshills/rline/internal/logging"
)

// Backend names the engine implementation compiled in.
const Backend = "readline"

// buffersPerState counts the C allocations a fresh session owns.
const buffersPerState = 2

var (
	// liveAllocs counts session buffers allocated and not yet freed. The
	// undo list is managed by readline and not counted.
	liveAllocs atomic.Int64

	maxLineLength int
)

// Snapshot is one session's engine state while it is not installed.
type Snapshot struct {
	st    C.struct_readline_state
	owned bool
}

// NewSnapshot returns fresh session state built from the state readline
// had right after initialization. The engine must not have a session
// installed.
func NewSnapshot() *Snapshot {
	s := &Snapshot{}
	if C.rline_state_new(&s.st) != 0 {
		panic("binding: readline failed to create session state")
	}
	s.owned = true
	liveAllocs.Add(buffersPerState)
	return s
}

// Empty reports whether s owns no engine storage.
func (s *Snapshot) Empty() bool {
	return !s.owned
}

// Busy reports whether s has keys queued inside the engine. Readline
// consumes everything it was handed within one read, so it never has.
func (s *Snapshot) Busy() bool {
	return false
}

// Capture moves the live engine state into dst and detaches the engine.
func Capture(dst *Snapshot) {
	C.rl_save_state(&dst.st)
	dst.owned = C.rl_line_buffer != nil
	C.rline_detach()
}

// Install makes src the live engine state. src is empty afterwards.
func Install(src *Snapshot) {
	C.rl_restore_state(&src.st)
	src.st = C.struct_readline_state{}
	src.owned = false
}

// Release frees everything s owns. The engine must not have a session
// installed.
func Release(s *Snapshot) {
	if !s.owned {
		return
	}
	C.rline_state_free(&s.st)
	s.st = C.struct_readline_state{}
	s.owned = false
	liveAllocs.Add(-buffersPerState)
}

func initialize(opts InitOptions) error {
	if opts.MaxLineLength < 0 {
		return &InitError{Err: fmt.Errorf("negative max line length %d", opts.MaxLineLength)}
	}
	maxLineLength = opts.MaxLineLength

	// Readline reads its default init file while installing the handler.
	// Point it at nothing and read the configured file explicitly.
	prev, had := os.LookupEnv("INPUTRC")
	if err := os.Setenv("INPUTRC", os.DevNull); err != nil {
		return &InitError{Err: err}
	}
	C.rline_hook_terminal()
	if had {
		_ = os.Setenv("INPUTRC", prev)
	} else {
		_ = os.Unsetenv("INPUTRC")
	}

	if opts.EditingMode != "" {
		if opts.EditingMode != "emacs" && opts.EditingMode != "vi" {
			return &InitError{Err: fmt.Errorf("invalid editing mode %q", opts.EditingMode)}
		}
		if err := variableBind("editing-mode", opts.EditingMode); err != nil {
			return &InitError{Err: err}
		}
	}
	if opts.HistorySize > 0 {
		C.stifle_history(C.int(opts.HistorySize))
	} else {
		C.unstifle_history()
	}

	if opts.Inputrc != "" {
		path := C.CString(opts.Inputrc)
		rc := C.rl_read_init_file(path)
		C.free(unsafe.Pointer(path))
		if rc != 0 {
			if err := classifyInitFileError(opts.Inputrc, syscall.Errno(rc)); err != nil {
				return err
			}
		}
	}

	if C.rline_save_template() != 0 {
		return &InitError{Err: errors.New("readline refused to save its state")}
	}
	return nil
}

// Readline prints init file syntax errors itself and does not report them.
func isParseError(error) bool {
	return false
}

func variableBind(name, value string) error {
	cname, cvalue := C.CString(name), C.CString(value)
	defer C.free(unsafe.Pointer(cname))
	defer C.free(unsafe.Pointer(cvalue))
	if C.rl_variable_bind(cname, cvalue) != 0 {
		return fmt.Errorf("%w: set %s %s", ErrBind, name, value)
	}
	return nil
}

// InvokeReadChar hands one character from the attached queue to readline.
func InvokeReadChar() (Result, error) {
	r, err := nextRune()
	switch {
	case err == nil:
	case errors.Is(err, errNoInput):
		return Result{Status: Drained}, nil
	case errors.Is(err, ErrEncoding):
		return Result{}, err
	default:
		return Result{}, &FatalError{Op: "read char", Err: err}
	}

	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	for _, b := range buf[:n] {
		if C.rl_stuff_char(C.int(b)) == 0 {
			return Result{}, &FatalError{Op: "read char", Err: errors.New("readline input buffer overflowed")}
		}
	}
	C.rl_callback_read_char()

	if res, ok := takeCompleted(); ok {
		return res, nil
	}
	enforceMaxLineLength()
	return Result{Status: Continuing}, nil
}

// enforceMaxLineLength trims the live line back to the configured limit.
// Readline has no such limit of its own, so the excess is removed after
// the edit that produced it.
func enforceMaxLineLength() {
	if maxLineLength <= 0 || int(C.rl_end) <= maxLineLength {
		return
	}
	line, _ := LineState()
	cut := maxLineLength
	for cut > 0 && !utf8.RuneStart(line[cut]) {
		cut--
	}
	C.rl_delete_text(C.int(cut), C.rl_end)
	if C.rl_point > C.rl_end {
		C.rl_point = C.rl_end
	}
	logging.Named("binding").Debug("line truncated", zap.Int("limit", maxLineLength))
}

// LineState returns a copy of the live line and the cursor as a byte
// offset.
func LineState() ([]byte, int) {
	if C.rl_line_buffer == nil {
		return nil, 0
	}
	return C.GoBytes(unsafe.Pointer(C.rl_line_buffer), C.rl_end), int(C.rl_point)
}

// ReplaceLine replaces the live line. Unless clearUndo is set the
// replacement is recorded as a single undoable step.
func ReplaceLine(line []byte, clearUndo bool) error {
	if maxLineLength > 0 && len(line) > maxLineLength {
		return &FatalError{Op: "replace line", Err: fmt.Errorf("%d bytes exceed the limit of %d", len(line), maxLineLength)}
	}
	text := C.CString(string(line))
	defer C.free(unsafe.Pointer(text))
	if clearUndo {
		C.rl_replace_line(text, 1)
	} else {
		C.rline_replace_recorded(text)
	}
	if C.rl_point > C.rl_end {
		C.rl_point = C.rl_end
	}
	return nil
}

// SetCursor moves the cursor to byte offset pos.
func SetCursor(pos int) error {
	if pos < 0 || pos > int(C.rl_end) {
		return &FatalError{Op: "set cursor", Err: fmt.Errorf("position %d outside line of %d bytes", pos, int(C.rl_end))}
	}
	C.rl_point = C.int(pos)
	return nil
}

// LiveAllocations returns the number of session buffers not yet freed.
func LiveAllocations() int64 {
	return liveAllocs.Load()
}

// AddHistory appends line to the shared history.
func AddHistory(line string) {
	cline := C.CString(line)
	defer C.free(unsafe.Pointer(cline))
	C.add_history(cline)
}

// ClearHistory removes every history entry.
func ClearHistory() {
	C.clear_history()
}

// HistoryLen returns the number of history entries.
func HistoryLen() int {
	return int(C.rline_history_length())
}

// ReadHistory appends the entries stored in the file at path.
func ReadHistory(path string) error {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	if rc := C.read_history(cpath); rc != 0 {
		return &os.PathError{Op: "read history", Path: path, Err: syscall.Errno(rc)}
	}
	return nil
}

// WriteHistory stores the history in the file at path.
func WriteHistory(path string) error {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	if rc := C.write_history(cpath); rc != 0 {
		return &os.PathError{Op: "write history", Path: path, Err: syscall.Errno(rc)}
	}
	return nil
}

// ParseAndBind applies one inputrc line to the engine.
func ParseAndBind(line string) error {
	cline := C.CString(line)
	defer C.free(unsafe.Pointer(cline))
	if C.rl_parse_and_bind(cline) != 0 {
		return fmt.Errorf("%w: %q", ErrBind, line)
	}
	return nil
}

// UnbindKeySeq removes the binding of an inputrc key sequence. It reports
// whether anything was bound.
func UnbindKeySeq(keys string) (bool, error) {
	ckeys := C.CString(keys)
	defer C.free(unsafe.Pointer(ckeys))
	switch C.rline_unbind(ckeys) {
	case 1:
		return true, nil
	case 0:
		return false, nil
	default:
		return false, fmt.Errorf("%w: key sequence %q", ErrBind, keys)
	}
}
