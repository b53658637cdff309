//go:build readline

package binding

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"

import "unsafe"

// rlineHandleLine is readline's line handler. A nil line means end of
// input. Readline allocates the line and leaves freeing it to the handler.
//
//export rlineHandleLine
func rlineHandleLine(line *C.char) {
	if line == nil {
		handleLine(nil, true)
		return
	}
	b := C.GoBytes(unsafe.Pointer(line), C.int(C.strlen(line)))
	C.free(unsafe.Pointer(line))
	handleLine(b, false)
}
