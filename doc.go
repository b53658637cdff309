// Package rline provides isolated line-editing sessions on top of a single
// shared line-editing engine.
//
// The engine behind rline keeps exactly one editing state per process, the
// way GNU readline does. A Context makes that engine look private: each
// Context owns a snapshot of the engine state and a queue of input bytes,
// and every operation installs the snapshot, drives the engine and captures
// the result again before returning.
//
// The host owns the terminal. It reads raw bytes however it likes, hands
// them to Feed and renders whatever Peek reports:
//
//	ctx, err := rline.New()
//	if err != nil {
//		return err
//	}
//	defer ctx.Close()
//
//	line, ok, err := ctx.Feed(input)
//	if ok {
//		fmt.Printf("accepted %q\n", line)
//	}
//
// # Configuration
//
// The engine is configured once per process, on first use or by an
// explicit call to Init. Key bindings come from an inputrc file using
// readline's syntax; ParseAndBind adds bindings later. Both apply to every
// Context, including those created before.
//
// # Concurrency
//
// The engine is not reentrant. Calls into this package must be
// serialized by the host. Overlapping calls, including calls made from
// inside a Peek observer, panic.
package rline
