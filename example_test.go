package rline_test

import (
	"fmt"

	"github.com/dshills/rline"
)

func Example() {
	ctx, err := rline.New()
	if err != nil {
		panic(err)
	}
	defer ctx.Close()

	// Input arrives in arbitrary pieces, here with an edit in between:
	// C-b moves left, C-d deletes the character under the cursor and C-e
	// moves to the end.
	for _, chunk := range []string{"hel", "lo, wordl", "\x02\x02\x04", "\x05d\r"} {
		line, ok, err := ctx.Feed([]byte(chunk))
		if err != nil {
			panic(err)
		}
		if ok {
			fmt.Printf("%s\n", line)
		}
	}
	// Output:
	// hello, world
}

func ExampleContext_Peek() {
	ctx, err := rline.New()
	if err != nil {
		panic(err)
	}
	defer ctx.Close()

	_, _, _ = ctx.Feed([]byte("status\x01"))
	_ = ctx.Peek(func(line []byte, cursor int) {
		fmt.Printf("%q cursor=%d\n", line, cursor)
	})
	// Output:
	// "status" cursor=0
}

func ExampleContext_Reset() {
	ctx, err := rline.New()
	if err != nil {
		panic(err)
	}
	defer ctx.Close()

	if err := ctx.Reset([]byte("copied-and-pasted\x00"), 6, true); err != nil {
		panic(err)
	}
	line, cursor, _ := ctx.State()
	fmt.Printf("%s %d\n", line, cursor)
	// Output:
	// copied-and-pasted 6
}
