//go:build readline && !readline_static

package binding

/*
#cgo linux,amd64 LDFLAGS: -L/usr/lib/x86_64-linux-gnu
#cgo linux,arm64 LDFLAGS: -L/usr/lib/aarch64-linux-gnu
#cgo darwin,arm64 CFLAGS: -I/opt/homebrew/opt/readline/include
#cgo darwin,arm64 LDFLAGS: -L/opt/homebrew/opt/readline/lib
#cgo darwin,amd64 CFLAGS: -I/usr/local/opt/readline/include
#cgo darwin,amd64 LDFLAGS: -L/usr/local/opt/readline/lib
#cgo freebsd CFLAGS: -I/usr/local/include
#cgo freebsd LDFLAGS: -L/usr/local/lib
#cgo LDFLAGS: -lreadline
*/
import "C"
