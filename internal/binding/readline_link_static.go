//go:build readline && readline_static

package binding

/*
#cgo linux,amd64 LDFLAGS: -L/usr/lib/x86_64-linux-gnu
#cgo linux,arm64 LDFLAGS: -L/usr/lib/aarch64-linux-gnu
#cgo linux LDFLAGS: -Wl,-Bstatic -lreadline -ltinfo -Wl,-Bdynamic
#cgo darwin,arm64 CFLAGS: -I/opt/homebrew/opt/readline/include
#cgo darwin,arm64 LDFLAGS: /opt/homebrew/opt/readline/lib/libreadline.a -lncurses
#cgo darwin,amd64 CFLAGS: -I/usr/local/opt/readline/include
#cgo darwin,amd64 LDFLAGS: /usr/local/opt/readline/lib/libreadline.a -lncurses
#cgo freebsd CFLAGS: -I/usr/local/include
#cgo freebsd LDFLAGS: /usr/local/lib/libreadline.a -lncurses
*/
import "C"
