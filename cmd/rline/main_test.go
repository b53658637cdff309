package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/rline"
)

func TestMain(m *testing.M) {
	cfg := rline.DefaultConfig()
	cfg.SkipInputrc = true
	if err := rline.Init(cfg); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestDisplayColumn(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		cursor int
		want   int
	}{
		{"empty", "", 0, 2},
		{"ascii", "hello", 3, 5},
		{"wide", "日本", len("日"), 4},
		{"combining", "éx", len("é"), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, displayColumn("> ", []byte(tt.line), tt.cursor))
		})
	}
}

func TestEdit(t *testing.T) {
	ctx, err := rline.New()
	require.NoError(t, err)
	defer ctx.Close()

	var out bytes.Buffer
	require.NoError(t, edit(ctx, strings.NewReader("hi\rthere\x03ignored"), &out, "$ "))

	assert.Contains(t, out.String(), "$ hi\r\n\"hi\"\r\n")
	line, _, err := ctx.State()
	require.NoError(t, err)
	assert.Equal(t, "there", string(line))
}
