// MIT License
//
// Copyright (c) 2025 TTBT Enterprises LLC
// Copyright (c) 2025 Robin Thellend <rthellend@rthellend.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

//go:build wasm

// Package terminal runs a line editor on top of an xterm.js terminal.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"syscall/js"

	"golang.org/x/term"

	"github.com/justcanvas/canvasboot/internal/jsutil"
)

var ErrClosed = errors.New("terminal is closed")

// New attaches to xt, an xterm.js Terminal object.
func New(ctx context.Context, xt js.Value, prompt string) *Terminal {
	t := &Terminal{
		ctx:     ctx,
		xt:      xt,
		prompt:  prompt,
		dataCh:  make(chan []byte, 100),
		closeCh: make(chan struct{}),
	}
	t.vt = term.NewTerminal(t, "")
	t.setDefaultPrompt()

	onData := js.FuncOf(func(this js.Value, args []js.Value) any {
		k := args[0].String()
		for _, h := range t.handlers {
			if r := (*h)(k); r != "" {
				k = r
				break
			}
		}
		select {
		case <-t.ctx.Done():
			return t.Close()
		case <-t.closeCh:
		case t.dataCh <- []byte(k):
		}
		return nil
	})
	t.funcs = append(t.funcs, onData)
	t.dispose = append(t.dispose, xt.Call("onData", onData))

	onResize := js.FuncOf(func(this js.Value, args []js.Value) any {
		event := args[0]
		t.vt.SetSize(event.Get("cols").Int(), event.Get("rows").Int())
		return nil
	})
	t.funcs = append(t.funcs, onResize)
	t.dispose = append(t.dispose, xt.Call("onResize", onResize))

	t.vt.SetSize(t.Cols(), t.Rows())
	return t
}

var _ io.ReadWriteCloser = (*Terminal)(nil)

type Terminal struct {
	ctx     context.Context
	xt      js.Value // xterm.Terminal
	vt      *term.Terminal
	prompt  string
	dataCh  chan []byte
	closeCh chan struct{}
	r       []byte

	// handlers can replace a key sequence before it reaches the line
	// editor. They run on the JS event loop.
	handlers []*func(string) string
	dispose  []js.Value
	funcs    []js.Func
}

func (t *Terminal) setDefaultPrompt() {
	t.vt.SetPrompt(string(t.vt.Escape.Green) + t.prompt + string(t.vt.Escape.Reset))
}

// OnKey registers a key handler. A non-empty return value replaces the key
// sequence. The returned function removes the handler.
func (t *Terminal) OnKey(h func(string) string) func() {
	p := &h
	t.handlers = append(t.handlers, p)
	return func() {
		t.handlers = slices.DeleteFunc(t.handlers, func(v *func(string) string) bool { return v == p })
	}
}

func (t *Terminal) isClosed() bool {
	select {
	case <-t.closeCh:
		return true
	default:
		return false
	}
}

func (t *Terminal) Close() error {
	if t.isClosed() {
		return nil
	}
	close(t.closeCh)
	for _, d := range t.dispose {
		d.Call("dispose")
	}
	t.dispose = nil
	for _, f := range t.funcs {
		f.Release()
	}
	t.funcs = nil
	return nil
}

func (t *Terminal) Read(b []byte) (int, error) {
	if t.isClosed() {
		return 0, ErrClosed
	}
	if len(t.r) == 0 {
		select {
		case <-t.ctx.Done():
			return 0, t.ctx.Err()
		case <-t.closeCh:
			return 0, ErrClosed
		case t.r = <-t.dataCh:
		}
	}
	n := copy(b, t.r)
	t.r = t.r[n:]
	return n, nil
}

func (t *Terminal) Write(b []byte) (int, error) {
	if t.isClosed() {
		return 0, ErrClosed
	}
	t.xt.Call("write", jsutil.Uint8ArrayFromBytes(b))
	return len(b), nil
}

func (t *Terminal) Printf(f string, args ...any) {
	t.xt.Call("write", js.ValueOf(strings.ReplaceAll(fmt.Sprintf(f, args...), "\n", "\r\n")))
}

func (t *Terminal) Errorf(f string, args ...any) {
	t.Printf("%s%s%s\n", t.vt.Escape.Red, fmt.Sprintf(f, args...), t.vt.Escape.Reset)
}

func (t *Terminal) Greenf(f string, args ...any) {
	t.Printf("%s%s%s", t.vt.Escape.Green, fmt.Sprintf(f, args...), t.vt.Escape.Reset)
}

func (t *Terminal) Focus() {
	t.xt.Call("focus")
}

func (t *Terminal) Clear() {
	t.xt.Call("clear")
}

func (t *Terminal) Rows() int {
	return t.xt.Get("rows").Int()
}

func (t *Terminal) Cols() int {
	return t.xt.Get("cols").Int()
}

func (t *Terminal) SetAutoComplete(f func(line string, pos int, key rune) (string, int, []string, bool)) {
	t.vt.AutoCompleteCallback = func(line string, pos int, key rune) (string, int, bool) {
		newLine, newPos, options, ok := f(line, pos, key)
		if len(options) > 0 {
			t.Printf("\n%s\n", strings.Join(options, "  "))
		}
		return newLine, newPos, ok
	}
}

func (t *Terminal) Prompt(prompt string) (line string, err error) {
	t.vt.SetPrompt(prompt)
	defer t.setDefaultPrompt()
	return t.ReadLine()
}

func (t *Terminal) Confirm(prompt string, defaultYes bool) bool {
	if defaultYes {
		prompt += " [Y/n] "
	} else {
		prompt += " [y/N] "
	}
	line, err := t.Prompt(prompt)
	if err != nil {
		return false
	}
	switch strings.ToUpper(strings.TrimSpace(line)) {
	case "Y", "YES":
		return true
	case "N", "NO":
		return false
	default:
		return defaultYes
	}
}

func (t *Terminal) ReadLine() (line string, err error) {
	line, err = t.vt.ReadLine()
	line = strings.TrimRight(line, "\r\n")
	return
}
