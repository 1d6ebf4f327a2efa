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

// Package websocket is a message oriented client for the browser's
// WebSocket API.
package websocket

import (
	"context"
	"errors"
	"fmt"
	"io"
	"syscall/js"

	"github.com/justcanvas/canvasboot/internal/jsutil"
)

var (
	ErrClosed         = errors.New("websocket is closed")
	ErrClosedByServer = errors.New("websocket closed by server")
)

// Dial opens a WebSocket to url and waits until it is open.
func Dial(ctx context.Context, url string) (*Conn, error) {
	c := &Conn{
		ws:      js.Global().Get("WebSocket").New(url),
		ch:      make(chan string, 100),
		closeCh: make(chan struct{}),
	}
	c.ws.Set("binaryType", "arraybuffer")

	openCh := make(chan error, 1)
	c.listen("open", func(js.Value) {
		select {
		case openCh <- nil:
		default:
		}
	})
	c.listen("error", func(js.Value) {
		select {
		case openCh <- fmt.Errorf("websocket error: %s", url):
		default:
		}
		c.Close()
	})
	c.listen("close", func(js.Value) {
		if !c.isClosed() {
			c.err = ErrClosedByServer
		}
		c.Close()
		for _, f := range c.funcs {
			f.Release()
		}
	})
	c.listen("message", func(event js.Value) {
		data := event.Get("data")
		var msg string
		if data.Type() == js.TypeString {
			msg = data.String()
		} else {
			msg = string(jsutil.Uint8ArrayToBytes(jsutil.Uint8Array.New(data)))
		}
		select {
		case <-c.closeCh:
		case c.ch <- msg:
		}
	})

	select {
	case <-ctx.Done():
		c.Close()
		return nil, ctx.Err()
	case err := <-openCh:
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

var _ io.WriteCloser = (*Conn)(nil)

type Conn struct {
	ws      js.Value // WebSocket
	ch      chan string
	closeCh chan struct{}
	err     error
	funcs   []js.Func
}

func (c *Conn) listen(event string, fn func(js.Value)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn(args[0])
		return nil
	})
	c.funcs = append(c.funcs, f)
	c.ws.Call("addEventListener", event, f)
}

func (c *Conn) isClosed() bool {
	select {
	case <-c.closeCh:
		return true
	default:
		return false
	}
}

// Close closes the connection. The listeners are released when the browser
// fires the close event.
func (c *Conn) Close() error {
	if c.isClosed() {
		return nil
	}
	if c.err == nil {
		c.err = ErrClosed
	}
	close(c.closeCh)
	c.ws.Call("close")
	return nil
}

// Send sends msg as one text message.
func (c *Conn) Send(msg string) error {
	if c.isClosed() {
		return c.err
	}
	c.ws.Call("send", msg)
	return nil
}

// Write sends b as one text message.
func (c *Conn) Write(b []byte) (int, error) {
	if err := c.Send(string(b)); err != nil {
		return 0, err
	}
	return len(b), nil
}

// Recv waits for the next message.
func (c *Conn) Recv(ctx context.Context) (string, error) {
	select {
	case msg := <-c.ch:
		return msg, nil
	default:
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-c.closeCh:
		return "", c.err
	case msg := <-c.ch:
		return msg, nil
	}
}
