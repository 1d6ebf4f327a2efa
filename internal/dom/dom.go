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

// Package dom binds the bootstrap to the page's elements.
package dom

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/justcanvas/canvasboot/internal/boot"
	"github.com/justcanvas/canvasboot/internal/jsutil"
	"github.com/justcanvas/canvasboot/internal/viewport"
)

var ErrNotFound = errors.New("element not found")

// Element is a thin wrapper around a DOM element.
type Element struct {
	elem js.Value
}

// ByID looks up an element by id.
func ByID(id string) (*Element, error) {
	v := jsutil.Document.Call("getElementById", id)
	if v.IsNull() || v.IsUndefined() {
		return nil, fmt.Errorf("#%s: %w", id, ErrNotFound)
	}
	return &Element{v}, nil
}

// Query returns the first element matching selector.
func Query(selector string) (*Element, error) {
	v := jsutil.Document.Call("querySelector", selector)
	if v.IsNull() || v.IsUndefined() {
		return nil, fmt.Errorf("%s: %w", selector, ErrNotFound)
	}
	return &Element{v}, nil
}

func (e *Element) JSValue() js.Value {
	return e.elem
}

func (e *Element) AddClass(class string) {
	e.elem.Get("classList").Call("add", class)
}

func (e *Element) HasClass(class string) bool {
	return e.elem.Get("classList").Call("contains", class).Bool()
}

func (e *Element) SetAttribute(name, value string) {
	e.elem.Call("setAttribute", name, value)
}

func (e *Element) Attribute(name string) string {
	v := e.elem.Call("getAttribute", name)
	if v.IsNull() {
		return ""
	}
	return v.String()
}

// Listen registers fn for the named event. The returned function removes
// the listener.
func (e *Element) Listen(event string, fn func(ev js.Value)) func() {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	e.elem.Call("addEventListener", event, f)
	return func() {
		e.elem.Call("removeEventListener", event, f)
		f.Release()
	}
}

func (e *Element) Remove() {
	e.elem.Call("remove")
}

var _ boot.Surface = (*Canvas)(nil)

// Canvas is the drawing surface.
type Canvas struct {
	*Element
	shownClass string
	unlisten   func()
}

// NewCanvas wraps a canvas element. onContextLost is called when the
// browser frees the canvas' WebGL context, until Close is called.
func NewCanvas(e *Element, shownClass string, onContextLost func()) *Canvas {
	return &Canvas{
		Element:    e,
		shownClass: shownClass,
		unlisten: e.Listen("webglcontextlost", func(js.Value) {
			onContextLost()
		}),
	}
}

// Close removes the context loss listener.
func (c *Canvas) Close() {
	if c.unlisten != nil {
		c.unlisten()
		c.unlisten = nil
	}
}

func (c *Canvas) SetSize(width, height int) {
	c.elem.Set("width", width)
	c.elem.Set("height", height)
}

func (c *Canvas) Show() {
	c.AddClass(c.shownClass)
}

func (c *Canvas) Size() viewport.Size {
	return viewport.Size{
		Width:  c.elem.Get("width").Int(),
		Height: c.elem.Get("height").Int(),
	}
}

var _ boot.Indicator = (*Loader)(nil)

// Loader is the loading indicator.
type Loader struct {
	*Element
	hiddenClass string
}

func NewLoader(e *Element, hiddenClass string) *Loader {
	return &Loader{Element: e, hiddenClass: hiddenClass}
}

// Hide starts the exit transition and removes the element once it ends.
// The page's CSS must give the hidden class a transition, otherwise the
// element stays in the document.
func (l *Loader) Hide() {
	l.elem.Call("addEventListener", "transitionend", jsutil.FuncOnce(func(this js.Value, args []js.Value) any {
		l.Remove()
		return nil
	}))
	l.AddClass(l.hiddenClass)
}

var _ boot.Page = (*Page)(nil)

// Page is the document and its window.
type Page struct {
	window   js.Value
	root     js.Value
	viewport *Element
}

func NewPage(viewportMeta *Element) *Page {
	return &Page{
		window:   js.Global(),
		root:     jsutil.Document.Get("documentElement"),
		viewport: viewportMeta,
	}
}

// ClientSize returns the document's client area. Scrollbars are not
// included.
func (p *Page) ClientSize() viewport.Size {
	return viewport.Size{
		Width:  p.root.Get("clientWidth").Int(),
		Height: p.root.Get("clientHeight").Int(),
	}
}

func (p *Page) DevicePixelRatio() float64 {
	v := p.window.Get("devicePixelRatio")
	if v.Type() != js.TypeNumber {
		return 1
	}
	return v.Float()
}

func (p *Page) SetViewport(content string) {
	p.viewport.SetAttribute("content", content)
}

func (p *Page) Viewport() string {
	return p.viewport.Attribute("content")
}

func (p *Page) Alert(message string) {
	p.window.Call("alert", message)
}

func (p *Page) DarkSchemePreferred() bool {
	return DarkSchemePreferred()
}

// DarkSchemePreferred reports whether the user prefers a dark color scheme.
func DarkSchemePreferred() bool {
	w := js.Global()
	if w.Get("matchMedia").Type() != js.TypeFunction {
		return false
	}
	return w.Call("matchMedia", "(prefers-color-scheme: dark)").Get("matches").Truthy()
}

// OnResize registers fn for window resize events.
func (p *Page) OnResize(fn func()) func() {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	p.window.Call("addEventListener", "resize", f)
	return func() {
		p.window.Call("removeEventListener", "resize", f)
		f.Release()
	}
}

// OnError installs the global error handler. The previous handler is
// restored by the returned function.
func (p *Page) OnError(fn func(message string)) func() {
	prev := p.window.Get("onerror")
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		msg := "unknown error"
		if len(args) > 0 {
			msg = args[0].String()
		}
		fn(msg)
		return nil
	})
	p.window.Set("onerror", f)
	return func() {
		p.window.Set("onerror", prev)
		f.Release()
	}
}

// Reload reloads the page.
func (p *Page) Reload() {
	p.window.Get("location").Call("reload")
}
