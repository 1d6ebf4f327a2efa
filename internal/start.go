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

package internal

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall/js"

	"github.com/justcanvas/canvasboot/config"
	"github.com/justcanvas/canvasboot/internal/app"
	"github.com/justcanvas/canvasboot/internal/dom"
	"github.com/justcanvas/canvasboot/internal/jsutil"
	"github.com/justcanvas/canvasboot/internal/logsink"
)

// Starter implements canvasApp.start(). All the sessions it starts write to
// the same sink.
type Starter struct {
	Sink *logsink.Sink
}

// Start parses {config, loadModule, term} and returns a Promise that
// resolves once the module's main function was called, or once the debug
// console exits if a terminal was given.
func (s *Starter) Start(this js.Value, args []js.Value) (result any) {
	if s.Sink == nil {
		s.Sink = logsink.New()
	}
	defer func() {
		switch v := result.(type) {
		case error:
			s.Sink.Error("start:", v)
			jsErr := jsutil.Error.New(fmt.Sprintf("Start: %v", v))
			result = jsutil.Promise.Call("reject", jsErr)
		default:
		}
	}()
	if n := len(args); n != 1 {
		return fmt.Errorf("expected one argument, got %d", n)
	}
	if args[0].Type() != js.TypeObject {
		return errors.New("args[0] should be an Object")
	}
	arg := args[0]

	if f := arg.Get("loadModule"); f.Type() != js.TypeFunction {
		return errors.New("loadModule function is missing")
	}
	term := arg.Get("term")
	switch term.Type() {
	case js.TypeObject, js.TypeUndefined, js.TypeNull:
	default:
		return errors.New("term should be an xterm.js Terminal")
	}

	var text string
	if c := arg.Get("config"); c.Truthy() {
		text = jsutil.Stringify(c)
	}
	parsed, err := config.Parse(strings.NewReader(text))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg := &app.Config{
		Config:     *parsed,
		LoadModule: arg.Get("loadModule"),
		Sink:       s.Sink,
	}
	if term.Type() == js.TypeObject {
		cfg.Term = term
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	return jsutil.NewPromise(func() (any, error) {
		if err := a.Load(); err != nil {
			return nil, err
		}
		if cfg.Term.Type() != js.TypeObject {
			return "started", nil
		}
		for {
			if err = a.Run(); err != io.EOF {
				break
			}
		}
		return "exited", err
	})
}

// DarkScheme implements canvasApp.darkScheme().
func (s *Starter) DarkScheme(this js.Value, args []js.Value) any {
	return dom.DarkSchemePreferred()
}

// Log implements canvasApp.log(). It returns the whole sink as text.
func (s *Starter) Log(this js.Value, args []js.Value) any {
	return s.Sink.String()
}
