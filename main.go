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

package main

import (
	"log"
	"syscall/js"

	app "github.com/justcanvas/canvasboot/internal"
	"github.com/justcanvas/canvasboot/internal/logsink"
)

func main() {
	canvasApp := js.Global().Get("canvasApp")
	if canvasApp.Type() != js.TypeObject {
		panic("canvasApp object not found")
	}
	ready := canvasApp.Get("bootIsReady")
	if ready.Type() != js.TypeFunction {
		panic("canvasApp.bootIsReady not found")
	}

	sink := logsink.New()
	log.SetFlags(0)
	log.SetOutput(sink.Stderr())

	s := &app.Starter{Sink: sink}
	canvasApp.Set("start", js.FuncOf(s.Start))
	canvasApp.Set("log", js.FuncOf(s.Log))
	canvasApp.Set("darkScheme", js.FuncOf(s.DarkScheme))
	ready.Invoke()
	<-make(chan struct{})
}
