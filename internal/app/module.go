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

package app

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/justcanvas/canvasboot/internal/boot"
	"github.com/justcanvas/canvasboot/internal/jsutil"
)

// moduleConfig returns the object handed to the module loader. The loader
// reports its progress through the callbacks, and the module writes its
// output through print and printErr.
func (a *App) moduleConfig() js.Value {
	fn := func(f func(args []js.Value)) js.Func {
		jf := js.FuncOf(func(this js.Value, args []js.Value) any {
			f(args)
			return nil
		})
		a.undo = append(a.undo, jf.Release)
		return jf
	}
	args := make([]any, 0, len(a.cfg.Arguments))
	for _, v := range a.cfg.Arguments {
		args = append(args, v)
	}
	return jsutil.NewObject(map[string]any{
		"canvas":        a.canvas.JSValue(),
		"arguments":     jsutil.NewArray(args),
		"noExitRuntime": a.cfg.NoExitRuntime,
		"noInitialRun":  *a.cfg.NoInitialRun,
		"print": fn(func(args []js.Value) {
			a.sink.Info(texts(args)...)
		}),
		"printErr": fn(func(args []js.Value) {
			a.sink.Error(texts(args)...)
		}),
		"onRuntimeInitialized": fn(func([]js.Value) {
			a.adapter.OnRuntimeInitialized()
		}),
		"monitorRunDependencies": fn(func(args []js.Value) {
			left := 0
			if len(args) > 0 && args[0].Type() == js.TypeNumber {
				left = args[0].Int()
			}
			a.adapter.MonitorRunDependencies(left)
		}),
	})
}

// texts converts JS values the way String() would.
func texts(args []js.Value) []any {
	out := make([]any, len(args))
	for i, v := range args {
		if v.Type() == js.TypeString {
			out[i] = v.String()
			continue
		}
		out[i] = js.Global().Call("String", v).String()
	}
	return out
}

var _ boot.Module = jsModule{}

// jsModule is a module instance created by the loader.
type jsModule struct {
	v js.Value
}

func (m jsModule) CallMain(args []string) (err error) {
	if m.v.Get("callMain").Type() != js.TypeFunction {
		return errors.New("module has no callMain function")
	}
	a := make([]any, 0, len(args))
	for _, v := range args {
		a = append(a, v)
	}
	jsutil.TryCatch(
		func() { // try
			ret := m.v.Call("callMain", jsutil.NewArray(a))
			if ret.Type() == js.TypeNumber && ret.Int() != 0 {
				err = fmt.Errorf("exit status %d", ret.Int())
			}
		},
		func(e any) { // catch
			err = fmt.Errorf("%v", e)
		},
	)
	return err
}
