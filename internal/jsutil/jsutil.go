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

package jsutil

import (
	"fmt"
	"syscall/js"
)

var (
	Uint8Array = js.Global().Get("Uint8Array")
	Error      = js.Global().Get("Error")
	Array      = js.Global().Get("Array")
	Object     = js.Global().Get("Object")
	Promise    = js.Global().Get("Promise")
	Blob       = js.Global().Get("Blob")
	URL        = js.Global().Get("URL")
	JSON       = js.Global().Get("JSON")
	Document   = js.Global().Get("document")
	Body       = Document.Get("body")
)

func TryCatch(try func(), catch func(any)) {
	defer func() {
		if e := recover(); e != nil {
			catch(e)
		}
	}()
	try()
}

func NewObject(m map[string]any) js.Value {
	obj := Object.New()
	for k, v := range m {
		obj.Set(k, v)
	}
	return obj
}

func NewArray(a []any) js.Value {
	arr := Array.New()
	for _, v := range a {
		arr.Call("push", v)
	}
	return arr
}

// Strings converts a JS array of strings.
func Strings(v js.Value) []string {
	if v.Type() != js.TypeObject {
		return nil
	}
	out := make([]string, 0, v.Length())
	for i := 0; i < v.Length(); i++ {
		out = append(out, v.Index(i).String())
	}
	return out
}

// Stringify returns the JSON text of v. Strings are returned as is.
func Stringify(v js.Value) string {
	if v.Type() == js.TypeString {
		return v.String()
	}
	return JSON.Call("stringify", v).String()
}

func NewRejectedPromise(err error) js.Value {
	return Promise.Call("reject", Error.New(err.Error()))
}

func NewPromise(f func() (any, error)) js.Value {
	return Promise.New(js.FuncOf(
		func(this js.Value, args []js.Value) any {
			resolve := args[0]
			reject := args[1]
			go func() {
				v, err := f()
				if err != nil {
					reject.Invoke(Error.New(err.Error()))
					return
				}
				resolve.Invoke(v)
			}()
			return nil
		},
	))
}

// Await waits for p to settle. Values that are not thenable are returned
// immediately.
func Await(p js.Value) (js.Value, error) {
	if p.Type() != js.TypeObject {
		return p, nil
	}
	if then := p.Get("then"); then.Type() != js.TypeFunction {
		return p, nil
	}
	v := make(chan js.Value, 1)
	e := make(chan error, 1)
	resolve := js.FuncOf(func(this js.Value, args []js.Value) any {
		var r js.Value
		if len(args) > 0 {
			r = args[0]
		}
		v <- r
		return nil
	})
	defer resolve.Release()
	reject := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 && args[0].Type() == js.TypeObject && args[0].Get("message").Type() == js.TypeString {
			e <- fmt.Errorf("%s", args[0].Get("message").String())
			return nil
		}
		e <- fmt.Errorf("%v", args)
		return nil
	})
	defer reject.Release()
	p.Call("then", resolve, reject)
	select {
	case value := <-v:
		return value, nil
	case err := <-e:
		return js.Value{}, err
	}
}

// FuncOnce returns a function that releases itself after its first call.
func FuncOnce(fn func(this js.Value, args []js.Value) any) js.Func {
	var f js.Func
	f = js.FuncOf(func(this js.Value, args []js.Value) any {
		f.Release()
		return fn(this, args)
	})
	return f
}

func Uint8ArrayFromBytes(in []byte) js.Value {
	out := Uint8Array.New(js.ValueOf(len(in)))
	js.CopyBytesToJS(out, in)
	return out
}

func Uint8ArrayToBytes(v js.Value) []byte {
	b := make([]byte, v.Length())
	js.CopyBytesToGo(b, v)
	return b
}

func ExportFile(data []byte, filename, mimeType string) error {
	blobOpts := Object.New()
	blobOpts.Set("type", mimeType)
	blob := Blob.New(Array.New(Uint8ArrayFromBytes(data)), blobOpts)

	anchor := Document.Call("createElement", "a")
	anchor.Set("href", URL.Call("createObjectURL", blob))
	anchor.Call("setAttribute", "download", js.ValueOf(filename))
	Body.Call("appendChild", anchor)
	anchor.Call("click")
	Body.Call("removeChild", anchor)
	return nil
}
