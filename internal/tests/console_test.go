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

package tests

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/justcanvas/canvasboot/config"
	"github.com/justcanvas/canvasboot/internal/app"
)

const prompt = "canvas> "

type line struct {
	Type   string
	Expect string
	Reset  bool
	Do     func([]string)
	Wait   time.Duration
}

func script(t *testing.T, lines []line) {
	t.Helper()
	for n, line := range lines {
		if line.Reset {
			t.Logf("[%2d] Reset", n)
			terminalIO.Reset()
		}
		if line.Wait != 0 {
			t.Logf("[%2d] Wait: %s", n, line.Wait)
			time.Sleep(line.Wait)
		}
		if line.Type != "" {
			t.Logf("[%2d] Type: %q", n, line.Type)
			terminalIO.Type(line.Type)
		}
		if line.Expect != "" {
			t.Logf("[%2d] Expect: %q", n, line.Expect)
			m := terminalIO.Expect(t, line.Expect)
			if line.Do != nil {
				line.Do(m)
			}
		}
	}
}

// console starts the debug console of a booted app.
func console(t *testing.T, modify func(*config.Config)) (*app.App, <-chan error) {
	t.Helper()
	newPage(t)
	l := newLoader(t)
	a := newApp(t, l, modify)
	loaded := load(a)
	call := l.next(t)
	call.config.Call("monitorRunDependencies", 0)
	call.config.Call("onRuntimeInitialized")
	call.resolve.Invoke(l.module(t, 0))
	if err := wait(t, loaded); err != nil {
		t.Fatalf("Load: %v", err)
	}

	result := make(chan error, 1)
	go func() {
		result <- a.Run()
	}()
	return a, result
}

func exited(t *testing.T, result <-chan error) {
	t.Helper()
	select {
	case err := <-result:
		if err != nil {
			t.Fatalf("Run(): %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return")
	}
}

func TestHelp(t *testing.T) {
	_, result := console(t, nil)
	script(t, []line{
		{Expect: prompt},
		{Type: "help\n", Expect: "(?s)clear.*log.*reload.*set.*status.*viewport.*> "},
		{Type: "help shortcuts\n", Expect: "(?s)clear.*CTRL-L.*> "},
		{Type: "frobnicate\n", Expect: `Unknown command "frobnicate"`},
		{Expect: prompt},
		{Type: "exit\n", Expect: "Goodbye"},
	})
	exited(t, result)
}

func TestStatus(t *testing.T) {
	_, result := console(t, nil)
	script(t, []line{
		{Expect: prompt},
		{Type: "status\n", Expect: `(?s)State: +initialized.*Dependencies: +0.*Runtime: +yes.*Main called: +yes.*Fit on: +runtime.*> `},
		{Type: "exit\n"},
	})
	exited(t, result)
}

func TestViewport(t *testing.T) {
	a, result := console(t, func(cfg *config.Config) {
		cfg.MaxPixelRatio = 1
	})
	st := a.Adapter().Status()
	script(t, []line{
		{Expect: prompt},
		{Type: "viewport\n", Expect: `(?s)Device pixel ratio: .*Effective ratio: +1\r\n.*Scale: +1\r\n.*initial-scale=1\r\n.*Canvas: +\d+x\d+.*> `},
		{Type: "viewport fit\n", Expect: `(?s)Canvas: +(\d+)x(\d+).*> `, Do: func(m []string) {
			if want := strconv.Itoa(st.Size.Width) + "x" + strconv.Itoa(st.Size.Height); m[1]+"x"+m[2] != want {
				t.Errorf("canvas = %sx%s, want %s", m[1], m[2], want)
			}
		}},
		{Type: "exit\n"},
	})
	exited(t, result)
}

func TestLog(t *testing.T) {
	_, result := console(t, nil)
	sink.Info("marker", 1)
	sink.Info("marker", 2)
	downloadCh := fileDownloader.wait()
	script(t, []line{
		{Expect: prompt},
		{Type: "log tail --lines=2\n", Expect: `(?s)<I> marker 1\r\n\[\d\d:\d\d:\d\d\.\d\d\d\] <I> marker 2\r\n.*> `},
		{Type: "log show\n", Expect: `(?s)<I> boot: .*<I> marker 2.*> `},
		{Type: "log export --name=boot.log\n", Expect: prompt},
		{Type: "exit\n"},
	})
	exited(t, result)

	select {
	case file := <-downloadCh:
		if file.Name != "boot.log" || file.Type != "text/plain" {
			t.Errorf("file = %q %q", file.Name, file.Type)
		}
		if !strings.Contains(string(file.Content), "<I> marker 2\n") {
			t.Errorf("file content = %q", file.Content)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("log was not exported")
	}
}

func TestSetTheme(t *testing.T) {
	_, result := console(t, func(cfg *config.Config) {
		cfg.Console = &struct {
			Prompt string `json:"prompt,omitempty"`
			Theme  string `json:"theme,omitempty"`
		}{Prompt: prompt, Theme: "light"}
	})
	script(t, []line{
		{Expect: prompt},
		{Type: "set theme green\n", Expect: prompt},
	})
	if bg := term.Get("options").Get("theme").Get("background").String(); bg != "#003000" {
		t.Errorf("background = %q, want #003000", bg)
	}
	script(t, []line{
		{Type: "set theme pink\n", Expect: `set theme <light\|dark\|green>`},
		{Type: "exit\n"},
	})
	exited(t, result)
}

func TestTab(t *testing.T) {
	_, result := console(t, nil)
	script(t, []line{
		{Expect: prompt},
		{Type: "st\t", Expect: "status "},
		{Type: "\n", Expect: `State:`},
		{Type: "log t\t", Expect: "log tail "},
		{Type: "--l\t", Expect: "--lines="},
		{Type: "1\n", Expect: `(?s)\] <I> .*> `},
		{Type: "set theme \t", Expect: `dark +green +light`},
		{Type: "dark\n", Expect: prompt},
		{Type: "exit\n"},
	})
	exited(t, result)
}
