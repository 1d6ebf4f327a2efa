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

// Package app wires the bootstrap adapter to the page and the module loader,
// and runs the optional debug console.
package app

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"strings"
	"syscall/js"

	"github.com/urfave/cli/v2"

	"github.com/justcanvas/canvasboot/config"
	"github.com/justcanvas/canvasboot/internal/boot"
	"github.com/justcanvas/canvasboot/internal/dom"
	"github.com/justcanvas/canvasboot/internal/jsutil"
	"github.com/justcanvas/canvasboot/internal/logsink"
	"github.com/justcanvas/canvasboot/internal/shellwords"
	"github.com/justcanvas/canvasboot/internal/terminal"
)

const defaultPrompt = "canvas> "

type Config struct {
	config.Config

	// LoadModule is called with the module configuration object. It
	// returns the module, or a Promise of the module.
	LoadModule js.Value `json:"-"`
	// Term is an optional xterm.js Terminal for the debug console.
	Term js.Value `json:"-"`
	// Sink receives the module's output. A new one is created if nil.
	Sink *logsink.Sink `json:"-"`

	// Used in tests
	DownloadHook func(content []byte, name, typ string) error `json:"-"`
}

func New(cfg *Config) (*App, error) {
	if cfg.LoadModule.Type() != js.TypeFunction {
		return nil, errors.New("loadModule must be a function")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Sink == nil {
		cfg.Sink = logsink.New()
	}
	app := &App{
		cfg:  *cfg,
		sink: cfg.Sink,
	}

	canvas, err := dom.ByID(cfg.CanvasID)
	if err != nil {
		return nil, err
	}
	loader, err := dom.ByID(cfg.LoaderID)
	if err != nil {
		return nil, err
	}
	meta, err := dom.Query(cfg.ViewportSelector)
	if err != nil {
		return nil, err
	}
	app.page = dom.NewPage(meta)
	app.canvas = dom.NewCanvas(canvas, cfg.ShownClass, func() {
		app.adapter.ContextLost()
	})
	if app.adapter, err = boot.New(boot.Options{
		Surface:            app.canvas,
		Indicator:          dom.NewLoader(loader, cfg.HiddenClass),
		Page:               app.page,
		Logger:             app.sink,
		FitOn:              boot.FitOn(cfg.FitOn),
		MaxPixelRatio:      cfg.MaxPixelRatio,
		ContextLostMessage: cfg.ContextLostMessage,
		ErrorMessage:       cfg.ErrorMessage,
	}); err != nil {
		app.canvas.Close()
		return nil, err
	}
	// Errors are reported from the start, not only once the module loads.
	app.undo = append(app.undo, app.canvas.Close, app.page.OnError(app.adapter.UncaughtError))

	app.commands = []*cli.App{
		{
			Name:            "clear",
			Usage:           "Clear the terminal",
			UsageText:       "clear",
			HideHelpCommand: true,
			Action: func(ctx *cli.Context) error {
				app.term.Clear()
				return nil
			},
		},
		{
			Name:            "reload",
			Usage:           "Reload the page",
			UsageText:       "reload",
			HideHelpCommand: true,
			Action: func(ctx *cli.Context) error {
				if app.term.Confirm("Reload the page?", false) {
					app.page.Reload()
				}
				return nil
			},
		},
		app.logCommand(),
		app.viewportCommand(),
		app.statusCommand(),
		app.setCommand(),
	}
	sort.Slice(app.commands, func(i, j int) bool {
		return app.commands[i].Name < app.commands[j].Name
	})
	app.completer = &completer{
		cmds:  app.commands,
		words: app.completeWords,
	}
	return app, nil
}

type App struct {
	cfg       Config
	ctx       context.Context
	cancel    context.CancelFunc
	sink      *logsink.Sink
	page      *dom.Page
	canvas    *dom.Canvas
	adapter   *boot.Adapter
	term      *terminal.Terminal
	completer *completer
	commands  []*cli.App

	module js.Value
	// undo holds the cleanup functions of the hooks installed by New and Load.
	undo []func()
}

// Adapter returns the bootstrap adapter.
func (a *App) Adapter() *boot.Adapter {
	return a.adapter
}

// Sink returns the log sink.
func (a *App) Sink() *logsink.Sink {
	return a.sink
}

// Load installs the resize hook, hands the module configuration to the
// loader and, unless the loader runs main on its own, calls main once the
// page is ready. It returns after main was called.
func (a *App) Load() error {
	if a.ctx != nil {
		return errors.New("already loaded")
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())

	if a.cfg.ResizeToFit {
		a.undo = append(a.undo, a.page.OnResize(a.adapter.Refit))
	}

	mc := a.moduleConfig()
	var m js.Value
	var err error
	jsutil.TryCatch(
		func() { // try
			m, err = jsutil.Await(a.cfg.LoadModule.Invoke(mc))
		},
		func(e any) { // catch
			err = fmt.Errorf("%v", e)
		},
	)
	if err != nil {
		a.sink.Error("loadModule:", err)
		return fmt.Errorf("loadModule: %w", err)
	}
	// Loaders that are not modularized fill in the object they were given.
	if m.Type() != js.TypeObject {
		m = mc
	}
	a.module = m

	if !*a.cfg.NoInitialRun {
		return nil
	}
	if err := a.adapter.Begin(a.ctx, jsModule{m}, a.cfg.Arguments); err != nil {
		a.sink.Error(err)
		return err
	}
	return nil
}

// Stop cancels a pending Load or console and removes the page hooks,
// including the error and context loss handlers installed by New.
func (a *App) Stop() {
	if a.cancel != nil {
		a.cancel()
	}
	for i := len(a.undo) - 1; i >= 0; i-- {
		a.undo[i]()
	}
	a.undo = nil
}

// Run runs the debug console until the user exits.
func (a *App) Run() error {
	if a.cfg.Term.Type() != js.TypeObject {
		return errors.New("no terminal")
	}
	ctx := a.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prompt, theme := defaultPrompt, ""
	if c := a.cfg.Console; c != nil {
		prompt, theme = c.Prompt, c.Theme
	}
	if theme == "" {
		theme = "light"
		if a.page.DarkSchemePreferred() {
			theme = "dark"
		}
	}
	a.term = terminal.New(ctx, a.cfg.Term, prompt)
	defer a.term.Close()
	t := a.term
	a.setTheme(theme)
	t.Focus()

	shortcuts := map[string]struct {
		cmd, desc string
	}{
		"\x0c":  {"clear\r", "CTRL-L"},
		"\x1bh": {"help shortcuts\r", "ALT-H"},
		"\x1bl": {"log tail\r", "ALT-L"},
		"\x1bs": {"status\r", "ALT-S"},
	}
	defer t.OnKey(func(k string) string {
		if v, exists := shortcuts[k]; exists {
			return v.cmd
		}
		return ""
	})()
	t.SetAutoComplete(a.completer.complete)

	commandMap := make(map[string]*cli.App)
	for _, c := range a.commands {
		c.Writer = t
		c.ErrWriter = t
		c.CommandNotFound = func(ctx *cli.Context, name string) {
			t.Errorf("Unknown command %q. Try \"help\"", name)
		}
		commandMap[c.Name] = c
	}

	for {
		line, err := t.ReadLine()
		if err != nil {
			return err
		}
		args, _ := shellwords.Parse(line)
		if len(args) == 0 {
			continue
		}
		switch name := args[0]; name {
		case "help", "?":
			if len(args) == 2 && args[1] == "shortcuts" {
				t.Printf("Available shortcuts:\n")
				var keys []string
				for k := range shortcuts {
					keys = append(keys, k)
				}
				sort.Slice(keys, func(i, j int) bool {
					return shortcuts[keys[i]].cmd < shortcuts[keys[j]].cmd
				})
				for _, k := range keys {
					v := shortcuts[k]
					t.Printf("  %-12s - %s\n", strings.TrimSuffix(v.cmd, "\r"), v.desc)
				}
				continue
			}
			t.Printf("Available commands:\n")
			maxLen := 0
			for _, c := range a.commands {
				maxLen = max(maxLen, len(c.Name))
			}
			for _, c := range a.commands {
				t.Printf("  %*s - %s\n", -maxLen, c.Name, c.Usage)
			}
			t.Printf("Run any command with --help for more details.\n")

		case "exit":
			t.Greenf("Goodbye\n")
			return nil

		default:
			cmd, ok := commandMap[name]
			if !ok {
				t.Errorf("Unknown command %q. Try \"help\"", name)
				continue
			}
			jsutil.TryCatch(
				func() { // try
					if err := cmd.RunContext(ctx, args); err != nil {
						if errors.Is(err, context.Canceled) {
							t.Errorf("Aborted")
						} else {
							t.Errorf("%v", err)
						}
					}
				},
				func(err any) { // catch
					t.Errorf("%T %v", err, err)
					t.Errorf("%s", debug.Stack())
				},
			)
		}
	}
}

func (a *App) exportFile(data []byte, filename, mimeType string) error {
	if a.cfg.DownloadHook != nil {
		return a.cfg.DownloadHook(data, filename, mimeType)
	}
	return jsutil.ExportFile(data, filename, mimeType)
}
