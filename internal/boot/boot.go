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

// Package boot mediates between the host page and the module loader. It
// reveals the drawing surface once the module's dependencies are loaded,
// adapts the viewport to the device pixel ratio, and starts the module's
// main entry point once everything is in place.
//
// Start-up happens in two phases. The loader callbacks (MonitorRunDependencies
// and OnRuntimeInitialized) prepare the page and close Ready. Begin waits for
// Ready and only then calls the module's main function.
package boot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/justcanvas/canvasboot/internal/viewport"
)

var (
	ErrTerminated     = errors.New("session terminated")
	ErrAlreadyStarted = errors.New("module already started")
)

const (
	DefaultContextLostMessage = "WebGL context lost. You will need to reload the page"
	DefaultErrorMessage       = "Error occurred while executing the application"
)

// Surface is the drawing surface, typically a canvas element.
type Surface interface {
	// SetSize sets the size of the drawing buffer.
	SetSize(width, height int)
	// Show makes the surface visible.
	Show()
}

// Indicator is the loading indicator.
type Indicator interface {
	// Hide starts the exit transition. The indicator removes itself from the
	// page when the transition ends.
	Hide()
}

// Page gives access to the document and window.
type Page interface {
	ClientSize() viewport.Size
	DevicePixelRatio() float64
	SetViewport(content string)
	// Alert shows a blocking message to the user.
	Alert(message string)
}

// Module is the loaded application.
type Module interface {
	CallMain(args []string) error
}

// Logger receives informational messages about the start-up sequence.
type Logger interface {
	Info(values ...any)
	Error(values ...any)
}

// FitOn selects the loader callback that adapts the viewport.
type FitOn string

const (
	FitOnRuntime      FitOn = "runtime"
	FitOnDependencies FitOn = "dependencies"
)

// State is the state of the session.
type State int

const (
	NotInitialized State = iota
	Initialized
	Terminated
)

func (s State) String() string {
	switch s {
	case NotInitialized:
		return "not initialized"
	case Initialized:
		return "initialized"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options configures an Adapter. Surface, Indicator and Page are required.
type Options struct {
	Surface   Surface
	Indicator Indicator
	Page      Page
	Logger    Logger

	FitOn              FitOn
	MaxPixelRatio      float64
	ContextLostMessage string
	ErrorMessage       string
}

// Adapter reacts to the loader's lifecycle callbacks. It is safe for
// concurrent use.
type Adapter struct {
	opts Options

	mu          sync.Mutex
	state       State
	depsLeft    int
	runtimeUp   bool
	fitted      bool
	started     bool
	size        viewport.Size
	scale       float64
	revealOnce  sync.Once
	readyOnce   sync.Once
	alertOnce   sync.Once
	ready       chan struct{}
	terminated  chan struct{}
	termOnce    sync.Once
	termMessage string
}

// New returns an Adapter.
func New(opts Options) (*Adapter, error) {
	if opts.Surface == nil {
		return nil, errors.New("surface is missing")
	}
	if opts.Indicator == nil {
		return nil, errors.New("indicator is missing")
	}
	if opts.Page == nil {
		return nil, errors.New("page is missing")
	}
	switch opts.FitOn {
	case "":
		opts.FitOn = FitOnRuntime
	case FitOnRuntime, FitOnDependencies:
	default:
		return nil, fmt.Errorf("invalid fitOn value %q", opts.FitOn)
	}
	if opts.ContextLostMessage == "" {
		opts.ContextLostMessage = DefaultContextLostMessage
	}
	if opts.ErrorMessage == "" {
		opts.ErrorMessage = DefaultErrorMessage
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}
	return &Adapter{
		opts:       opts,
		depsLeft:   -1,
		ready:      make(chan struct{}),
		terminated: make(chan struct{}),
	}, nil
}

// MonitorRunDependencies is called by the loader every time the number of
// outstanding dependencies changes.
func (a *Adapter) MonitorRunDependencies(left int) {
	a.mu.Lock()
	a.depsLeft = left
	if left != 0 || a.state == Terminated {
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()

	a.reveal()
	if a.opts.FitOn == FitOnDependencies {
		a.fit()
	}
	a.maybeReady()
}

// OnRuntimeInitialized is called by the loader once the module's runtime is
// up.
func (a *Adapter) OnRuntimeInitialized() {
	a.mu.Lock()
	if a.state == Terminated {
		a.mu.Unlock()
		return
	}
	a.runtimeUp = true
	// A loader without run dependencies never reports a count.
	noDeps := a.depsLeft == -1 && !a.fitted
	a.mu.Unlock()

	a.reveal()
	if a.opts.FitOn == FitOnRuntime || noDeps {
		a.fit()
	}
	a.maybeReady()
}

// Ready is closed once the runtime is initialized and the viewport has been
// adapted.
func (a *Adapter) Ready() <-chan struct{} {
	return a.ready
}

// Terminated is closed when the session ends because of a fatal error.
func (a *Adapter) Terminated() <-chan struct{} {
	return a.terminated
}

// Begin waits for Ready and then calls the module's main function. It may
// only succeed once.
func (a *Adapter) Begin(ctx context.Context, m Module, args []string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-a.terminated:
		return ErrTerminated
	case <-a.ready:
	}
	a.mu.Lock()
	if a.state == Terminated {
		a.mu.Unlock()
		return ErrTerminated
	}
	if a.started {
		a.mu.Unlock()
		return ErrAlreadyStarted
	}
	a.started = true
	a.mu.Unlock()

	a.opts.Logger.Info("boot: calling main")
	if err := m.CallMain(args); err != nil {
		return fmt.Errorf("main: %w", err)
	}
	return nil
}

// ContextLost reports that the surface's graphics context was lost. The
// session cannot recover.
func (a *Adapter) ContextLost() {
	a.terminate(a.opts.ContextLostMessage, "graphics context lost")
}

// UncaughtError reports an uncaught script error. The session cannot
// recover.
func (a *Adapter) UncaughtError(message string) {
	a.terminate(a.opts.ErrorMessage, "uncaught error: "+message)
}

// Refit resizes the surface when the client area changed since the last fit.
// It does nothing until the viewport has been adapted, or after termination.
func (a *Adapter) Refit() {
	a.mu.Lock()
	if !a.fitted || a.state == Terminated {
		a.mu.Unlock()
		return
	}
	prev := a.size
	a.mu.Unlock()

	size := a.opts.Page.ClientSize()
	if size == prev || size.Empty() {
		return
	}
	a.opts.Surface.SetSize(size.Width, size.Height)
	a.mu.Lock()
	a.size = size
	a.mu.Unlock()
}

// Status is a snapshot of the adapter.
type Status struct {
	State            State
	DependenciesLeft int
	RuntimeUp        bool
	Started          bool
	Scale            float64
	Size             viewport.Size
	// Reason is set once the session is terminated.
	Reason string
}

// Status returns the current status.
func (a *Adapter) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Status{
		State:            a.state,
		DependenciesLeft: a.depsLeft,
		RuntimeUp:        a.runtimeUp,
		Started:          a.started,
		Scale:            a.scale,
		Size:             a.size,
		Reason:           a.termMessage,
	}
}

// State returns the current state.
func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Adapter) reveal() {
	a.revealOnce.Do(func() {
		a.opts.Indicator.Hide()
		a.opts.Surface.Show()
		a.opts.Logger.Info("boot: surface shown")
	})
}

func (a *Adapter) fit() {
	page := a.opts.Page
	ratio := viewport.Ratio(page.DevicePixelRatio(), a.opts.MaxPixelRatio)
	// Scrollbars are hidden by the page, so the client width is the full
	// width.
	width := page.ClientSize().Width
	scale := viewport.Scale(float64(width), ratio)
	page.SetViewport(viewport.MetaContent(scale))

	// The client size changes with the viewport scale.
	size := page.ClientSize()
	a.opts.Surface.SetSize(size.Width, size.Height)

	a.mu.Lock()
	a.fitted = true
	a.scale = scale
	a.size = size
	a.mu.Unlock()
	a.opts.Logger.Info(fmt.Sprintf("boot: viewport scale %g, surface %dx%d", scale, size.Width, size.Height))
}

func (a *Adapter) maybeReady() {
	a.mu.Lock()
	ok := a.runtimeUp && a.fitted && a.state != Terminated
	if ok {
		a.state = Initialized
	}
	a.mu.Unlock()
	if ok {
		a.readyOnce.Do(func() { close(a.ready) })
	}
}

func (a *Adapter) terminate(alert, reason string) {
	a.mu.Lock()
	a.state = Terminated
	if a.termMessage == "" {
		a.termMessage = reason
	}
	a.mu.Unlock()
	a.termOnce.Do(func() { close(a.terminated) })
	a.alertOnce.Do(func() {
		a.opts.Page.Alert(alert)
	})
}

type nopLogger struct{}

func (nopLogger) Info(...any)  {}
func (nopLogger) Error(...any) {}
