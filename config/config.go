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

package config

import (
	"encoding/json"
	"fmt"
	"io"
)

// Config is the bootstrap configuration. This data structure is typically
// read from the config.json file next to the page, or passed inline to
// canvasApp.start().
type Config struct {
	// CanvasID is the id of the canvas element that receives the module's
	// output. It defaults to "canvas".
	CanvasID string `json:"canvasId,omitempty"`

	// LoaderID is the id of the loading indicator element. It defaults to
	// "loader".
	LoaderID string `json:"loaderId,omitempty"`

	// ViewportSelector selects the viewport meta tag. It defaults to
	// "meta[name=viewport]".
	ViewportSelector string `json:"viewportSelector,omitempty"`

	// HiddenClass is added to the loading indicator to start its exit
	// transition. ShownClass is added to the canvas to reveal it. They
	// default to "hidden" and "shown".
	HiddenClass string `json:"hiddenClass,omitempty"`
	ShownClass  string `json:"shownClass,omitempty"`

	// FitOn selects the loader callback that adapts the viewport to the
	// device pixel ratio: "runtime" (onRuntimeInitialized, the default) or
	// "dependencies" (monitorRunDependencies reaching zero).
	FitOn string `json:"fitOn,omitempty"`

	// MaxPixelRatio, if positive, caps the device pixel ratio used to
	// compute the viewport scale.
	MaxPixelRatio float64 `json:"maxPixelRatio,omitempty"`

	// ResizeToFit, if set, resizes the canvas to the client area every time
	// the window is resized.
	ResizeToFit bool `json:"resizeToFit,omitempty"`

	// ContextLostMessage and ErrorMessage are shown to the user when the
	// session ends because of a fatal error.
	ContextLostMessage string `json:"contextLostMessage,omitempty"`
	ErrorMessage       string `json:"errorMessage,omitempty"`

	// NoExitRuntime is passed to the module loader. It should stay false
	// so that the module's exit handlers run.
	NoExitRuntime bool `json:"noExitRuntime,omitempty"`

	// NoInitialRun is passed to the module loader. When it is true (the
	// default), the module's main function is called by the bootstrap once
	// the page is ready. When false, the loader calls it on its own.
	NoInitialRun *bool `json:"noInitialRun,omitempty"`

	// Arguments are passed to the module's main function.
	Arguments []string `json:"arguments,omitempty"`

	// Console configures the optional debug console.
	Console *struct {
		// Prompt defaults to "canvas> ".
		Prompt string `json:"prompt,omitempty"`
		// Theme is one of "light", "dark" or "green".
		Theme string `json:"theme,omitempty"`
	} `json:"console,omitempty"`
}

// Parse decodes a JSON configuration. Unknown fields are rejected.
func Parse(r io.Reader) (*Config, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("json: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills in unset fields.
func (c *Config) SetDefaults() {
	if c.CanvasID == "" {
		c.CanvasID = "canvas"
	}
	if c.LoaderID == "" {
		c.LoaderID = "loader"
	}
	if c.ViewportSelector == "" {
		c.ViewportSelector = "meta[name=viewport]"
	}
	if c.HiddenClass == "" {
		c.HiddenClass = "hidden"
	}
	if c.ShownClass == "" {
		c.ShownClass = "shown"
	}
	if c.FitOn == "" {
		c.FitOn = "runtime"
	}
	if c.NoInitialRun == nil {
		v := true
		c.NoInitialRun = &v
	}
	if c.Console != nil && c.Console.Prompt == "" {
		c.Console.Prompt = "canvas> "
	}
}

// Validate checks the values that have a fixed set of choices.
func (c *Config) Validate() error {
	switch c.FitOn {
	case "", "runtime", "dependencies":
	default:
		return fmt.Errorf("fitOn: invalid value %q", c.FitOn)
	}
	if c.MaxPixelRatio < 0 {
		return fmt.Errorf("maxPixelRatio: must not be negative")
	}
	if c.Console != nil {
		switch c.Console.Theme {
		case "", "light", "dark", "green":
		default:
			return fmt.Errorf("console.theme: invalid value %q", c.Console.Theme)
		}
	}
	return nil
}
