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
	"slices"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/justcanvas/canvasboot/internal/jsutil"
	"github.com/justcanvas/canvasboot/internal/viewport"
)

func (a *App) logCommand() *cli.App {
	return &cli.App{
		Name:            "log",
		Usage:           "Show or export the module's output",
		UsageText:       "log <show|tail|export>",
		Description:     "The log command shows the records written by the module and the bootstrap.",
		HideHelpCommand: true,
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show all the records.",
				UsageText: "log show",
				Action: func(ctx *cli.Context) error {
					a.term.Printf("%s", a.sink.String())
					return nil
				},
			},
			{
				Name:      "tail",
				Usage:     "Show the last records.",
				UsageText: "log tail [--lines=<n>]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "lines",
						Aliases: []string{"n"},
						Value:   10,
						Usage:   "The number of records to show.",
					},
				},
				Action: func(ctx *cli.Context) error {
					a.term.Printf("%s", strings.Join(a.sink.Tail(ctx.Int("lines")), ""))
					return nil
				},
			},
			{
				Name:      "export",
				Usage:     "Download the records as a text file.",
				UsageText: "log export [--name=<file>]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Value: "canvas.log",
						Usage: "The name of the downloaded file.",
					},
				},
				Action: func(ctx *cli.Context) error {
					return a.exportFile([]byte(a.sink.String()), ctx.String("name"), "text/plain")
				},
			},
		},
	}
}

func (a *App) viewportCommand() *cli.App {
	return &cli.App{
		Name:            "viewport",
		Usage:           "Show the viewport",
		UsageText:       "viewport [fit]",
		Description:     "The viewport command shows how the page was scaled to the device pixel ratio.",
		HideHelpCommand: true,
		Action: func(ctx *cli.Context) error {
			a.showViewport()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "fit",
				Usage:     "Resize the canvas to the client area.",
				UsageText: "viewport fit",
				Action: func(ctx *cli.Context) error {
					a.adapter.Refit()
					a.showViewport()
					return nil
				},
			},
		},
	}
}

func (a *App) showViewport() {
	st := a.adapter.Status()
	dpr := a.page.DevicePixelRatio()
	client := a.page.ClientSize()
	canvas := a.canvas.Size()
	a.term.Printf("Device pixel ratio: %s\n", strconv.FormatFloat(dpr, 'g', -1, 64))
	if a.cfg.MaxPixelRatio > 0 {
		a.term.Printf("Effective ratio:    %s\n", strconv.FormatFloat(viewport.Ratio(dpr, a.cfg.MaxPixelRatio), 'g', -1, 64))
	}
	a.term.Printf("Scale:              %s\n", strconv.FormatFloat(st.Scale, 'g', -1, 64))
	a.term.Printf("Meta content:       %s\n", a.page.Viewport())
	a.term.Printf("Client area:        %dx%d\n", client.Width, client.Height)
	a.term.Printf("Canvas:             %dx%d\n", canvas.Width, canvas.Height)
}

func (a *App) statusCommand() *cli.App {
	return &cli.App{
		Name:            "status",
		Usage:           "Show the bootstrap status",
		UsageText:       "status",
		HideHelpCommand: true,
		Action: func(ctx *cli.Context) error {
			st := a.adapter.Status()
			deps := "not reported"
			if st.DependenciesLeft >= 0 {
				deps = strconv.Itoa(st.DependenciesLeft)
			}
			a.term.Printf("State:        %s\n", st.State)
			a.term.Printf("Dependencies: %s\n", deps)
			a.term.Printf("Runtime:      %s\n", yesNo(st.RuntimeUp))
			a.term.Printf("Main called:  %s\n", yesNo(st.Started))
			a.term.Printf("Fit on:       %s\n", a.cfg.FitOn)
			a.term.Printf("Log records:  %d\n", a.sink.Len())
			if st.Reason != "" {
				a.term.Errorf("Terminated:   %s", st.Reason)
			}
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

var themes = []string{"light", "dark", "green"}

func (a *App) setTheme(t string) {
	var bg, fg string
	switch t {
	case "light":
		bg, fg = "#e0e0e0", "black"
	case "dark":
		bg, fg = "black", "white"
	case "green":
		bg, fg = "#003000", "lightgreen"
	default:
		return
	}
	a.cfg.Term.Get("options").Set("theme", jsutil.NewObject(map[string]any{
		"background":          bg,
		"foreground":          fg,
		"cursor":              fg,
		"cursorAccent":        bg,
		"selectionBackground": fg,
		"selectionForeground": bg,
	}))
	if parent := a.cfg.Term.Get("element").Get("parentElement"); parent.Truthy() {
		parent.Get("style").Set("backgroundColor", bg)
	}
}

func (a *App) setCommand() *cli.App {
	return &cli.App{
		Name:            "set",
		Usage:           "Set console parameters",
		UsageText:       "set theme",
		Description:     "The set command is used to change console parameters.",
		HideHelpCommand: true,
		Commands: []*cli.Command{
			{
				Name:      "theme",
				Usage:     "Set the color theme.",
				UsageText: "set theme <light|dark|green>",
				Action: func(ctx *cli.Context) error {
					if ctx.Args().Len() != 1 || !slices.Contains(themes, ctx.Args().Get(0)) {
						cli.ShowSubcommandHelp(ctx)
						return nil
					}
					a.setTheme(ctx.Args().Get(0))
					return nil
				},
			},
		},
	}
}

func (a *App) completeWords(args []string) []string {
	if len(args) == 0 {
		return nil
	}
	last := args[len(args)-1]
	if strings.HasPrefix(last, "--lines=") || strings.HasPrefix(last, "-n=") {
		flag, _, _ := strings.Cut(last, "=")
		var words []string
		for _, n := range []int{10, 50, 100, 1000} {
			words = append(words, flag+"="+strconv.Itoa(n))
		}
		return words
	}
	if args[0] == "set" && len(args) == 3 && args[1] == "theme" {
		return themes
	}
	return nil
}
