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

package app

import (
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/justcanvas/canvasboot/internal/shellwords"
)

// completer completes console lines from the command tree. words, if set,
// supplies candidates for positional arguments and flag values.
type completer struct {
	cmds  []*cli.App
	words func(args []string) []string
}

func (c *completer) complete(line string, pos int, key rune) (newLine string, newPos int, options []string, ok bool) {
	if key != '\t' {
		return
	}
	head, tail := line[:pos], line[pos:]
	newLine, newPos, options, ok = c.completeHead(head)
	newLine += strings.TrimSpace(tail)
	return
}

func (c *completer) completeHead(line string) (newLine string, newPos int, options []string, ok bool) {
	args, raw := shellwords.Parse(line)
	if len(raw) == 0 || !strings.HasSuffix(line, raw[len(raw)-1]) {
		args = append(args, "")
		raw = append(raw, "")
	}
	last, lastRaw := args[len(args)-1], raw[len(raw)-1]
	start := line[:len(line)-len(lastRaw)]

	m := c.candidates(args)
	switch len(m) {
	case 0:
		return
	case 1:
		newLine = start + shellwords.Quote(m[0])
		if !strings.HasSuffix(m[0], "=") {
			newLine += " "
		}
		return newLine, len(newLine), nil, true
	}
	if n := commonPrefix(m); n > len(last) {
		newLine = start + shellwords.Quote(m[0][:n])
		return newLine, len(newLine), nil, true
	}
	for _, w := range m {
		options = append(options, shellwords.Quote(w))
	}
	sort.Strings(options)
	return
}

func commonPrefix(words []string) int {
	if len(words) == 0 {
		return 0
	}
	n := len(words[0])
	for _, w := range words[1:] {
		n = min(n, len(w))
		for i := 0; i < n; i++ {
			if w[i] != words[0][i] {
				n = i
				break
			}
		}
	}
	return n
}

// candidates returns the words that can replace the last element of args.
func (c *completer) candidates(args []string) []string {
	last := args[len(args)-1]
	if len(args) == 1 {
		var out []string
		for _, a := range c.cmds {
			if strings.HasPrefix(a.Name, last) {
				out = append(out, a.Name)
			}
		}
		return out
	}

	var app *cli.App
	for _, a := range c.cmds {
		if a.Name == args[0] {
			app = a
		}
	}
	if app == nil {
		return nil
	}
	cmds, flags := app.Commands, app.Flags
	for _, w := range args[1 : len(args)-1] {
		for _, cmd := range cmds {
			if cmd.Name == w {
				cmds, flags = cmd.Subcommands, cmd.Flags
				break
			}
		}
	}

	var out []string
	for _, cmd := range cmds {
		if strings.HasPrefix(cmd.Name, last) {
			out = append(out, cmd.Name)
		}
	}
	if last != "" {
		out = append(out, c.flagCandidates(args, flags)...)
	}
	if len(out) == 0 && c.words != nil {
		for _, w := range c.words(args) {
			if strings.HasPrefix(w, last) {
				out = append(out, w)
			}
		}
	}
	return out
}

func (c *completer) flagCandidates(args []string, flags []cli.Flag) []string {
	last := args[len(args)-1]
	var out []string
	for _, f := range flags {
		name := "--" + f.Names()[0]
		if _, ok := f.(*cli.BoolFlag); ok {
			if strings.HasPrefix(name, last) {
				out = append(out, name)
			}
			continue
		}
		name += "="
		if !strings.HasPrefix(last, name) {
			if strings.HasPrefix(name, last) {
				out = append(out, name)
			}
			continue
		}
		var values []string
		if c.words != nil {
			values = c.words(args)
		}
		for _, v := range values {
			if strings.HasPrefix(v, last) {
				out = append(out, v)
			}
		}
	}
	return out
}
