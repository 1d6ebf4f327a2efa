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

// Package shellwords splits console lines into arguments.
package shellwords

import "strings"

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// word accumulates one argument, both unquoted and as typed.
type word struct {
	val, raw strings.Builder
	started  bool
}

func (w *word) add(r rune, raw string) {
	w.val.WriteRune(r)
	w.raw.WriteString(raw)
	w.started = true
}

// Parse splits line into words the way a POSIX shell would, without any
// expansion. The second slice holds the words as they were typed, quotes
// and escapes included, so that a caller can tell where the last word
// starts.
func Parse(line string) (args []string, raw []string) {
	var (
		w                  word
		escaped            bool
		inDouble, inSingle bool
	)
	flush := func() {
		if w.started {
			args = append(args, w.val.String())
			raw = append(raw, w.raw.String())
		}
		w = word{}
	}

	for _, r := range line {
		switch {
		case escaped:
			c := r
			switch r {
			case 't':
				c = '\t'
			case 'n':
				c = '\n'
			}
			w.add(c, string(r))
			escaped = false

		case r == '\\' && inSingle:
			w.add(r, `\`)

		case r == '\\':
			w.raw.WriteRune(r)
			escaped = true

		case isSpace(r) && (inSingle || inDouble):
			w.add(r, string(r))

		case isSpace(r):
			flush()

		case r == '"' && !inSingle:
			w.raw.WriteRune(r)
			w.started = true
			inDouble = !inDouble

		case r == '\'' && !inDouble:
			w.raw.WriteRune(r)
			w.started = true
			inSingle = !inSingle

		default:
			w.add(r, string(r))
		}
	}
	if escaped {
		w.add('\\', "")
	}
	flush()
	return args, raw
}

// Quote returns s in a form that Parse reads back as a single word.
func Quote(s string) string {
	if s != "" && !strings.ContainsAny(s, "\"'\\ \t\r\n") {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, c := range s {
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	b.WriteByte('"')
	return b.String()
}

// Join quotes each word as needed and joins them with spaces.
func Join(words []string) string {
	q := make([]string, len(words))
	for i, w := range words {
		q[i] = Quote(w)
	}
	return strings.Join(q, " ")
}
