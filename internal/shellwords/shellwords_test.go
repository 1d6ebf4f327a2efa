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

// Copied from https://github.com/mattn/go-shellwords/tree/f3bbb6f7f6510c6059561a79e3f105578be4fcce
// Original license below.
//
// The MIT License (MIT)
//
// Copyright (c) 2017 Yasuhiro Matsumoto
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

package shellwords

import (
	"reflect"
	"testing"
)

var testcases = []struct {
	line        string
	expected    []string
	expectedRaw []string
}{
	{``, nil, nil},
	{`""`, []string{``}, []string{`""`}},
	{`''`, []string{``}, []string{`''`}},
	{`var --bar=baz`, []string{`var`, `--bar=baz`}, []string{`var`, `--bar=baz`}},
	{`var --bar="baz"`, []string{`var`, `--bar=baz`}, []string{`var`, `--bar="baz"`}},
	{`var "--bar=baz"`, []string{`var`, `--bar=baz`}, []string{`var`, `"--bar=baz"`}},
	{`var "--bar='baz'"`, []string{`var`, `--bar='baz'`}, []string{`var`, `"--bar='baz'"`}},
	{"var --bar=`baz`", []string{`var`, "--bar=`baz`"}, []string{`var`, "--bar=`baz`"}},
	{`var "--bar=\"baz'"`, []string{`var`, `--bar="baz'`}, []string{`var`, `"--bar=\"baz'"`}},
	{`var "--bar=\'baz\'"`, []string{`var`, `--bar='baz'`}, []string{`var`, `"--bar=\'baz\'"`}},
	{`var --bar='\'`, []string{`var`, `--bar=\`}, []string{`var`, `--bar='\'`}},
	{`var "--bar baz"`, []string{`var`, `--bar baz`}, []string{`var`, `"--bar baz"`}},
	{`var --"bar baz"`, []string{`var`, `--bar baz`}, []string{`var`, `--"bar baz"`}},
	{`var  --"bar baz"`, []string{`var`, `--bar baz`}, []string{`var`, `--"bar baz"`}},
	{`a "b"`, []string{`a`, `b`}, []string{`a`, `"b"`}},
	{`a " b "`, []string{`a`, ` b `}, []string{`a`, `" b "`}},
	{`a "   "`, []string{`a`, `   `}, []string{`a`, `"   "`}},
	{`a 'b'`, []string{`a`, `b`}, []string{`a`, `'b'`}},
	{`a ' b '`, []string{`a`, ` b `}, []string{`a`, `' b '`}},
	{`a '   '`, []string{`a`, `   `}, []string{`a`, `'   '`}},
	{"foo bar\\  ", []string{`foo`, `bar `}, []string{`foo`, `bar\ `}},
	{`foo "" bar ''`, []string{`foo`, ``, `bar`, ``}, []string{`foo`, `""`, `bar`, `''`}},
	{`foo \\`, []string{`foo`, `\`}, []string{`foo`, `\\`}},
	{`foo \& bar`, []string{`foo`, `&`, `bar`}, []string{`foo`, `\&`, `bar`}},
	{`sh -c "printf 'Hello\tworld\n'"`, []string{`sh`, `-c`, "printf 'Hello\tworld\n'"}, []string{`sh`, `-c`, `"printf 'Hello\tworld\n'"`}},
}

func TestParse(t *testing.T) {
	for _, tc := range testcases {
		args, raw := Parse(tc.line)
		if !reflect.DeepEqual(args, tc.expected) {
			t.Fatalf("Parse(%q) = %#v, want %#v", tc.line, args, tc.expected)
		}
		if !reflect.DeepEqual(raw, tc.expectedRaw) {
			t.Fatalf("Parse(%q) raw = %#v, want %#v", tc.line, raw, tc.expectedRaw)
		}
	}
}

func TestTrailingEscape(t *testing.T) {
	args, raw := Parse(`log \`)
	if want := []string{"log", `\`}; !reflect.DeepEqual(args, want) {
		t.Errorf("args = %#v, want %#v", args, want)
	}
	if want := []string{"log", `\`}; !reflect.DeepEqual(raw, want) {
		t.Errorf("raw = %#v, want %#v", raw, want)
	}
}

func TestQuote(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"tail", "tail"},
		{"", `""`},
		{"canvas log.txt", `"canvas log.txt"`},
		{`say "hi"`, `"say \"hi\""`},
		{`a\b`, `"a\\b"`},
	} {
		if got := Quote(tc.in); got != tc.want {
			t.Errorf("Quote(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if args, _ := Parse(Quote(tc.in)); len(args) != 1 || args[0] != tc.in {
			t.Errorf("Parse(Quote(%q)) = %#v", tc.in, args)
		}
	}
}

func TestJoin(t *testing.T) {
	words := []string{"--title", "Hello world", "-v"}
	line := Join(words)
	if want := `--title "Hello world" -v`; line != want {
		t.Errorf("Join = %q, want %q", line, want)
	}
	if args, _ := Parse(line); !reflect.DeepEqual(args, words) {
		t.Errorf("Parse(Join) = %#v, want %#v", args, words)
	}
}
