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

// Package logsink implements an in-memory, append-only log buffer. It stands
// in for the browser console on devices where developer tools are not
// available.
package logsink

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a record.
type Level byte

const (
	LevelInfo  Level = 'I'
	LevelError Level = 'E'
)

func (l Level) String() string {
	return string(rune(l))
}

// Sink accumulates formatted records. The zero value is not usable; call New.
type Sink struct {
	mu  sync.Mutex
	buf bytes.Buffer
	// starts holds the offset of each record in buf. Messages may contain
	// newlines, so records cannot be found by splitting buf.
	starts []int
	now    func() time.Time

	stdout *lineWriter
	stderr *lineWriter
}

// Option configures a Sink.
type Option func(*Sink)

// WithClock replaces the wall clock used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(s *Sink) {
		s.now = now
	}
}

// New returns an empty Sink.
func New(opts ...Option) *Sink {
	s := &Sink{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.stdout = &lineWriter{sink: s, level: LevelInfo}
	s.stderr = &lineWriter{sink: s, level: LevelError}
	return s
}

// Info appends an I record. Multiple values are separated by one space.
func (s *Sink) Info(values ...any) {
	s.append(LevelInfo, join(values))
}

// Error appends an E record. Multiple values are separated by one space.
func (s *Sink) Error(values ...any) {
	s.append(LevelError, join(values))
}

// Stdout returns a writer that turns every complete line into an I record.
func (s *Sink) Stdout() io.Writer {
	return s.stdout
}

// Stderr returns a writer that turns every complete line into an E record.
func (s *Sink) Stderr() io.Writer {
	return s.stderr
}

// Len returns the number of records appended so far.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.starts)
}

// String returns the whole buffer.
func (s *Sink) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// Tail returns the last n records, oldest first.
func (s *Sink) Tail(n int) []string {
	if n <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	starts := s.starts
	if len(starts) > n {
		starts = starts[len(starts)-n:]
	}
	b := s.buf.Bytes()
	out := make([]string, len(starts))
	for i, start := range starts {
		end := len(b)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		out[i] = string(b[start:end])
	}
	return out
}

func (s *Sink) append(level Level, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starts = append(s.starts, s.buf.Len())
	s.buf.WriteByte('[')
	s.buf.WriteString(Timestamp(s.now()))
	s.buf.WriteString("] <")
	s.buf.WriteByte(byte(level))
	s.buf.WriteString("> ")
	s.buf.WriteString(msg)
	s.buf.WriteByte('\n')
}

// Timestamp renders t as HH:MM:SS.mmm in t's location.
func Timestamp(t time.Time) string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d", t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/int(time.Millisecond))
}

func join(values []any) string {
	if len(values) == 1 {
		if s, ok := values[0].(string); ok {
			return s
		}
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, " ")
}

var _ io.Writer = (*lineWriter)(nil)

type lineWriter struct {
	sink    *Sink
	level   Level
	mu      sync.Mutex
	partial []byte
}

func (w *lineWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := len(b)
	for len(b) > 0 {
		i := bytes.IndexByte(b, '\n')
		if i < 0 {
			w.partial = append(w.partial, b...)
			break
		}
		line := append(w.partial, b[:i]...)
		w.partial = nil
		w.sink.append(w.level, strings.TrimSuffix(string(line), "\r"))
		b = b[i+1:]
	}
	return n, nil
}
