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

// Command testserver serves the page and the browser test binary, and
// collects the results that the browser reports on /results.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/chromedp/chromedp"
	"github.com/gorilla/websocket"
)

func main() {
	addr := flag.String("addr", ":8880", "The TCP address to listen to")
	docRoot := flag.String("document-root", "", "The document root directory")
	withChromeDP := flag.String("with-chromedp", "", "The url of the remote debugging port")
	testURL := flag.String("test-url", "http://devtest:8880/tests.html", "The page that runs the browser tests")

	flag.Parse()
	if *docRoot == "" {
		log.Fatal("--document-root must be set")
	}

	res := newResults(log.Printf)
	log.Printf("HTTP Server listening on %s. Document root is %s\n", *addr, *docRoot)
	httpServer := http.Server{
		Addr:    *addr,
		Handler: newMux(*docRoot, res),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := httpServer.ListenAndServe(); err != nil {
			log.Fatalf("http server: %v", err)
		}
	}()
	if *withChromeDP == "" {
		<-ctx.Done()
		httpServer.Shutdown(ctx)
		return
	}

	ctx, cancel = chromedp.NewRemoteAllocator(ctx, *withChromeDP)
	defer cancel()
	ctx, cancel = chromedp.NewContext(ctx, chromedp.WithLogf(log.Printf))
	defer cancel()

	var out string
	if err := chromedp.Run(ctx,
		chromedp.Navigate(*testURL),
		chromedp.WaitVisible("#done"),
		chromedp.Evaluate(`window.canvasApp.exited`, &out),
	); err != nil {
		log.Fatal(err)
	}
	fmt.Println(out)
	if out != "PASS" || res.Verdict() != "PASS" {
		os.Exit(1)
	}
}

// newMux returns the handler for the document root and /results.
func newMux(docRoot string, res *results) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/results", res)
	fs := http.FileServer(http.Dir(docRoot))
	mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		fs.ServeHTTP(w, req)
	})
	return mux
}

// results records the messages that the browser sends on a websocket. Each
// message is acknowledged with "ok".
type results struct {
	upgrader websocket.Upgrader
	logf     func(string, ...any)

	mu       sync.Mutex
	messages []string
}

func newResults(logf func(string, ...any)) *results {
	return &results{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  8192,
			WriteBufferSize: 8192,
		},
		logf: logf,
	}
}

func (r *results) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logf("ERR %v", err)
		return
	}
	defer conn.Close()
	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				r.logf("results: %v", err)
			}
			return
		}
		msg := strings.TrimRight(string(p), "\n")
		r.logf("[browser] %s", msg)
		r.mu.Lock()
		r.messages = append(r.messages, msg)
		r.mu.Unlock()
		if err := conn.WriteMessage(websocket.TextMessage, []byte("ok")); err != nil {
			r.logf("results: %v", err)
			return
		}
	}
}

// Messages returns a copy of the messages received so far.
func (r *results) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// Verdict returns the last PASS or FAIL message, or an empty string.
func (r *results) Verdict() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.messages) - 1; i >= 0; i-- {
		switch m := r.messages[i]; m {
		case "PASS", "FAIL":
			return m
		}
	}
	return ""
}
