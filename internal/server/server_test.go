package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gaurav-prasanna/clipmark/core"
	"github.com/gaurav-prasanna/clipmark/internal/cache"
)

func newTestServer(t *testing.T, maxBody int64) (*httptest.Server, *cache.Memory) {
	t.Helper()
	mem := cache.NewMemory(time.Minute, 16)
	srv := httptest.NewServer(New(Options{MaxBody: maxBody, Cache: mem}).Handler())
	t.Cleanup(srv.Close)
	return srv, mem
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "text/html", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return string(data)
}

func TestHealthAndIndex(t *testing.T) {
	srv, _ := newTestServer(t, 0)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK || readBody(t, resp) != "ok" {
		t.Fatalf("expected 200 ok, got: %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Fatal("expected a request id header")
	}

	resp, err = http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	if !strings.Contains(readBody(t, resp), `id="pastebin"`) {
		t.Fatal("expected the paste page")
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected text/html, got: %s", ct)
	}
}

func TestConvert(t *testing.T) {
	const html = `<h1>Meeting Notes</h1><p>Hello <em>world</em>.</p>`

	t.Run("returns markdown and caches it", func(t *testing.T) {
		srv, mem := newTestServer(t, 0)

		resp := post(t, srv.URL+"/convert", html)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got: %d", resp.StatusCode)
		}
		if got := readBody(t, resp); got != "Meeting Notes\n=============\n\nHello *world*." {
			t.Fatalf("unexpected markdown: %q", got)
		}
		if resp.Header.Get("Content-Type") != "text/markdown; charset=utf-8" || resp.Header.Get("X-Cache") != "miss" {
			t.Fatalf("unexpected headers: %v", resp.Header)
		}
		if mem.Len() != 1 {
			t.Fatalf("expected one cached entry, got: %d", mem.Len())
		}

		again := post(t, srv.URL+"/convert?download=1", html)
		if again.Header.Get("X-Cache") != "hit" {
			t.Fatalf("expected a cache hit, got: %q", again.Header.Get("X-Cache"))
		}
		if cd := again.Header.Get("Content-Disposition"); cd != `attachment; filename="meeting-notes.md"` {
			t.Fatalf("unexpected content disposition: %q", cd)
		}
		if got := readBody(t, again); !strings.HasPrefix(got, "Meeting Notes\n") {
			t.Fatalf("unexpected cached markdown: %q", got)
		}
	})

	t.Run("json format", func(t *testing.T) {
		srv, _ := newTestServer(t, 0)
		resp := post(t, srv.URL+"/convert?format=json", html)

		var doc core.DocumentJSON
		if err := json.Unmarshal([]byte(readBody(t, resp)), &doc); err != nil {
			t.Fatalf("expected JSON, got: %v", err)
		}
		if doc.Metadata.Filename != "meeting-notes" || len(doc.Structure.Headings) != 1 {
			t.Fatalf("unexpected document: %+v", doc)
		}
	})

	t.Run("html format", func(t *testing.T) {
		srv, _ := newTestServer(t, 0)
		resp := post(t, srv.URL+"/convert?format=html&download=1", html)
		body := readBody(t, resp)
		if !strings.Contains(body, "<em>world</em>") {
			t.Fatalf("expected preview markup, got: %s", body)
		}
		if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "meeting-notes.html") {
			t.Fatalf("unexpected content disposition: %q", cd)
		}
	})

	t.Run("reader mode drops page chrome", func(t *testing.T) {
		srv, _ := newTestServer(t, 0)
		page := `<nav>Menu</nav><main><p>Body</p></main>`

		full := readBody(t, post(t, srv.URL+"/convert", page))
		reader := readBody(t, post(t, srv.URL+"/convert?reader=1", page))
		if !strings.Contains(full, "Menu") || reader != "Body" {
			t.Fatalf("unexpected outputs: full=%q reader=%q", full, reader)
		}
	})

	t.Run("oversized body is rejected", func(t *testing.T) {
		srv, _ := newTestServer(t, 32)
		resp := post(t, srv.URL+"/convert", "<p>"+strings.Repeat("x", 64)+"</p>")
		if resp.StatusCode != http.StatusRequestEntityTooLarge {
			t.Fatalf("expected 413, got: %d", resp.StatusCode)
		}
	})

	t.Run("unknown or cli-only formats are rejected", func(t *testing.T) {
		srv, _ := newTestServer(t, 0)
		for _, format := range []string{"docx", "pdf"} {
			resp := post(t, srv.URL+"/convert?format="+format, html)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("format %s: expected 400, got: %d", format, resp.StatusCode)
			}
		}
	})

	t.Run("get is not allowed", func(t *testing.T) {
		srv, _ := newTestServer(t, 0)
		resp, err := http.Get(srv.URL + "/convert")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got: %d", resp.StatusCode)
		}
	})
}

func TestConvertWithoutCache(t *testing.T) {
	srv := httptest.NewServer(New(Options{}).Handler())
	defer srv.Close()

	resp := post(t, srv.URL+"/convert", "<p>plain</p>")
	if got := readBody(t, resp); got != "plain" || resp.Header.Get("X-Cache") != "miss" {
		t.Fatalf("unexpected response: %q %q", got, resp.Header.Get("X-Cache"))
	}
}

func TestWebSocket(t *testing.T) {
	srv, _ := newTestServer(t, 1024)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	t.Run("replies with markdown and filename", func(t *testing.T) {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			t.Fatalf("failed to connect: %v", err)
		}
		defer conn.Close()

		for _, tc := range []struct{ html, markdown, filename string }{
			{"<h2>Intro</h2>", "Intro\n-----", "intro.md"},
			{"<p>Plain text <code>here</code></p>", "Plain text `here`", "plain-text-`here`.md"},
		} {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tc.html)); err != nil {
				t.Fatalf("write: %v", err)
			}
			conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			var reply wsReply
			if err := conn.ReadJSON(&reply); err != nil {
				t.Fatalf("read: %v", err)
			}
			if reply.Markdown != tc.markdown || reply.Filename != tc.filename {
				t.Fatalf("expected %q / %q, got: %+v", tc.markdown, tc.filename, reply)
			}
		}
	})

	t.Run("binary frames close the socket", func(t *testing.T) {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			t.Fatalf("failed to connect: %v", err)
		}
		defer conn.Close()

		conn.WriteMessage(websocket.BinaryMessage, []byte{0xff})
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, _, err = conn.ReadMessage()
		if !websocket.IsCloseError(err, websocket.CloseUnsupportedData) {
			t.Fatalf("expected unsupported data close, got: %v", err)
		}
	})
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(Options{}).ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
