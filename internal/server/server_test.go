package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/jugglesearch/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	srv := httptest.NewServer(New(pipeline.NewRunner(nil, nil, logger), logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	resp := get(t, newTestServer(t), "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestVersion(t *testing.T) {
	resp := get(t, newTestServer(t), "/version")
	var info map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if _, ok := info["version"]; !ok {
		t.Errorf("version missing from %v", info)
	}
}

func TestGen(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/api/gen?q="+url.QueryEscape("3 4 2 -g"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.ID == "" {
		t.Error("missing run id")
	}
	if body.Count != 2 || body.Reason != "completed" {
		t.Errorf("count = %d, reason = %q", body.Count, body.Reason)
	}
	var got []string
	for _, p := range body.Patterns {
		got = append(got, p.Display)
	}
	if strings.Join(got, ",") != "42,3" {
		t.Errorf("patterns = %v, want [42 3]", got)
	}
}

func TestTrans(t *testing.T) {
	resp := get(t, newTestServer(t), "/api/trans?q="+url.QueryEscape("3 51"))
	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Count != 2 || body.Status != "2 transitions found" {
		t.Errorf("count = %d, status = %q", body.Count, body.Status)
	}
}

func TestBadRequests(t *testing.T) {
	srv := newTestServer(t)
	tests := []string{
		"/api/gen",
		"/api/gen?q=" + url.QueryEscape("3 5 x"),
		"/api/trans?q=" + url.QueryEscape("54 3"),
		"/api/graph?pattern=531&format=pdf",
		"/ws/gen?q=",
	}
	for _, path := range tests {
		resp := get(t, srv, path)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("GET %s: status = %d, want 400", path, resp.StatusCode)
			continue
		}
		var body errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
			t.Errorf("GET %s: error body %+v, %v", path, body, err)
		}
	}
}

func TestGraph(t *testing.T) {
	resp := get(t, newTestServer(t), "/api/graph?pattern=531&format=dot")
	if ct := resp.Header.Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("content type = %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(data), "digraph") {
		t.Errorf("body = %.30q", data)
	}
}

func TestGenStream(t *testing.T) {
	srv := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/gen?q=" + url.QueryEscape("3 4 2 -g")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	var patterns []string
	var final streamMessage
	for {
		var msg streamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatal(err)
		}
		if msg.Pattern == nil {
			final = msg
			break
		}
		patterns = append(patterns, msg.Pattern.Display)
	}

	if strings.Join(patterns, ",") != "42,3" {
		t.Errorf("patterns = %v", patterns)
	}
	if final.Reason != "completed" || final.Count != 2 {
		t.Errorf("final message = %+v", final)
	}
}
