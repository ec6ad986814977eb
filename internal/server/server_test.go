package server

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bitgraph-dev/bitgraph/pkg/cache"
	"github.com/bitgraph-dev/bitgraph/pkg/graph"
)

// countingCache wraps another cache and counts hits and writes.
type countingCache struct {
	cache.Cache
	mu   sync.Mutex
	hits int
	sets int
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if hit {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
	}
	return data, hit, err
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	return c.Cache.Set(ctx, key, data, ttl)
}

func newTestServer(t *testing.T) (*httptest.Server, *countingCache) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	cc := &countingCache{Cache: fc}
	s := New(Config{}, log.New(io.Discard), cc)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts, cc
}

func encodeGraph(t *testing.T, n int, edges [][2]int) []byte {
	t.Helper()
	b := graph.NewBuilder(n)
	for _, e := range edges {
		if err := b.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge error: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := b.Build().Encode(&buf); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	return buf.Bytes()
}

func upload(t *testing.T, ts *httptest.Server, data []byte) uploadResponse {
	t.Helper()
	resp, err := http.Post(ts.URL+"/v1/graphs/", "application/octet-stream", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload status = %d, want 201", resp.StatusCode)
	}
	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	return out
}

func getJSON(t *testing.T, url string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s error: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s status = %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func TestUploadAndInfo(t *testing.T) {
	ts, _ := newTestServer(t)

	up := upload(t, ts, encodeGraph(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}}))
	if up.Nodes != 4 || up.Edges != 3 {
		t.Errorf("upload = %+v, want 4 nodes, 3 edges", up)
	}
	if up.ID == "" || up.Hash == "" {
		t.Errorf("upload missing ID or hash: %+v", up)
	}

	var info infoResponse
	getJSON(t, ts.URL+"/v1/graphs/"+up.ID+"/", http.StatusOK, &info)
	if info.Nodes != 4 || info.Edges != 3 {
		t.Errorf("info = %+v, want 4 nodes, 3 edges", info)
	}
	if len(info.TopLevel) != 1 || info.TopLevel[0] != 0 {
		t.Errorf("TopLevel = %v, want [0]", info.TopLevel)
	}
	if len(info.BottomLevel) != 1 || info.BottomLevel[0] != 3 {
		t.Errorf("BottomLevel = %v, want [3]", info.BottomLevel)
	}
}

func TestUploadRejectsGarbage(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/graphs/", "application/octet-stream", strings.NewReader("not a graph"))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUploadRejectsForgedHeader(t *testing.T) {
	ts, _ := newTestServer(t)

	// A header declaring the maximum node count over an 8-byte body
	// must be rejected as invalid input, not allocated.
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, graph.FormatVersion)
	binary.Write(&buf, binary.BigEndian, int32(1<<31-1))

	resp, err := http.Post(ts.URL+"/v1/graphs/", "application/octet-stream", &buf)
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGraphNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	getJSON(t, ts.URL+"/v1/graphs/b6f1a4c8-9a6d-4c9e-8a1e-0f6d4c9e8a1e/", http.StatusNotFound, nil)
	getJSON(t, ts.URL+"/v1/graphs/not-a-uuid/", http.StatusBadRequest, nil)
}

func TestClosureEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	up := upload(t, ts, encodeGraph(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 3}}))

	var out struct {
		Node      int   `json:"node"`
		Closure   []int `json:"closure"`
		Recursive bool  `json:"recursive"`
	}
	getJSON(t, ts.URL+"/v1/graphs/"+up.ID+"/closure?node=0", http.StatusOK, &out)
	if want := []int{0, 1, 2, 3}; !equalInts(out.Closure, want) {
		t.Errorf("closure = %v, want %v", out.Closure, want)
	}
	if !out.Recursive {
		t.Error("node 0 sits on a cycle, want recursive = true")
	}

	getJSON(t, ts.URL+"/v1/graphs/"+up.ID+"/closure?node=3&direction=up", http.StatusOK, &out)
	if want := []int{0, 1, 2}; !equalInts(out.Closure, want) {
		t.Errorf("reverse closure = %v, want %v", out.Closure, want)
	}

	getJSON(t, ts.URL+"/v1/graphs/"+up.ID+"/closure?node=9", http.StatusBadRequest, nil)
	getJSON(t, ts.URL+"/v1/graphs/"+up.ID+"/closure?node=0&direction=sideways", http.StatusBadRequest, nil)
}

func TestPathsEndpoint(t *testing.T) {
	ts, cc := newTestServer(t)
	up := upload(t, ts, encodeGraph(t, 4, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}}))

	var out struct {
		Paths    [][]int `json:"paths"`
		Distance int     `json:"distance"`
	}
	getJSON(t, ts.URL+"/v1/graphs/"+up.ID+"/paths?from=0&to=3", http.StatusOK, &out)
	if len(out.Paths) != 2 {
		t.Fatalf("paths = %v, want 2 paths", out.Paths)
	}
	if out.Distance != 2 {
		t.Errorf("distance = %d, want 2", out.Distance)
	}

	// Repeating the query serves the enumeration from the cache.
	getJSON(t, ts.URL+"/v1/graphs/"+up.ID+"/paths?from=0&to=3", http.StatusOK, &out)
	if len(out.Paths) != 2 || out.Distance != 2 {
		t.Errorf("cached response = %+v, want 2 paths, distance 2", out)
	}
	if cc.hits != 1 {
		t.Errorf("cache hits = %d, want 1 on second request", cc.hits)
	}
	if cc.sets != 1 {
		t.Errorf("cache sets = %d, want 1", cc.sets)
	}

	getJSON(t, ts.URL+"/v1/graphs/"+up.ID+"/paths?from=0", http.StatusBadRequest, nil)
}

func TestScoreEndpointCaches(t *testing.T) {
	ts, cc := newTestServer(t)
	up := upload(t, ts, encodeGraph(t, 3, [][2]int{{0, 2}, {1, 2}}))

	var out struct {
		Algo   string    `json:"algo"`
		Scores []float64 `json:"scores"`
	}
	getJSON(t, ts.URL+"/v1/graphs/"+up.ID+"/score?algo=pagerank", http.StatusOK, &out)
	if out.Algo != "pagerank" || len(out.Scores) != 3 {
		t.Fatalf("score response = %+v", out)
	}
	if out.Scores[2] <= out.Scores[0] {
		t.Errorf("sink should rank highest: %v", out.Scores)
	}

	getJSON(t, ts.URL+"/v1/graphs/"+up.ID+"/score?algo=pagerank", http.StatusOK, &out)
	if cc.hits != 1 {
		t.Errorf("cache hits = %d, want 1 on second request", cc.hits)
	}
	if cc.sets != 1 {
		t.Errorf("cache sets = %d, want 1", cc.sets)
	}

	getJSON(t, ts.URL+"/v1/graphs/"+up.ID+"/score?algo=degree", http.StatusBadRequest, nil)
}

func TestRenderEndpointDOT(t *testing.T) {
	ts, _ := newTestServer(t)
	up := upload(t, ts, encodeGraph(t, 2, [][2]int{{0, 1}}))

	resp, err := http.Get(ts.URL + "/v1/graphs/" + up.ID + "/render?format=dot")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("Content-Type = %q", ct)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(buf.String(), "digraph G {") {
		t.Errorf("body is not DOT:\n%s", buf.String())
	}

	getJSON(t, ts.URL+"/v1/graphs/"+up.ID+"/render?format=gif", http.StatusBadRequest, nil)
}

func TestDownloadRoundTrip(t *testing.T) {
	ts, _ := newTestServer(t)
	raw := encodeGraph(t, 3, [][2]int{{0, 1}, {1, 2}})
	up := upload(t, ts, raw)

	resp, err := http.Get(ts.URL + "/v1/graphs/" + up.ID + "/encoded")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()
	g, err := graph.Decode(resp.Body)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if g.Size() != 3 || !g.HasEdge(0, 1) || !g.HasEdge(1, 2) {
		t.Errorf("downloaded graph does not match upload")
	}
}

func TestDeleteGraph(t *testing.T) {
	ts, _ := newTestServer(t)
	up := upload(t, ts, encodeGraph(t, 2, [][2]int{{0, 1}}))

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/v1/graphs/"+up.ID+"/", nil)
	if err != nil {
		t.Fatalf("NewRequest error: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}

	getJSON(t, ts.URL+"/v1/graphs/"+up.ID+"/", http.StatusNotFound, nil)

	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	var out struct {
		Status string `json:"status"`
		Graphs int    `json:"graphs"`
	}
	getJSON(t, ts.URL+"/health", http.StatusOK, &out)
	if out.Status != "ok" || out.Graphs != 0 {
		t.Errorf("health = %+v", out)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
