package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/bitgraph-dev/bitgraph/pkg/graph"
)

func testCLI(t *testing.T) *CLI {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Cache.Dir = t.TempDir()
	return &CLI{
		Logger: newLogger(io.Discard, log.InfoLevel),
		Config: cfg,
	}
}

func run(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func writeGraphFile(t *testing.T, n int, edges [][2]int) string {
	t.Helper()
	b := graph.NewBuilder(n)
	for _, e := range edges {
		if err := b.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge error: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "graph.bin")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create graph file: %v", err)
	}
	if err := b.Build().Encode(f); err != nil {
		t.Fatalf("encode graph: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close graph file: %v", err)
	}
	return path
}

func TestInfoCommand(t *testing.T) {
	c := testCLI(t)
	path := writeGraphFile(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}})

	if err := run(t, c, "info", path); err != nil {
		t.Errorf("info error: %v", err)
	}
	if err := run(t, c, "info", path, "--disjoint"); err != nil {
		t.Errorf("info --disjoint error: %v", err)
	}
	if err := run(t, c, "info", filepath.Join(t.TempDir(), "absent.bin")); err == nil {
		t.Error("info on a missing file should error")
	}
}

func TestClosureCommand(t *testing.T) {
	c := testCLI(t)
	path := writeGraphFile(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 3}})

	if err := run(t, c, "closure", path, "0"); err != nil {
		t.Errorf("closure error: %v", err)
	}
	if err := run(t, c, "closure", path, "3", "--up"); err != nil {
		t.Errorf("closure --up error: %v", err)
	}
	if err := run(t, c, "closure", path, "0", "1", "--disjunction"); err != nil {
		t.Errorf("closure --disjunction error: %v", err)
	}
	if err := run(t, c, "closure", path, "9"); err == nil {
		t.Error("closure of an out-of-range node should error")
	}
	if err := run(t, c, "closure", path, "0", "--up", "--disjunction"); err == nil {
		t.Error("--up with --disjunction should error")
	}
}

func TestPathsCommand(t *testing.T) {
	c := testCLI(t)
	path := writeGraphFile(t, 4, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}})

	if err := run(t, c, "paths", path, "0", "3"); err != nil {
		t.Errorf("paths error: %v", err)
	}
	if err := run(t, c, "paths", path, "0", "3", "--shortest"); err != nil {
		t.Errorf("paths --shortest error: %v", err)
	}
	if err := run(t, c, "paths", path, "3", "0", "--undirected"); err != nil {
		t.Errorf("paths --undirected error: %v", err)
	}
	if err := run(t, c, "paths", path, "0", "x"); err == nil {
		t.Error("paths with a non-numeric node should error")
	}
}

func TestScoreCommand(t *testing.T) {
	c := testCLI(t)
	path := writeGraphFile(t, 3, [][2]int{{0, 2}, {1, 2}})

	// Second run should come from the file cache.
	for i := 0; i < 2; i++ {
		if err := run(t, c, "score", path, "--algo", "pagerank", "--top", "2"); err != nil {
			t.Errorf("score run %d error: %v", i, err)
		}
	}
	if err := run(t, c, "score", path, "--algo", "eigenvector", "--no-cache"); err != nil {
		t.Errorf("score eigenvector error: %v", err)
	}
	if err := run(t, c, "score", path, "--algo", "degree"); err == nil {
		t.Error("score with unknown algorithm should error")
	}
}

func TestRenderCommandDOT(t *testing.T) {
	c := testCLI(t)
	path := writeGraphFile(t, 2, [][2]int{{0, 1}})
	out := filepath.Join(t.TempDir(), "graph.dot")

	if err := run(t, c, "render", path, "-o", out); err != nil {
		t.Fatalf("render error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) == 0 {
		t.Error("render produced an empty file")
	}

	if err := run(t, c, "render", path, "-f", "gif"); err == nil {
		t.Error("render with unknown format should error")
	}
}

func TestOmitCommand(t *testing.T) {
	c := testCLI(t)
	path := writeGraphFile(t, 3, [][2]int{{0, 1}, {1, 2}})
	out := filepath.Join(t.TempDir(), "omitted.bin")

	if err := run(t, c, "omit", path, "1", "-o", out); err != nil {
		t.Fatalf("omit error: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	g, err := graph.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if g.Size() != 2 || g.EdgeCount() != 0 {
		t.Errorf("omitted graph has %d nodes, %d edges; want 2 nodes, 0 edges", g.Size(), g.EdgeCount())
	}

	if err := run(t, c, "omit", path, "1", "1", "-o", out); err == nil {
		t.Error("omitting the same node twice should error")
	}
}

func TestDiffCommand(t *testing.T) {
	c := testCLI(t)
	a := writeGraphFile(t, 3, [][2]int{{0, 1}})
	b := writeGraphFile(t, 3, [][2]int{{0, 1}, {1, 2}})

	if err := run(t, c, "diff", a, b); err != nil {
		t.Errorf("diff error: %v", err)
	}
	if err := run(t, c, "diff", a, a); err != nil {
		t.Errorf("diff of identical graphs error: %v", err)
	}
}
