package graph

import (
	"testing"
)

func pathsAsStrings(paths []*Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.String()
	}
	return out
}

func TestPathsBetweenCycleScenario(t *testing.T) {
	g := cycleGraph(t)

	paths := g.PathsBetween(0, 3)
	if len(paths) != 1 {
		t.Fatalf("PathsBetween(0, 3) = %v, want one path", pathsAsStrings(paths))
	}
	if want := NewPath(0, 1, 2, 3); !paths[0].Equals(want) {
		t.Errorf("PathsBetween(0, 3)[0] = %s, want %s", paths[0], want)
	}
}

func TestPathsBetweenDiamond(t *testing.T) {
	g := build(t, 4, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}})

	paths := g.PathsBetween(0, 3)
	if len(paths) != 2 {
		t.Fatalf("PathsBetween(0, 3) = %v, want two paths", pathsAsStrings(paths))
	}
	if !paths[0].Equals(NewPath(0, 1, 3)) || !paths[1].Equals(NewPath(0, 2, 3)) {
		t.Errorf("PathsBetween(0, 3) = %v, want [0 -> 1 -> 3, 0 -> 2 -> 3]", pathsAsStrings(paths))
	}
}

func TestPathsBetweenSortedByLength(t *testing.T) {
	// Direct edge plus a longer detour.
	g := build(t, 4, [][2]int{{0, 3}, {0, 1}, {1, 2}, {2, 3}})

	paths := g.PathsBetween(0, 3)
	if len(paths) != 2 {
		t.Fatalf("PathsBetween(0, 3) = %v, want two paths", pathsAsStrings(paths))
	}
	if !paths[0].Equals(NewPath(0, 3)) {
		t.Errorf("shortest path first: got %s, want 0 -> 3", paths[0])
	}
	if !paths[1].Equals(NewPath(0, 1, 2, 3)) {
		t.Errorf("detour path: got %s, want 0 -> 1 -> 2 -> 3", paths[1])
	}
	for i := 1; i < len(paths); i++ {
		if paths[i-1].Compare(paths[i]) > 0 {
			t.Errorf("paths not sorted at %d: %s > %s", i, paths[i-1], paths[i])
		}
	}
}

func TestPathsBetweenNone(t *testing.T) {
	g := build(t, 3, [][2]int{{0, 1}})

	if paths := g.PathsBetween(1, 0); len(paths) != 0 {
		t.Errorf("PathsBetween(1, 0) = %v, want none", pathsAsStrings(paths))
	}
	if paths := g.PathsBetween(0, 2); len(paths) != 0 {
		t.Errorf("PathsBetween(0, 2) = %v, want none", pathsAsStrings(paths))
	}
}

func TestShortestPathBetweenDirectionalFallback(t *testing.T) {
	g := build(t, 3, [][2]int{{0, 1}, {1, 2}})

	if p := g.ShortestPathBetween(0, 2); p == nil || !p.Equals(NewPath(0, 1, 2)) {
		t.Errorf("ShortestPathBetween(0, 2) = %v, want 0 -> 1 -> 2", p)
	}
	// No directed path 2 -> 0; the reverse direction is reported instead.
	if p := g.ShortestPathBetween(2, 0); p == nil || !p.Equals(NewPath(0, 1, 2)) {
		t.Errorf("ShortestPathBetween(2, 0) = %v, want fallback 0 -> 1 -> 2", p)
	}
}

func TestUndirectedPathsBetween(t *testing.T) {
	// 0 -> 1 <- 2: no directed path 0 to 2, but an undirected one.
	g := build(t, 3, [][2]int{{0, 1}, {2, 1}})

	if paths := g.PathsBetween(0, 2); len(paths) != 0 {
		t.Fatalf("directed PathsBetween(0, 2) = %v, want none", pathsAsStrings(paths))
	}

	paths := g.UndirectedPathsBetween(0, 2)
	if len(paths) != 1 || !paths[0].Equals(NewPath(0, 1, 2)) {
		t.Errorf("UndirectedPathsBetween(0, 2) = %v, want [0 -> 1 -> 2]", pathsAsStrings(paths))
	}

	if p := g.ShortestUndirectedPathBetween(0, 2); p == nil || p.Len() != 3 {
		t.Errorf("ShortestUndirectedPathBetween(0, 2) = %v, want length-3 path", p)
	}
}

func TestDistance(t *testing.T) {
	g := build(t, 4, [][2]int{{0, 1}, {1, 2}})

	tests := []struct {
		a, b, want int
	}{
		{0, 2, 2},
		{2, 0, 2}, // reverse fallback
		{0, 3, -1},
	}
	for _, tt := range tests {
		if got := g.Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPathsBetweenSelfLoop(t *testing.T) {
	g := build(t, 2, [][2]int{{0, 0}})

	paths := g.PathsBetween(0, 0)
	if len(paths) != 1 || !paths[0].Equals(NewPath(0, 0)) {
		t.Errorf("PathsBetween(0, 0) = %v, want [0 -> 0]", pathsAsStrings(paths))
	}
}
