package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bitgraph-dev/bitgraph/pkg/cache"
	"github.com/bitgraph-dev/bitgraph/pkg/graph"
)

// Store holds uploaded graphs in memory, keyed by server-assigned UUID.
// Graphs are immutable, so entries can be read without copying.
type Store struct {
	mu     sync.RWMutex
	graphs map[string]*storeEntry
}

type storeEntry struct {
	graph   *graph.Graph
	hash    string
	created time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{graphs: make(map[string]*storeEntry)}
}

// Put registers a graph and returns its assigned ID and content hash.
func (s *Store) Put(g *graph.Graph) (id, hash string, err error) {
	hash, err = cache.GraphHash(g)
	if err != nil {
		return "", "", err
	}

	id = uuid.NewString()
	s.mu.Lock()
	s.graphs[id] = &storeEntry{graph: g, hash: hash, created: time.Now()}
	s.mu.Unlock()
	return id, hash, nil
}

// Get returns the graph and content hash stored under id.
func (s *Store) Get(id string) (*graph.Graph, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.graphs[id]
	if !ok {
		return nil, "", false
	}
	return e.graph, e.hash, true
}

// Delete removes the graph stored under id and reports whether it
// existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.graphs[id]; !ok {
		return false
	}
	delete(s.graphs, id)
	return true
}

// Len returns the number of stored graphs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.graphs)
}
