package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/bitgraph-dev/bitgraph/pkg/graph"
)

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// GraphHash hashes a graph's canonical binary encoding. Structurally
// equal graphs produce the same hash, so cache entries are shared
// across uploads of the same graph.
func GraphHash(g *graph.Graph) (string, error) {
	var buf bytes.Buffer
	if err := g.Encode(&buf); err != nil {
		return "", err
	}
	return Hash(buf.Bytes()), nil
}

// ScoreKey builds the cache key for a score vector computed with the
// named algorithm over the graph identified by graphHash.
func ScoreKey(graphHash, algo string) string {
	return hashKey("score", graphHash, algo)
}

// RenderKey builds the cache key for a rendered artifact (dot, svg) of
// the graph identified by graphHash.
func RenderKey(graphHash, format string) string {
	return hashKey("render", graphHash, format)
}

// PathsKey builds the cache key for a path enumeration between two
// nodes of the graph identified by graphHash.
func PathsKey(graphHash string, from, to int, undirected bool) string {
	return hashKey("paths", graphHash, from, to, undirected)
}

// hashKey builds a key of the form prefix:hash(parts). Hashing the
// parts keeps keys fixed-length regardless of input size.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}
