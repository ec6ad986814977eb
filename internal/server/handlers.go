package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bitgraph-dev/bitgraph/pkg/cache"
	apperrors "github.com/bitgraph-dev/bitgraph/pkg/errors"
	"github.com/bitgraph-dev/bitgraph/pkg/graph"
	"github.com/bitgraph-dev/bitgraph/pkg/observability"
	"github.com/bitgraph-dev/bitgraph/pkg/render"
	"github.com/bitgraph-dev/bitgraph/pkg/score"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"graphs": s.store.Len(),
	})
}

// uploadResponse is returned after a successful graph upload.
type uploadResponse struct {
	ID    string `json:"id"`
	Hash  string `json:"hash"`
	Nodes int    `json:"nodes"`
	Edges int    `json:"edges"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxGraphBytes)
	g, err := graph.Decode(body)
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode graph"))
		return
	}

	id, hash, err := s.store.Put(g)
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInternal, err, "store graph"))
		return
	}

	s.log.Info("graph uploaded", "id", id, "nodes", g.Size(), "edges", g.EdgeCount())
	s.writeJSON(w, http.StatusCreated, uploadResponse{
		ID:    id,
		Hash:  hash,
		Nodes: g.Size(),
		Edges: g.EdgeCount(),
	})
}

// infoResponse summarizes a stored graph.
type infoResponse struct {
	ID          string `json:"id"`
	Hash        string `json:"hash"`
	Nodes       int    `json:"nodes"`
	Edges       int    `json:"edges"`
	TopLevel    []int  `json:"top_level"`
	BottomLevel []int  `json:"bottom_level"`
	Connectors  []int  `json:"connectors"`
	Orphans     []int  `json:"orphans"`
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	g, hash, id, ok := s.graphFor(w, r)
	if !ok {
		return
	}

	s.writeJSON(w, http.StatusOK, infoResponse{
		ID:          id,
		Hash:        hash,
		Nodes:       g.Size(),
		Edges:       g.EdgeCount(),
		TopLevel:    g.TopLevelNodes().Bits(),
		BottomLevel: g.BottomLevelNodes().Bits(),
		Connectors:  g.Connectors().Bits(),
		Orphans:     g.Orphans().Bits(),
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := apperrors.ValidateGraphID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if !s.store.Delete(id) {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeGraphNotFound, "no graph with ID %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	g, _, _, ok := s.graphFor(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	if err := g.Encode(w); err != nil {
		s.log.Error("encode graph", "err", err)
	}
}

func (s *Server) handleClosure(w http.ResponseWriter, r *http.Request) {
	g, _, _, ok := s.graphFor(w, r)
	if !ok {
		return
	}

	node, err := apperrors.ValidateNodeIndex(r.URL.Query().Get("node"), g.Size())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var bits []int
	switch dir := r.URL.Query().Get("direction"); dir {
	case "", "down":
		bits = g.ClosureOf(node).Bits()
	case "up":
		bits = g.ReverseClosureOf(node).Bits()
	default:
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "unknown direction: %q", dir))
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"node":      node,
		"closure":   bits,
		"recursive": g.IsRecursive(node),
	})
}

func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	g, hash, _, ok := s.graphFor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	from, err := apperrors.ValidateNodeIndex(q.Get("from"), g.Size())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	to, err := apperrors.ValidateNodeIndex(q.Get("to"), g.Size())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	undirected := q.Get("undirected") == "true"

	ctx := r.Context()
	key := cache.PathsKey(hash, from, to, undirected)
	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "paths")
		s.writeRawJSON(w, http.StatusOK, data)
		return
	}
	observability.Cache().OnCacheMiss(ctx, "paths")

	start := time.Now()
	observability.Engine().OnPathsStart(ctx, from, to)

	var paths []*graph.Path
	if undirected {
		paths = g.UndirectedPathsBetween(from, to)
	} else {
		paths = g.PathsBetween(from, to)
	}
	observability.Engine().OnPathsComplete(ctx, from, to, len(paths), time.Since(start))

	out := make([][]int, len(paths))
	for i, p := range paths {
		out[i] = p.Nodes()
	}
	data, err := json.Marshal(map[string]any{
		"from":     from,
		"to":       to,
		"paths":    out,
		"distance": g.Distance(from, to),
	})
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInternal, err, "marshal paths"))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cfg.CacheTTL); err != nil {
		s.log.Warn("cache paths result", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "paths", len(data))
	}
	s.writeRawJSON(w, http.StatusOK, data)
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	g, hash, _, ok := s.graphFor(w, r)
	if !ok {
		return
	}

	algo := r.URL.Query().Get("algo")
	if algo == "" {
		algo = score.AlgoPageRank
	}
	if err := apperrors.ValidateAlgorithm(algo, score.AlgoPageRank, score.AlgoEigenvector); err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	key := cache.ScoreKey(hash, algo)
	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "score")
		s.writeRawJSON(w, http.StatusOK, data)
		return
	}
	observability.Cache().OnCacheMiss(ctx, "score")

	fn, err := score.ByName(algo)
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidAlgo, err, "resolve algorithm"))
		return
	}

	start := time.Now()
	observability.Engine().OnScoreStart(ctx, algo, g.Size())
	scores, err := fn(g)
	observability.Engine().OnScoreComplete(ctx, algo, time.Since(start), err)
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInternal, err, "compute %s", algo))
		return
	}

	data, err := json.Marshal(map[string]any{"algo": algo, "scores": scores})
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInternal, err, "marshal scores"))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cfg.CacheTTL); err != nil {
		s.log.Warn("cache score result", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "score", len(data))
	}
	s.writeRawJSON(w, http.StatusOK, data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	g, hash, _, ok := s.graphFor(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "dot"
	}
	if err := apperrors.ValidateFormat(format, "dot", "svg"); err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	contentType := "text/vnd.graphviz"
	if format == "svg" {
		contentType = "image/svg+xml"
	}

	key := cache.RenderKey(hash, format)
	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "render")
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(data)
		return
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	start := time.Now()
	observability.Engine().OnRenderStart(ctx, format, g.Size())
	data := []byte(render.ToDOT(g, render.Options{HighlightTopLevel: true}))
	var err error
	if format == "svg" {
		data, err = render.SVG(ctx, string(data))
	}
	observability.Engine().OnRenderComplete(ctx, format, time.Since(start), err)
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInternal, err, "render %s", format))
		return
	}

	if err := s.cache.Set(ctx, key, data, s.cfg.CacheTTL); err != nil {
		s.log.Warn("cache render result", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

// graphFor resolves the {id} URL parameter to a stored graph, writing
// the error response itself when resolution fails.
func (s *Server) graphFor(w http.ResponseWriter, r *http.Request) (*graph.Graph, string, string, bool) {
	id := chi.URLParam(r, "id")
	if err := apperrors.ValidateGraphID(id); err != nil {
		s.writeError(w, r, err)
		return nil, "", "", false
	}
	g, hash, ok := s.store.Get(id)
	if !ok {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeGraphNotFound, "no graph with ID %s", id))
		return nil, "", "", false
	}
	return g, hash, id, true
}

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidNode,
		apperrors.ErrCodeInvalidAlgo, apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidID:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeGraphNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeUnsupported:
		status = http.StatusUnprocessableEntity
	}

	if status >= 500 {
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	s.writeJSON(w, status, errorResponse{
		Code:    apperrors.GetCode(err),
		Message: apperrors.UserMessage(err),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "err", err)
	}
}

func (s *Server) writeRawJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
