package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/refgraph/pkg/buildinfo"
	"github.com/matzehuels/refgraph/pkg/cache"
	apperrors "github.com/matzehuels/refgraph/pkg/errors"
	"github.com/matzehuels/refgraph/pkg/manifest"
	"github.com/matzehuels/refgraph/pkg/pipeline"
	"github.com/matzehuels/refgraph/pkg/snapshot"
	"github.com/matzehuels/refgraph/pkg/store"
)

// maxGraphBytes caps uploaded graph documents.
const maxGraphBytes = 10 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleSaveGraph stores an uploaded graph. JSON bodies are decoded as
// snapshots, anything else as a TOML manifest. The ?name= parameter
// overrides the name carried by the document.
func (s *Server) handleSaveGraph(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxGraphBytes))
	if err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	snap, err := decodeGraph(r.Header.Get("Content-Type"), body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = snap.Name
	}
	if name == "" {
		name = "untitled"
	}
	snap.Name = name

	record, err := s.store.Save(r.Context(), name, snap)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// decodeGraph interprets an uploaded document by its declared content type.
func decodeGraph(contentType string, body []byte) (snapshot.Graph, error) {
	if strings.Contains(contentType, "json") {
		snap, err := snapshot.Unmarshal(body)
		if err != nil {
			return snapshot.Graph{}, apperrors.Wrap(apperrors.ErrCodeInvalidSnapshot, err, "decode snapshot")
		}
		return snap, nil
	}
	m, err := manifest.Parse(body)
	if err != nil {
		return snapshot.Graph{}, err
	}
	return snapshot.FromGraph(m.Build(), m.Name()), nil
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if records == nil {
		records = []store.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	entry, err := s.store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAnalyze runs one analysis op against a stored graph. Reach ops
// take the start vertex from ?vertex=.
func (s *Server) handleAnalyze(op string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		entry, err := s.store.Load(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}

		opts := pipeline.Options{
			Op:     op,
			Vertex: r.URL.Query().Get("vertex"),
			Logger: s.logger,
		}
		analysis, err := s.runnerFor(id).Analyze(r.Context(), entry.Graph.Materialize(), graphHash(entry.Graph), opts)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, analysis)
	}
}

// handleRender streams one artifact for a stored graph. The format
// defaults to DOT; ?labelled=true renders annotations as node labels.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, err := s.store.Load(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.DefaultFormat
	}
	opts := pipeline.Options{
		Formats:  []string{format},
		Labelled: q.Get("labelled") == "true",
		Logger:   s.logger,
	}

	artifacts, err := s.runnerFor(id).Render(r.Context(), entry.Graph, graphHash(entry.Graph), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// graphHash fingerprints a snapshot for cache keying.
func graphHash(snap snapshot.Graph) string {
	data, err := snapshot.Marshal(snap)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// contentTypeFor maps output formats to MIME types.
func contentTypeFor(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatJSON:
		return "application/json"
	default:
		return "text/vnd.graphviz"
	}
}
