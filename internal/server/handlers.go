package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tobim/smartgraph/pkg/cache"
	"github.com/tobim/smartgraph/pkg/diagram"
	"github.com/tobim/smartgraph/pkg/diagram/dgmxml"
	apperrors "github.com/tobim/smartgraph/pkg/errors"
	"github.com/tobim/smartgraph/pkg/render"
)

// maxDocumentSize bounds PUT bodies. Diagram-data documents are small;
// anything near this size is not one.
const maxDocumentSize = 10 << 20

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	respondJSON(w, http.StatusOK, map[string][]string{"diagrams": names})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := apperrors.ValidateDiagramName(name); err != nil {
		s.respondError(w, r, err)
		return
	}
	rec, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write(rec.Blob)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := apperrors.ValidateDiagramName(name); err != nil {
		s.respondError(w, r, err)
		return
	}
	blob, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentSize))
	if err != nil {
		s.respondError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	// Reject documents the editing operations could not work with.
	if _, err := dgmxml.Load(blob); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.store.Put(r.Context(), name, blob); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := apperrors.ValidateDiagramName(name); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), name); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// addNodeRequest is the body of POST /diagrams/{name}/nodes.
type addNodeRequest struct {
	Text string `json:"text"`
	// Parent is "sibling" (default), "root", or "under".
	Parent string `json:"parent,omitempty"`
	// Under is the index of the parent node when Parent is "under".
	Under int `json:"under,omitempty"`
}

// addNodeResponse reports the created node.
type addNodeResponse struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
}

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := apperrors.ValidateDiagramName(name); err != nil {
		s.respondError(w, r, err)
		return
	}
	var req addNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode body"))
		return
	}

	rec, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	part, err := dgmxml.Load(rec.Blob)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	sa := part.SmartArt()

	var parent diagram.Parent
	switch req.Parent {
	case "", "sibling":
		parent = diagram.Sibling()
	case "root":
		parent = diagram.AtRoot()
	case "under":
		nodes := sa.EditableNodes()
		if req.Under < 0 || req.Under >= len(nodes) {
			s.respondError(w, r, apperrors.New(apperrors.ErrCodeIndexOutOfRange,
				"node index %d out of range (have %d editable nodes)", req.Under, len(nodes)))
			return
		}
		parent = diagram.Under(nodes[req.Under])
	default:
		s.respondError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput,
			"unknown parent %q (want sibling, root, or under)", req.Parent))
		return
	}

	node, err := sa.AddNode(req.Text, parent)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.store.Put(r.Context(), name, part.Blob()); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, addNodeResponse{
		ID:    node.ID(),
		Index: len(sa.EditableNodes()) - 1,
	})
}

func (s *Server) handleRemoveNode(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := apperrors.ValidateDiagramName(name); err != nil {
		s.respondError(w, r, err)
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.respondError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse node index"))
		return
	}

	rec, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	part, err := dgmxml.Load(rec.Blob)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := part.SmartArt().RemoveNodeAt(index); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.store.Put(r.Context(), name, part.Blob()); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := apperrors.ValidateDiagramName(name); err != nil {
		s.respondError(w, r, err)
		return
	}
	detailed := r.URL.Query().Get("detailed") == "true"

	rec, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	// Artifacts are keyed by document content, so a stale entry for an
	// updated diagram simply never gets hit again.
	key := s.keyer.RenderKey(cache.Hash(rec.Blob), cache.RenderKeyOpts{Format: "svg", Detailed: detailed})
	if data, ok, cacheErr := s.cache.Get(r.Context(), key); cacheErr != nil {
		s.logger.Warn("cache read failed", "key", key, "error", cacheErr)
	} else if ok {
		writeSVG(w, data)
		return
	}

	part, err := dgmxml.Load(rec.Blob)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	dot := render.ToDOT(part.Model(), render.Options{Detailed: detailed})
	data, err := render.SVG(dot)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.cache.Set(r.Context(), key, data, s.ttl); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}
	writeSVG(w, data)
}

func writeSVG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(data)
}
