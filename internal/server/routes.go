package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ha1tch/orbview/pkg/orbit"
	"github.com/ha1tch/orbview/pkg/session"
)

// Hard limits on snapshot parameters, independent of config.
const (
	maxSnapshotDim   = 4096
	maxSnapshotScale = 8
	maxSnapshotSteps = 5000
)

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	entities, err := s.st.List()
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"count":    len(entities),
		"sessions": entities,
	})
}

func (s *Server) handleAddSession(w http.ResponseWriter, r *http.Request) {
	var ent session.Entity
	if err := json.NewDecoder(r.Body).Decode(&ent); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if ent.DisplayName == "" {
		http.Error(w, `{"error":"displayName required"}`, http.StatusBadRequest)
		return
	}

	created, err := s.st.Add(ent)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (s *Server) handleRemoveSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.st.Remove(id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, `{"error":"session not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "removed", "id": id})
}

func (s *Server) handleSnapshotPNG(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.snapshotOptions(w, r)
	if !ok {
		return
	}

	entities, err := s.st.List()
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := orbit.WritePNG(&buf, entities, opts); err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func (s *Server) handleSnapshotSVG(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.snapshotOptions(w, r)
	if !ok {
		return
	}

	entities, err := s.st.List()
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := orbit.WriteSVG(&buf, entities, opts); err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

// snapshotOptions builds export options from the config defaults plus
// query overrides, writing a 400 and returning false on anything out of
// range.
func (s *Server) snapshotOptions(w http.ResponseWriter, r *http.Request) (orbit.SnapshotOptions, bool) {
	opts := orbit.SnapshotOptions{
		Width:  s.export.Width,
		Height: s.export.Height,
		Scale:  s.export.Scale,
		Steps:  s.export.Steps,
		Labels: true,
	}

	q := r.URL.Query()
	bad := func(msg string) (orbit.SnapshotOptions, bool) {
		http.Error(w, `{"error":"`+msg+`"}`, http.StatusBadRequest)
		return opts, false
	}

	if v := q.Get("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 16 || n > maxSnapshotDim {
			return bad("width must be 16-4096")
		}
		opts.Width = n
	}
	if v := q.Get("height"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 16 || n > maxSnapshotDim {
			return bad("height must be 16-4096")
		}
		opts.Height = n
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 1 || f > maxSnapshotScale {
			return bad("scale must be 1-8")
		}
		opts.Scale = f
	}
	if v := q.Get("steps"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxSnapshotSteps {
			return bad("steps must be 0-5000")
		}
		opts.Steps = n
	}
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}

	return opts, true
}
