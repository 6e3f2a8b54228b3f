package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/leapstack-labs/leapquery/internal/querydoc"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
	"github.com/leapstack-labs/leapquery/pkg/format"
)

// maxBodyBytes caps the size of a render request.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx response. Path and Line are
// set for query document errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Path  string `json:"path,omitempty"`
	Line  int    `json:"line,omitempty"`
}

// DialectInfo describes one registered dialect.
type DialectInfo struct {
	Name          string   `json:"name"`
	Placeholder   string   `json:"placeholder"`
	DefaultSchema string   `json:"default_schema"`
	Unsupported   []string `json:"unsupported"`
	Default       bool     `json:"default"`
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleDialects(w http.ResponseWriter, _ *http.Request) {
	def := dialect.Default()
	names := dialect.List()
	out := make([]DialectInfo, 0, len(names))
	for _, name := range names {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		unsupported := make([]string, 0)
		for _, k := range d.UnsupportedKinds() {
			unsupported = append(unsupported, k.String())
		}
		out = append(out, DialectInfo{
			Name:          d.Name,
			Placeholder:   d.Placeholder.String(),
			DefaultSchema: d.DefaultSchema,
			Unsupported:   unsupported,
			Default:       def != nil && def.Name == d.Name,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleRender renders the query document in the request body.
// Query parameters: dialect (default dialect when empty) and mode
// (inline or params, default inline).
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	d, err := dialect.Resolve(q.Get("dialect"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	mode, err := format.ParseMode(q.Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read request body: %w", err))
		return
	}

	doc, err := querydoc.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	out, err := querydoc.Render(doc, d, mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := ErrorResponse{Error: err.Error()}
	var docErr *querydoc.Error
	if errors.As(err, &docErr) {
		resp.Path = docErr.Path
		resp.Line = docErr.Line
	}
	writeJSON(w, status, resp)
}
