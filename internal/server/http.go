package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mithrel/copilotmd/internal/db"
	"github.com/mithrel/copilotmd/internal/present/format"
	"github.com/mithrel/copilotmd/internal/util"
	"github.com/mithrel/copilotmd/pkg/api"
	"github.com/mithrel/copilotmd/pkg/markdown"
)

// maxBody caps request bodies; answers are a few kilobytes.
const maxBody = 1 << 20

// Server serves the render and history endpoints backed by a Store.
type Server struct {
	cfg   *viper.Viper
	store db.Store
	now   func() time.Time
}

func New(cfg *viper.Viper, store db.Store) *Server {
	return &Server{cfg: cfg, store: store, now: time.Now}
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/render", s.handleRender)
	mux.HandleFunc("/v1/sections", s.handleSections)
	mux.HandleFunc("/v1/history", s.auth(s.handleHistory))
	mux.HandleFunc("/v1/history/", s.auth(s.handleHistoryItem))
	return logRequests(mux)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpSrv := &http.Server{Addr: addr, Handler: s.Router(), ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("http: %s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}

// auth enforces a bearer token when auth.token is configured.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimSpace(s.cfg.GetString("auth.token"))
		if tok == "" {
			next.ServeHTTP(w, r)
			return
		}
		got := r.Header.Get("Authorization")
		if !strings.HasPrefix(got, "Bearer ") || strings.TrimSpace(strings.TrimPrefix(got, "Bearer ")) != tok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeBodyError answers 413 when the body hit maxBody and 400 otherwise.
func writeBodyError(w http.ResponseWriter, err error, msg string) {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, msg)
}

// readText returns the answer text of a render request: the "text" field
// of a JSON body, or the raw body otherwise. An empty body is empty text.
func readText(w http.ResponseWriter, r *http.Request) (string, error) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", nil
	}
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "application/json" {
		return string(b), nil
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(b, &req); err != nil {
		return "", err
	}
	return req.Text, nil
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	text, err := readText(w, r)
	if err != nil {
		writeBodyError(w, err, "bad request body")
		return
	}
	blocks := markdown.Parse(text)
	switch f := r.URL.Query().Get("format"); f {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		_ = format.WriteJSONDocument(w, blocks, false)
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = format.WriteHTMLDocument(w, blocks)
	case "plain":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_ = format.WritePlainDocument(w, blocks)
	default:
		writeError(w, http.StatusBadRequest, "unknown format "+strconv.Quote(f))
	}
}

func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	text, err := readText(w, r)
	if err != nil {
		writeBodyError(w, err, "bad request body")
		return
	}
	secs := markdown.SplitSections(text)
	if secs == nil {
		secs = markdown.Sections{}
	}
	writeJSON(w, http.StatusOK, secs)
}

type historyRequest struct {
	Query     string   `json:"query"`
	Response  string   `json:"response"`
	Citations []string `json:"citations"`
	Model     string   `json:"model"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listHistory(w, r)
	case http.MethodPost:
		s.addHistory(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	since, until, err := util.ParseTimeRange(strings.TrimSpace(q.Get("since")), strings.TrimSpace(q.Get("until")), s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lq := api.ListQuery{Since: since, Until: until}
	if ls := strings.TrimSpace(q.Get("limit")); ls != "" {
		n, err := strconv.Atoi(ls)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad limit")
			return
		}
		lq.Limit = n
	}
	items, err := s.store.List(r.Context(), lq)
	if err != nil {
		log.Printf("history: list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	if items == nil {
		items = []api.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) addHistory(w http.ResponseWriter, r *http.Request) {
	var req historyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		writeBodyError(w, err, "bad json")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "missing query")
		return
	}
	e, err := s.store.Put(r.Context(), api.Entry{
		Query:     req.Query,
		Response:  req.Response,
		Citations: req.Citations,
		Model:     req.Model,
	})
	if err != nil {
		log.Printf("history: put failed: %v", err)
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}
	if keep := s.cfg.GetInt("history.max_entries"); keep > 0 {
		if n, err := s.store.Prune(r.Context(), keep); err != nil {
			log.Printf("history: prune failed: %v", err)
		} else if n > 0 {
			log.Printf("history: pruned %d", n)
		}
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleHistoryItem(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/history/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		e, err := s.store.Get(r.Context(), id)
		if err != nil {
			s.storeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	case http.MethodDelete:
		if err := s.store.Delete(r.Context(), id); err != nil {
			s.storeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	log.Printf("history: %v", err)
	writeError(w, http.StatusInternalServerError, "store failed")
}
