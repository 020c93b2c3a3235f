package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/daygrid/internal/calendar"
	"github.com/sandeepkv93/daygrid/internal/session"
	"github.com/sandeepkv93/daygrid/internal/storage"
)

// Store is the row storage the server exposes.
type Store interface {
	storage.Rows
	storage.DayReplacer
	GetRow(ctx context.Context, userID string, id int64) (storage.Row, error)
}

type Server struct {
	store    Store
	tokens   session.Tokens
	sessions session.Provider
	log      zerolog.Logger
}

func New(store Store, tokens session.Tokens, logger zerolog.Logger) *Server {
	return &Server{
		store:    store,
		tokens:   tokens,
		sessions: session.FromContext{},
		log:      logger,
	}
}

func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /api/tasks", s.listTasks)
	api.HandleFunc("GET /api/tasks/{id}", s.getTask)
	api.HandleFunc("POST /api/tasks", s.insertTasks)
	api.HandleFunc("DELETE /api/tasks", s.deleteDay)
	api.HandleFunc("PUT /api/days/{date}", s.replaceDay)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	mux.Handle("/api/", requireUser(s.tokens)(api))

	return chain(mux, withRequestID, withAccessLog(s.log), withRecover(s.log))
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// GET /api/tasks[?date=YYYY-MM-DD]
func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	user, _ := s.sessions.CurrentUser(r.Context())
	filter := storage.RowFilter{}
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		key, err := parseDate(raw)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.Date = key
	}
	rows, err := s.store.SelectByOwner(r.Context(), user, filter)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GET /api/tasks/{id}
func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	user, _ := s.sessions.CurrentUser(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeErr(w, http.StatusBadRequest, "invalid task id")
		return
	}
	row, err := s.store.GetRow(r.Context(), user, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// POST /api/tasks
func (s *Server) insertTasks(w http.ResponseWriter, r *http.Request) {
	user, _ := s.sessions.CurrentUser(r.Context())
	var in []storage.Row
	if err := decodeJSON(w, r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := validateRows(in, ""); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := s.store.BulkInsert(r.Context(), user, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rows)
}

// DELETE /api/tasks?date=YYYY-MM-DD
func (s *Server) deleteDay(w http.ResponseWriter, r *http.Request) {
	user, _ := s.sessions.CurrentUser(r.Context())
	key, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	n, err := s.store.DeleteByOwnerAndDate(r.Context(), user, key)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": n})
}

// PUT /api/days/{date}
func (s *Server) replaceDay(w http.ResponseWriter, r *http.Request) {
	user, _ := s.sessions.CurrentUser(r.Context())
	key, err := parseDate(r.PathValue("date"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	var in []storage.Row
	if err := decodeJSON(w, r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	for i := range in {
		if in[i].Date == "" {
			in[i].Date = key
		}
	}
	if err := validateRows(in, key); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := s.store.ReplaceDay(r.Context(), user, key, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeErr(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrConflict):
		writeErr(w, http.StatusConflict, err.Error())
	default:
		s.log.Error().Ctx(r.Context()).Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeErr(w, http.StatusInternalServerError, "internal server error")
	}
}

func parseDate(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", errors.New("date is required")
	}
	d, err := calendar.ParseKey(raw)
	if err != nil {
		return "", err
	}
	return string(d.Key()), nil
}

func validateRows(rows []storage.Row, date string) error {
	for i, row := range rows {
		if strings.TrimSpace(row.Title) == "" {
			return fmt.Errorf("row %d: title is required", i)
		}
		key, err := parseDate(row.Date)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if date != "" && key != date {
			return fmt.Errorf("row %d: date %s does not match %s", i, key, date)
		}
		if row.ID < 0 {
			return fmt.Errorf("row %d: invalid id", i)
		}
	}
	return nil
}
