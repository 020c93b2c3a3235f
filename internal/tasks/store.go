package tasks

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/daygrid/internal/calendar"
	"github.com/sandeepkv93/daygrid/internal/model"
	"github.com/sandeepkv93/daygrid/internal/session"
)

// Store is the session's single in-memory copy of the user's tasks. Local
// mutations apply immediately; Commit pushes a day to the backend and then
// reloads everything.
type Store struct {
	backend  Backend
	sessions session.Provider
	log      zerolog.Logger

	mu       sync.RWMutex
	snapshot model.Collection
}

func NewStore(backend Backend, sessions session.Provider, logger zerolog.Logger) *Store {
	return &Store{
		backend:  backend,
		sessions: sessions,
		log:      logger,
		snapshot: model.Collection{},
	}
}

func (s *Store) Load(ctx context.Context) error {
	user, ok := s.sessions.CurrentUser(ctx)
	if !ok {
		s.mu.Lock()
		s.snapshot = model.Collection{}
		s.mu.Unlock()
		s.log.Debug().Msg("no session user, snapshot cleared")
		return nil
	}

	loaded, err := s.backend.LoadAll(ctx, user)
	if err != nil {
		s.log.Warn().Err(err).Str("user", user).Msg("load failed")
		return &FetchError{Err: err}
	}
	if loaded == nil {
		loaded = model.Collection{}
	}

	s.mu.Lock()
	s.snapshot = loaded.Clone()
	s.mu.Unlock()
	s.log.Debug().Str("user", user).Int("days", len(loaded)).Msg("snapshot loaded")
	return nil
}

func (s *Store) Snapshot() model.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

func (s *Store) Day(key calendar.Key) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.snapshot.Day(key))
}

func (s *Store) Add(key calendar.Key, title, description string) (model.Task, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return model.Task{}, err
	}
	if err := checkKey(key); err != nil {
		return model.Task{}, err
	}

	task := model.Task{
		ID:          model.NewPendingID(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Date:        key,
	}
	s.mu.Lock()
	s.snapshot.Append(task)
	s.mu.Unlock()
	return task, nil
}

func (s *Store) Toggle(key calendar.Key, id model.ID) (model.Task, error) {
	return s.update(key, id, func(t *model.Task) {
		t.Completed = !t.Completed
	})
}

func (s *Store) Edit(key calendar.Key, id model.ID, title, description string) (model.Task, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return model.Task{}, err
	}
	description = strings.TrimSpace(description)
	return s.update(key, id, func(t *model.Task) {
		t.Title = title
		t.Description = description
	})
}

func (s *Store) Delete(key calendar.Key, id model.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.snapshot.Find(key, id)
	if !ok {
		return ErrTaskNotFound
	}
	s.snapshot.Put(key, slices.Delete(slices.Clone(s.snapshot.Day(key)), i, i+1))
	return nil
}

// ReplaceDay sets the local day to tasks and commits it. Tasks without an
// id get a pending one.
func (s *Store) ReplaceDay(ctx context.Context, key calendar.Key, tasks []model.Task) error {
	if err := checkKey(key); err != nil {
		return err
	}
	for _, t := range tasks {
		if _, err := cleanTitle(t.Title); err != nil {
			return err
		}
	}
	next := slices.Clone(tasks)
	for i := range next {
		if next[i].ID.IsZero() {
			next[i].ID = model.NewPendingID()
		}
	}
	s.mu.Lock()
	s.snapshot.Put(key, next)
	s.mu.Unlock()
	return s.Commit(ctx, key)
}

// Commit pushes the local copy of key to the backend and reloads the full
// snapshot whether or not the push succeeded.
func (s *Store) Commit(ctx context.Context, key calendar.Key) error {
	user, ok := s.sessions.CurrentUser(ctx)
	if !ok {
		_ = s.Load(ctx)
		return &WriteError{Op: "replace", Key: key, Err: ErrNoSession}
	}

	day := s.Day(key)
	writeErr := s.backend.ReplaceDay(ctx, user, key, day)
	loadErr := s.Load(ctx)

	if writeErr != nil {
		s.log.Warn().Err(writeErr).Str("date", string(key)).Msg("replace day failed")
		return &WriteError{Op: "replace", Key: key, Err: writeErr}
	}
	s.log.Debug().Str("date", string(key)).Int("tasks", len(day)).Msg("day committed")
	return loadErr
}

func (s *Store) update(key calendar.Key, id model.ID, fn func(t *model.Task)) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.snapshot.Find(key, id)
	if !ok {
		return model.Task{}, ErrTaskNotFound
	}
	day := slices.Clone(s.snapshot.Day(key))
	fn(&day[i])
	s.snapshot.Put(key, day)
	return day[i], nil
}

func cleanTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", &ValidationError{Field: "title", Err: model.ErrEmptyTitle}
	}
	return title, nil
}

func checkKey(key calendar.Key) error {
	if _, err := calendar.ParseKey(string(key)); err != nil {
		return &ValidationError{Field: "date", Err: err}
	}
	return nil
}
