// Package localstore is the local-first persistence backend: the whole
// application state lives in one structure held in memory and mirrored to a
// JSON file after every accepted mutation. It implements the same repository
// interfaces as the postgres backend, so the services and the moderation
// lifecycle are shared verbatim between the two deployment modes.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/campus-events-api/internal/models"
	"github.com/campus-events-api/internal/repository"
)

// State is the single mirrored structure. Published and pending submissions
// live in separate collections, as the original local prototype kept them;
// rejected submissions are dropped from the state entirely.
type State struct {
	Events                 []*models.Event          `json:"events"`
	HackfinderPosts        []*models.HackFinderPost `json:"hackfinderPosts"`
	PendingEvents          []*models.Event          `json:"pendingEvents"`
	PendingHackfinderPosts []*models.HackFinderPost `json:"pendingHackfinderPosts"`
	Users                  []*models.User           `json:"users"`
	Profiles               []*models.Profile        `json:"profiles"`
}

// Store owns the state and serializes every mutation behind one mutex,
// giving the single-request-at-a-time semantics the design relies on.
type Store struct {
	mu    sync.Mutex
	state *State
	path  string
	log   zerolog.Logger
}

// Open loads the mirrored state from path, starting empty when the file
// does not exist yet
func Open(path string, log zerolog.Logger) (*Store, error) {
	store := &Store{
		state: &State{},
		path:  path,
		log:   log.With().Str("component", "localstore").Logger(),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		store.log.Info().Str("path", path).Msg("No local data file yet, starting empty")
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read local data: %w", err)
	}
	if err := json.Unmarshal(data, store.state); err != nil {
		return nil, fmt.Errorf("decode local data: %w", err)
	}

	store.log.Info().Str("path", path).
		Int("events", len(store.state.Events)).
		Int("posts", len(store.state.HackfinderPosts)).
		Msg("Local data loaded")
	return store, nil
}

// Repositories exposes the store through the shared repository interfaces
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		User:    &localUsers{store: s},
		Profile: &localProfiles{store: s},
		Event:   &localEvents{store: s},
		Post:    &localPosts{store: s},
	}
}

// mutate applies fn to a deep copy of the prior state. Only when fn accepts
// the mutation (returns nil) is the copy swapped in and mirrored to disk;
// a rejected mutation leaves the prior state untouched.
func (s *Store) mutate(fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := clone(*s.state)
	if err != nil {
		return err
	}
	if err := fn(&next); err != nil {
		return err
	}
	if err := s.save(&next); err != nil {
		return err
	}
	s.state = &next
	return nil
}

// view runs fn against the current state under the lock, for reads
func (s *Store) view(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

func (s *Store) save(st *State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local data: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create local data dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write local data: %w", err)
	}
	return nil
}

// nextID assigns 1 + the highest numeric id across all four content
// collections. The shared counter matters: submissions keep their id when
// they move from a pending collection to a published one, so a per-
// collection counter would collide.
func nextID(st *State) string {
	max := 0
	for _, e := range st.Events {
		if n, err := strconv.Atoi(e.ID); err == nil && n > max {
			max = n
		}
	}
	for _, e := range st.PendingEvents {
		if n, err := strconv.Atoi(e.ID); err == nil && n > max {
			max = n
		}
	}
	for _, p := range st.HackfinderPosts {
		if n, err := strconv.Atoi(p.ID); err == nil && n > max {
			max = n
		}
	}
	for _, p := range st.PendingHackfinderPosts {
		if n, err := strconv.Atoi(p.ID); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

// clone deep-copies a value through its JSON form. State and the models it
// holds are plain data, so the roundtrip is lossless.
func clone[T any](v T) (T, error) {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}
