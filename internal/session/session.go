package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session: transcript not found")

// Transcript is one transcribed upload and its optional summary.
type Transcript struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Language  string    `json:"language"`
	Text      string    `json:"transcript"`
	Summary   string    `json:"summary,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps transcripts in memory between requests so summaries and
// reports can be produced after the upload.
type Store struct {
	mu    sync.RWMutex
	items map[string]*Transcript
	ttl   time.Duration
	now   func() time.Time
}

// NewStore creates a Store whose entries expire ttl after creation. A zero
// ttl keeps entries forever.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		items: make(map[string]*Transcript),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *Store) Create(filename, language, text string) Transcript {
	t := &Transcript{
		ID:        uuid.NewString(),
		Filename:  filename,
		Language:  language,
		Text:      text,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.items[t.ID] = t
	s.mu.Unlock()

	return *t
}

func (s *Store) Get(id string) (Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.items[id]
	if !ok || s.expired(t) {
		return Transcript{}, ErrNotFound
	}
	return *t, nil
}

func (s *Store) SetSummary(id, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.items[id]
	if !ok || s.expired(t) {
		return ErrNotFound
	}
	t.Summary = summary
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, t := range s.items {
		if s.expired(t) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) expired(t *Transcript) bool {
	return s.ttl > 0 && s.now().Sub(t.CreatedAt) > s.ttl
}
