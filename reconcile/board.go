package reconcile

import (
	"errors"
	"sync"

	"github.com/clubedopeao/tournament-api/models"
	"github.com/google/uuid"
)

var ErrUnknownRound = errors.New("round not present in current pairing set")

// Board is the view-model for one session's admin board. It owns the pairing
// and match collections, the merged per-round cards, and the current round
// selection. Pairings are loaded once per session; matches are replaced
// wholesale after every mutation and the merge recomputed, never patched.
//
// Refreshes are guarded by a monotonic sequence so a slow response from a
// superseded fetch can never overwrite the effect of a newer one.
type Board struct {
	mu       sync.Mutex
	session  *models.Session
	pairings []models.Pairing
	matches  []models.Match
	byRound  map[int][]Card
	current  int
	seq      uint64
}

func NewBoard() *Board {
	return &Board{byRound: map[int][]Card{}}
}

// Reset loads a session with its pairings and matches, discarding any prior
// state wholesale. The current round becomes the lowest discovered round, or
// zero when the pairing set is empty.
func (b *Board) Reset(session *models.Session, pairings []models.Pairing, matches []models.Match) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.session = session
	b.pairings = pairings
	b.matches = matches
	b.seq++
	b.recompute()

	b.current = 0
	if rounds := Rounds(b.byRound); len(rounds) > 0 {
		b.current = rounds[0]
	}
}

// BeginRefresh stamps a match re-fetch. The returned token must be passed to
// ApplyMatches; a token older than the latest one is rejected there.
func (b *Board) BeginRefresh() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	return b.seq
}

// ApplyMatches replaces the match set and recomputes the merge, unless a
// newer refresh (or a session reset) has started since token was issued.
// It reports whether the update was applied.
func (b *Board) ApplyMatches(token uint64, matches []models.Match) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if token != b.seq {
		return false
	}
	b.matches = matches
	b.recompute()
	return true
}

// recompute re-derives the merged view. Callers hold b.mu.
func (b *Board) recompute() {
	b.byRound = MergeRounds(b.pairings, b.matches)
}

// SelectRound switches the current round. Numbers outside the discovered
// set are rejected.
func (b *Board) SelectRound(round int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.byRound[round]; !ok {
		return ErrUnknownRound
	}
	b.current = round
	return nil
}

func (b *Board) Session() *models.Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session
}

func (b *Board) CurrentRound() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

func (b *Board) Rounds() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Rounds(b.byRound)
}

// Cards returns the current round's cards, table-ascending.
func (b *Board) Cards() []Card {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Card(nil), b.byRound[b.current]...)
}

// Pairings returns the loaded pairing set.
func (b *Board) Pairings() []models.Pairing {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Pairing(nil), b.pairings...)
}

// FindPairing looks a pairing up by id across all rounds.
func (b *Board) FindPairing(id uuid.UUID) (models.Pairing, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.pairings {
		if p.ID == id {
			return p, true
		}
	}
	return models.Pairing{}, false
}
